package controller

import (
	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/gallery"
	"github.com/sethgrid/deskpet/internal/pet"
	"github.com/sethgrid/deskpet/internal/speech"
)

// ToggleSettings opens or closes the settings panel and reports whether it
// is now open.
func (c *Controller) ToggleSettings() bool {
	c.settings = !c.settings
	if c.settings {
		c.Say(speech.Settings, longBubble)
	}
	return c.settings
}

func (c *Controller) SettingsOpen() bool {
	return c.settings
}

func (c *Controller) CloseSettings() {
	c.settings = false
}

// TriggerAction runs an action picked on the panel and closes it.
func (c *Controller) TriggerAction(a pet.Action) {
	c.Perform(a)
	c.CloseSettings()
}

// Backgrounds lists the gallery, builtin items first.
func (c *Controller) Backgrounds() []gallery.Item {
	if c.gallery == nil {
		return nil
	}
	return c.gallery.Items()
}

// Background is the background currently on screen, or "".
func (c *Controller) Background() string {
	if c.gallery == nil {
		return ""
	}
	return c.gallery.Shown()
}

// SelectedBackground is the staged background, or "".
func (c *Controller) SelectedBackground() string {
	if c.gallery == nil {
		return ""
	}
	return c.gallery.Selected()
}

func (c *Controller) SelectBackground(i int) {
	if c.gallery == nil {
		return
	}
	if err := c.gallery.Select(i); err != nil {
		c.log.Warn("select background", zap.Error(err))
	}
}

// ConfirmBackground makes the staged background active and closes the
// panel. Without a selection nothing happens.
func (c *Controller) ConfirmBackground() {
	if c.gallery == nil {
		return
	}
	if err := c.gallery.Confirm(); err != nil {
		c.log.Warn("confirm background", zap.Error(err))
		return
	}
	c.CloseSettings()
}

func (c *Controller) ResetBackground() {
	if c.gallery == nil {
		return
	}
	if err := c.gallery.Reset(); err != nil {
		c.log.Warn("reset background", zap.Error(err))
	}
}

// UploadBackground adds an image file to the gallery and reports success.
func (c *Controller) UploadBackground(path string) bool {
	if c.gallery == nil || path == "" {
		return false
	}
	item, err := c.gallery.UploadFile(path)
	if err != nil {
		c.log.Warn("upload background", zap.String("file", path), zap.Error(err))
		return false
	}
	c.log.Info("background uploaded", zap.Int("bytes", len(item.Src)))
	return true
}
