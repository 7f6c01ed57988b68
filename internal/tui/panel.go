package tui

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/gallery"
	"github.com/sethgrid/deskpet/internal/pet"
)

const panelWidth = 30

var (
	stylePanel  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleTitle  = stylePanel.Bold(true)
	styleButton = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	styleMarked = stylePanel.Foreground(tcell.ColorYellow)
)

// region is a clickable span of one row. A nil fn swallows the press.
type region struct {
	x, y, w int
	fn      func()
}

type input struct {
	active bool
	text   []rune
}

func (in *input) reset() {
	in.active = false
	in.text = nil
}

// panel holds the clickable chrome of the last drawn frame.
type panel struct {
	regions []region
	input   input
}

func (p *panel) clear() {
	p.regions = p.regions[:0]
}

func (p *panel) add(x, y, w int, fn func()) {
	p.regions = append(p.regions, region{x: x, y: y, w: w, fn: fn})
}

// hit runs the first region under (x, y) and reports whether one was there.
func (p *panel) hit(x, y int) bool {
	for _, r := range p.regions {
		if y == r.y && x >= r.x && x < r.x+r.w {
			if r.fn != nil {
				r.fn()
			}
			return true
		}
	}
	return false
}

func (a *App) drawPanel() {
	sw, sh := a.screen.Size()
	x0 := sw - panelWidth - 1
	if x0 < 0 {
		x0 = 0
	}
	y := 1
	inner := x0 + 1

	// Buttons are registered before the backdrop so they win the hit test.
	var backdrop []int
	row := func() int {
		backdrop = append(backdrop, y)
		a.fillRow(x0, y, panelWidth)
		y++
		return y - 1
	}

	a.drawText(inner, row(), "Settings", styleTitle)

	r := row()
	x := inner
	for _, act := range pet.Actions {
		label := "[" + string(act) + "]"
		lw := runewidth.StringWidth(label)
		if x+lw > x0+panelWidth-1 {
			r = row()
			x = inner
		}
		a.drawText(x, r, label, styleButton)
		a.panel.add(x, r, lw, func() { a.ctrl.TriggerAction(act) })
		x += lw + 1
	}

	row()
	a.drawText(inner, row(), "Backgrounds", styleTitle)
	items := a.ctrl.Backgrounds()
	if len(items) == 0 {
		a.drawText(inner, row(), "(none)", stylePanel)
	}
	selected, shown := a.ctrl.SelectedBackground(), a.ctrl.Background()
	for i, item := range items {
		if y >= sh-3 {
			break
		}
		mark, style := " ", stylePanel
		switch {
		case item.Src == selected:
			mark, style = ">", styleMarked
		case item.Src == shown:
			mark, style = "*", styleMarked
		}
		label := runewidth.Truncate(fmt.Sprintf("%s %d. %s", mark, i+1, itemName(item, i)), panelWidth-2, "…")
		r := row()
		a.drawText(inner, r, label, style)
		a.panel.add(inner, r, panelWidth-2, func() { a.ctrl.SelectBackground(i) })
	}

	row()
	r = row()
	x = inner
	for _, b := range []struct {
		label string
		fn    func()
	}{
		{"[confirm]", a.ctrl.ConfirmBackground},
		{"[reset]", a.ctrl.ResetBackground},
		{"[upload]", a.startUpload},
	} {
		lw := runewidth.StringWidth(b.label)
		a.drawText(x, r, b.label, styleButton)
		a.panel.add(x, r, lw, b.fn)
		x += lw + 1
	}

	if a.panel.input.active {
		a.drawText(inner, row(), "path: "+tail(string(a.panel.input.text)+"_", panelWidth-8), stylePanel)
	}

	for _, by := range backdrop {
		a.panel.add(x0, by, panelWidth, nil)
	}
}

// tail keeps the last w cells of s so the cursor stays visible.
func tail(s string, w int) string {
	for runewidth.StringWidth(s) > w {
		_, n := utf8.DecodeRuneInString(s)
		s = s[n:]
	}
	return s
}

func (a *App) fillRow(x, y, w int) {
	for i := 0; i < w; i++ {
		a.screen.SetContent(x+i, y, ' ', nil, stylePanel)
	}
}

// itemName shortens a gallery entry for the list.
func itemName(item gallery.Item, i int) string {
	if item.Kind == gallery.Uploaded {
		return fmt.Sprintf("upload %d", i+1)
	}
	src := item.Src
	if j := strings.IndexAny(src, "?#"); j >= 0 {
		src = src[:j]
	}
	return path.Base(src)
}

func (a *App) startUpload() {
	a.panel.input = input{active: true}
}

// handleInputKey edits the upload path. Enter uploads and the field is
// cleared either way.
func (a *App) handleInputKey(ev *tcell.EventKey) {
	in := &a.panel.input
	switch ev.Key() {
	case tcell.KeyEnter:
		p := strings.TrimSpace(string(in.text))
		in.reset()
		if p == "" {
			return
		}
		if a.ctrl.UploadBackground(p) {
			a.log.Info("background added", zap.String("file", p))
		}
	case tcell.KeyEscape:
		in.reset()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(in.text); n > 0 {
			in.text = in.text[:n-1]
		}
	case tcell.KeyRune:
		in.text = append(in.text, ev.Rune())
	}
}
