package tui

import (
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/art"
	"github.com/sethgrid/deskpet/internal/pet"
)

const (
	walkFrame = 250 * time.Millisecond
	gearGlyph = "⚙"
	butterfly = "🦋"
)

var (
	styleBase      = tcell.StyleDefault
	styleHappy     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 120, 180))
	styleResisting = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBubble    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleGear      = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// bgLoaded carries a finished background fetch back to the screen loop.
type bgLoaded struct {
	src string
	img image.Image
	err error
}

type background struct {
	src    string
	img    image.Image
	raster *art.Raster
}

// apply takes a fetch result unless the background changed meanwhile.
func (b *background) apply(l bgLoaded, log *zap.Logger) {
	if l.src != b.src {
		return
	}
	b.raster = nil
	if l.err != nil {
		log.Warn("background load failed", zap.Error(l.err))
		b.img = nil
		return
	}
	b.img = l.img
}

// Draw paints one frame into the back buffer.
func (a *App) Draw() {
	a.screen.Clear()
	a.panel.clear()

	a.syncBackground()
	a.drawBackground()
	a.drawPet()
	a.drawBubble()
	a.drawGear()
	if a.ctrl.SettingsOpen() {
		a.drawPanel()
	} else {
		a.panel.input.reset()
	}
}

// syncBackground starts a fetch when the shown background changes. The
// result arrives as an interrupt event so the screen loop stays the only
// writer.
func (a *App) syncBackground() {
	want := a.ctrl.Background()
	if want == a.bg.src {
		return
	}
	a.bg = background{src: want}
	if want == "" {
		return
	}
	ctx, load := a.ctx, a.loadImage
	go func() {
		img, err := load(ctx, want)
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(bgLoaded{src: want, img: img, err: err}))
	}()
}

func (a *App) drawBackground() {
	if a.bg.img == nil {
		return
	}
	w, h := a.screen.Size()
	if a.bg.raster == nil || a.bg.raster.Cols != w || a.bg.raster.Rows != h {
		a.bg.raster = art.Rasterize(a.bg.img, w, h)
	}
	for row := 0; row < h; row++ {
		a.drawRasterRow(0, row, a.bg.raster, row)
	}
}

func (a *App) drawRasterRow(x, y int, r *art.Raster, row int) {
	for col := 0; col < r.Cols; col++ {
		top, bottom := r.At(col, row)
		switch {
		case top.A == 0 && bottom.A == 0:
		case bottom.A == 0:
			a.screen.SetContent(x+col, y, '▀', nil, styleBase.Foreground(rgb(top)))
		case top.A == 0:
			a.screen.SetContent(x+col, y, '▄', nil, styleBase.Foreground(rgb(bottom)))
		default:
			a.screen.SetContent(x+col, y, '▀', nil, styleBase.Foreground(rgb(top)).Background(rgb(bottom)))
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (a *App) drawPet() {
	p := a.ctrl.Pet()
	pose := art.ChoosePose(p, a.poses)
	sprite := a.poses.Frame(pose, a.frameIndex())

	x := int(math.Round(p.Position.X))
	y := int(math.Round(p.Position.Y))
	switch {
	case p.HasEffect(pet.EffectJump):
		y -= 2
	case p.HasEffect(pet.EffectBounce):
		y--
	}

	style := styleBase
	switch {
	case p.HasEffect(pet.EffectResisting):
		style = styleResisting
	case p.HasEffect(pet.EffectHappy):
		style = styleHappy
	}
	if p.HasEffect(pet.EffectScale) {
		style = style.Bold(true)
	}

	h := sprite.Height()
	for row := 0; row < h; row++ {
		dx := shear(p.Tilt, row, h)
		if sprite.Raster != nil {
			a.drawRasterRow(x+dx, y+row, sprite.Raster, row)
			continue
		}
		a.drawSpriteLine(x+dx, y+row, sprite.Lines[row], style)
	}

	if p.HasEffect(pet.EffectScale) && h > 1 {
		a.putGlyph(x-1, y+1, "*", style)
		a.putGlyph(x+sprite.Width(), y+1, "*", style)
	}
	if p.HasEffect(pet.EffectButterfly) {
		t := a.ctrl.Now().Sub(a.started).Seconds() * 4
		bx := x + sprite.Width() + int(math.Round(2*math.Cos(t)))
		by := y + int(math.Round(math.Sin(t)))
		a.putGlyph(bx, by, butterfly, styleBase)
	}
}

// frameIndex picks the animation frame from the pet clock.
func (a *App) frameIndex() int {
	return int(a.ctrl.Now().Sub(a.started) / walkFrame)
}

// shear offsets each sprite row so a tilted pet leans. Rows above the middle
// go one way and rows below the other.
func shear(tilt float64, row, height int) int {
	if tilt == 0 {
		return 0
	}
	lean := math.Sin(tilt * math.Pi / 180)
	return int(math.Round(lean * 1.5 * float64(row-height/2)))
}

// drawSpriteLine draws text art; spaces are transparent.
func (a *App) drawSpriteLine(x, y int, line string, style tcell.Style) {
	for _, r := range line {
		if r != ' ' {
			a.screen.SetContent(x, y, r, nil, style)
		}
		x += runewidth.RuneWidth(r)
	}
}

func (a *App) drawBubble() {
	b := a.ctrl.Bubble()
	if !b.Visible() {
		return
	}
	sw, _ := a.screen.Size()
	w := b.Width()
	anchor := b.Anchor()
	x := int(math.Round(anchor.X))
	y := int(math.Round(anchor.Y))
	if x+w > sw {
		x = sw - w
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	left := (w - 3) / 2
	right := w - 3 - left
	a.drawText(x, y, "╭"+strings.Repeat("─", w-2)+"╮", styleBubble)
	a.drawText(x, y+1, "│ "+b.Text()+" │", styleBubble)
	a.drawText(x, y+2, "╰"+strings.Repeat("─", left)+"v"+strings.Repeat("─", right)+"╯", styleBubble)
}

func (a *App) drawGear() {
	w, _ := a.screen.Size()
	x := w - 2
	a.putGlyph(x, 0, gearGlyph, styleGear)
	a.panel.add(x-1, 0, 3, a.toggleSettings)
}

// drawText draws s and returns the column after it.
func (a *App) drawText(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (a *App) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	a.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		a.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
