package tui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/controller"
	"github.com/sethgrid/deskpet/internal/discovery"
	"github.com/sethgrid/deskpet/internal/gallery"
	"github.com/sethgrid/deskpet/internal/pet"
	"github.com/sethgrid/deskpet/internal/sched"
	"github.com/sethgrid/deskpet/internal/speech"
	"github.com/sethgrid/deskpet/internal/storage"
)

var afternoon = time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

func newSimScreen() tcell.Screen {
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(80, 24)
	_ = ss.Init()
	return ss
}

// newTestApp returns an app whose idle pet stands at (35, 10).
func newTestApp(t *testing.T, gal *gallery.Gallery) (*App, tcell.Screen) {
	t.Helper()
	screen := newSimScreen()
	t.Cleanup(screen.Fini)

	ctrl := controller.New(sched.New(afternoon), controller.Options{
		Config:  pet.DefaultConfig(),
		Width:   80,
		Height:  24,
		Lines:   speech.New("en", nil),
		Gallery: gal,
		Rand:    rand.New(rand.NewSource(7)),
	})
	p := ctrl.Pet()
	p.State = pet.StateIdle
	p.Position = pet.Vec{X: 35, Y: 10}

	app := New(screen, ctrl, Options{Log: zap.NewNop()})
	app.loadImage = func(context.Context, string) (image.Image, error) {
		return nil, errors.New("not in tests")
	}
	return app, screen
}

func newTestGallery(t *testing.T, builtin ...string) *gallery.Gallery {
	t.Helper()
	dir := t.TempDir()
	manifest := filepath.Join(dir, "index.yaml")
	var b strings.Builder
	for _, src := range builtin {
		b.WriteString("- " + src + "\n")
	}
	if b.Len() == 0 {
		b.WriteString("[]\n")
	}
	if err := os.WriteFile(manifest, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := storage.OpenStore(filepath.Join(dir, discovery.StoreFile))
	if err != nil {
		t.Fatal(err)
	}
	g := gallery.New(store, gallery.NewManifest(manifest), nil)
	g.Load(context.Background())
	return g
}

func cell(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(cell(s, x, y))
	}
	return b.String()
}

// find locates text on screen, assuming single-width runes before it.
func find(s tcell.Screen, text string) (int, int, bool) {
	_, h := s.Size()
	for y := 0; y < h; y++ {
		if x := strings.Index(rowText(s, y), text); x >= 0 {
			return len([]rune(rowText(s, y)[:x])), y, true
		}
	}
	return 0, 0, false
}

func press(a *App, x, y int, at time.Time) {
	a.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone), at)
}

func release(a *App, x, y int, at time.Time) {
	a.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone), at)
}

func click(a *App, x, y int, at time.Time) {
	press(a, x, y, at)
	release(a, x, y, at)
}

func typeText(a *App, text string, at time.Time) {
	for _, r := range text {
		a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), at)
	}
}

func TestDrawsPetAtPosition(t *testing.T) {
	app, screen := newTestApp(t, nil)
	app.Draw()

	if got := cell(screen, 36, 10); got != '(' {
		t.Errorf("ear row at (36,10) = %q", got)
	}
	if got := cell(screen, 38, 11); got != 'o' {
		t.Errorf("eye at (38,11) = %q", got)
	}
	if got := cell(screen, 35, 10); got != ' ' {
		t.Errorf("leading space drawn as %q", got)
	}
}

func TestBubbleDrawnAbovePet(t *testing.T) {
	app, screen := newTestApp(t, nil)
	app.ctrl.Say(speech.Click, 2*time.Second)
	app.Draw()

	if !strings.Contains(rowText(screen, 8), "│ Ura~ │") {
		t.Errorf("bubble row = %q", rowText(screen, 8))
	}
	if got := cell(screen, 38, 8); got != 'U' {
		t.Errorf("bubble text starts with %q at (38,8)", got)
	}
}

func TestClickOnPet(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.Draw()
	click(app, 37, 11, afternoon)

	p := app.ctrl.Pet()
	if p.Pose != pet.PoseClick || !p.HasEffect(pet.EffectHappy) {
		t.Errorf("pose=%q effects=%v after click", p.Pose, p.Effects)
	}
	if p.IsDragging || p.State != pet.StateIdle {
		t.Errorf("click left dragging=%v state=%s", p.IsDragging, p.State)
	}
	if b := app.ctrl.Bubble(); !b.Visible() || b.Text() != "Ura~" {
		t.Errorf("bubble = %q", b.Text())
	}
}

func TestClickOffPetIgnored(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.Draw()
	click(app, 5, 20, afternoon)
	if p := app.ctrl.Pet(); p.Pose != pet.PoseStand || app.ctrl.Bubble().Visible() {
		t.Errorf("click off the pet reacted: pose=%q", p.Pose)
	}
}

func TestDoubleClickJumps(t *testing.T) {
	tests := []struct {
		name string
		gap  time.Duration
		jump bool
	}{
		{name: "inside window", gap: 100 * time.Millisecond, jump: true},
		{name: "outside window", gap: time.Second, jump: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, nil)
			app.Draw()
			click(app, 37, 11, afternoon)
			click(app, 37, 11, afternoon.Add(tt.gap))

			p := app.ctrl.Pet()
			if got := p.HasEffect(pet.EffectJump); got != tt.jump {
				t.Errorf("jumping = %v, want %v", got, tt.jump)
			}
		})
	}
}

func TestDragMovesPetWithoutClick(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.Draw()

	press(app, 37, 11, afternoon)
	if p := app.ctrl.Pet(); p.State != pet.StateDragged || !p.IsDragging {
		t.Fatalf("press on pet: state=%s dragging=%v", p.State, p.IsDragging)
	}
	app.HandleEvent(tcell.NewEventMouse(20, 5, tcell.Button1, tcell.ModNone), afternoon.Add(200*time.Millisecond))
	release(app, 20, 5, afternoon.Add(300*time.Millisecond))

	p := app.ctrl.Pet()
	if p.Position != (pet.Vec{X: 15, Y: 3}) {
		t.Errorf("dropped at %+v, want centred on (20,5)", p.Position)
	}
	if p.State != pet.StateIdle || p.IsDragging {
		t.Errorf("after release state=%s dragging=%v", p.State, p.IsDragging)
	}
	if !p.Paused(app.ctrl.Now()) {
		t.Error("release did not pause wandering")
	}
	if p.Pose == pet.PoseClick {
		t.Error("a drag was treated as a click")
	}
}

func TestGearAndKeyToggleSettings(t *testing.T) {
	app, screen := newTestApp(t, nil)
	app.Draw()
	if got := cell(screen, 78, 0); got != '⚙' {
		t.Fatalf("gear cell = %q", got)
	}

	click(app, 78, 0, afternoon)
	if !app.ctrl.SettingsOpen() {
		t.Fatal("gear click did not open settings")
	}
	app.Draw()
	if _, _, ok := find(screen, "Settings"); !ok {
		t.Error("panel not drawn")
	}

	typeText(app, "s", afternoon)
	if app.ctrl.SettingsOpen() {
		t.Error("s did not close settings")
	}
}

func TestPanelActionRunsAndCloses(t *testing.T) {
	app, screen := newTestApp(t, nil)
	app.ctrl.ToggleSettings()
	app.Draw()

	x, y, ok := find(screen, "[sleep]")
	if !ok {
		t.Fatal("sleep button not drawn")
	}
	click(app, x+1, y, afternoon)

	if p := app.ctrl.Pet(); p.State != pet.StateSleeping {
		t.Errorf("state = %s after sleep button", p.State)
	}
	if app.ctrl.SettingsOpen() {
		t.Error("panel stayed open")
	}
}

func TestPanelPressDoesNotReachPet(t *testing.T) {
	app, screen := newTestApp(t, nil)
	p := app.ctrl.Pet()
	p.Position = pet.Vec{X: 60, Y: 2}
	app.ctrl.ToggleSettings()
	app.Draw()

	_, y, ok := find(screen, "Backgrounds")
	if !ok {
		t.Fatal("panel not drawn")
	}
	// the blank row above the list header sits over the pet
	if !app.ctrl.Contains(62, float64(y-1)) {
		t.Fatalf("pet not under panel row %d", y-1)
	}
	press(app, 62, y-1, afternoon)
	if p.IsDragging {
		t.Error("press on the panel grabbed the pet underneath")
	}
}

func TestUploadThroughPanel(t *testing.T) {
	gal := newTestGallery(t)
	app, screen := newTestApp(t, gal)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	file := filepath.Join(t.TempDir(), "sky.png")
	f, err := os.Create(file)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	app.ctrl.ToggleSettings()
	app.Draw()
	x, y, ok := find(screen, "[upload]")
	if !ok {
		t.Fatal("upload button not drawn")
	}
	click(app, x, y, afternoon)
	if !app.panel.input.active {
		t.Fatal("upload did not open the path input")
	}

	// typed letters must not reach the key bindings
	typeText(app, file, afternoon)
	if !app.ctrl.SettingsOpen() || app.Quit() {
		t.Fatal("path keystrokes were taken as commands")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), afternoon)

	if app.panel.input.active || len(app.panel.input.text) != 0 {
		t.Error("input not cleared after upload")
	}
	items := gal.Items()
	if len(items) != 1 || items[0].Kind != gallery.Uploaded || !strings.HasPrefix(items[0].Src, "data:image/png;base64,") {
		t.Fatalf("gallery items = %+v", items)
	}
	app.Draw()
	if _, _, ok := find(screen, "upload 1"); !ok {
		t.Error("uploaded item not listed")
	}
}

func TestInputEditing(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.ctrl.ToggleSettings()
	app.startUpload()

	typeText(app, "abc", afternoon)
	app.HandleEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), afternoon)
	if got := string(app.panel.input.text); got != "ab" {
		t.Errorf("text = %q after backspace", got)
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), afternoon)
	if app.panel.input.active || app.Quit() {
		t.Error("escape should close the input, not quit")
	}
}

func TestBackgroundSelectAndLoad(t *testing.T) {
	gal := newTestGallery(t, "meadow.png")
	app, screen := newTestApp(t, gal)
	app.ctrl.SelectBackground(0)
	app.Draw()

	src := app.ctrl.Background()
	if src == "" || app.bg.src != src {
		t.Fatalf("background fetch not started for %q", src)
	}

	red := image.NewUniform(color.RGBA{R: 255, A: 255})
	app.HandleEvent(tcell.NewEventInterrupt(bgLoaded{src: "stale.png", img: image.NewUniform(color.Black)}), afternoon)
	if app.bg.img != nil {
		t.Fatal("stale result applied")
	}
	app.HandleEvent(tcell.NewEventInterrupt(bgLoaded{src: src, img: red}), afternoon)
	app.Draw()

	r, _, style, _ := screen.GetContent(0, 23)
	fg, _, _ := style.Decompose()
	if r != '▀' || fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("background cell = %q fg=%v", r, fg)
	}
}

func TestBackgroundLoadFailureLeavesDefault(t *testing.T) {
	gal := newTestGallery(t, "missing.png")
	app, screen := newTestApp(t, gal)
	app.ctrl.SelectBackground(0)
	app.Draw()

	app.HandleEvent(tcell.NewEventInterrupt(bgLoaded{src: app.bg.src, err: errors.New("gone")}), afternoon)
	app.Draw()
	if got := cell(screen, 0, 23); got != ' ' {
		t.Errorf("failed background still drew %q", got)
	}
}

func TestResizeClampsPet(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.HandleEvent(tcell.NewEventResize(30, 10), afternoon)
	p := app.ctrl.Pet()
	if p.Position.X > 20 || p.Position.Y > 6 {
		t.Errorf("pet at %+v outside a 30x10 screen", p.Position)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, nil)
			app.HandleEvent(tt.ev, afternoon)
			if !app.Quit() {
				t.Error("key did not quit")
			}
		})
	}
}

func TestShear(t *testing.T) {
	tests := []struct {
		tilt   float64
		row, h int
		want   int
	}{
		{tilt: 0, row: 0, h: 4, want: 0},
		{tilt: 90, row: 0, h: 4, want: -3},
		{tilt: 90, row: 2, h: 4, want: 0},
		{tilt: 90, row: 3, h: 4, want: 2},
		{tilt: 270, row: 0, h: 4, want: 3},
	}
	for _, tt := range tests {
		if got := shear(tt.tilt, tt.row, tt.h); got != tt.want {
			t.Errorf("shear(%v, %d, %d) = %d, want %d", tt.tilt, tt.row, tt.h, got, tt.want)
		}
	}
}

func TestItemName(t *testing.T) {
	tests := []struct {
		item gallery.Item
		i    int
		want string
	}{
		{gallery.Item{Kind: gallery.Builtin, Src: "/srv/bg/meadow.png"}, 0, "meadow.png"},
		{gallery.Item{Kind: gallery.Builtin, Src: "https://example.com/a/sky.jpg?v=2"}, 1, "sky.jpg"},
		{gallery.Item{Kind: gallery.Uploaded, Src: "data:image/png;base64,AAAA"}, 2, "upload 3"},
	}
	for _, tt := range tests {
		if got := itemName(tt.item, tt.i); got != tt.want {
			t.Errorf("itemName(%q) = %q, want %q", tt.item.Src, got, tt.want)
		}
	}
}
