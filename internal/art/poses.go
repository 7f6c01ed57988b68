// Package art resolves the pet's poses into drawable sprites and turns
// images into half-block cell rasters.
package art

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/sethgrid/deskpet/internal/pet"
)

// Pose sources in pet.toml.
const (
	SourceInline = "inline" // frames hold the art
	SourceFile   = "file"   // path is a text file, frames separated by a blank line
	SourceImage  = "image"  // path is an image file, URL or data URI
)

// Sprite is one frame: either text lines or a raster.
type Sprite struct {
	Lines  []string
	Raster *Raster
}

// Width is the widest line in cells, or the raster width.
func (s Sprite) Width() int {
	if s.Raster != nil {
		return s.Raster.Cols
	}
	w := 0
	for _, line := range s.Lines {
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

func (s Sprite) Height() int {
	if s.Raster != nil {
		return s.Raster.Rows
	}
	return len(s.Lines)
}

func textSprite(art string) Sprite {
	return Sprite{Lines: strings.Split(strings.TrimRight(art, "\n"), "\n")}
}

// Poses holds every loaded pose. A pose that failed to load is absent, and
// lookups fall back to stand.
type Poses struct {
	frames map[string][]Sprite
}

// LoadPoses loads the configured poses on top of the builtin ones. baseDir
// resolves relative paths. Load failures are logged and the pose keeps its
// builtin frames, or none.
func LoadPoses(ctx context.Context, cfg map[string]pet.PoseConfig, baseDir string, size pet.Size, log *zap.Logger) *Poses {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Poses{frames: make(map[string][]Sprite)}
	for name, poseCfg := range DefaultPoses() {
		p.frames[name] = inlineFrames(poseCfg)
	}

	for name, poseCfg := range cfg {
		frames, err := loadPose(ctx, poseCfg, baseDir, size)
		if err != nil {
			log.Warn("pose unavailable, using fallback", zap.String("pose", name), zap.Error(err))
			continue
		}
		if len(frames) == 0 {
			continue
		}
		p.frames[name] = frames
	}
	return p
}

func loadPose(ctx context.Context, cfg pet.PoseConfig, baseDir string, size pet.Size) ([]Sprite, error) {
	switch cfg.Source {
	case "", SourceInline:
		return inlineFrames(cfg), nil
	case SourceFile:
		data, err := os.ReadFile(resolve(baseDir, cfg.Path))
		if err != nil {
			return nil, fmt.Errorf("failed to read pose file: %w", err)
		}
		var frames []Sprite
		for _, chunk := range strings.Split(string(data), "\n\n") {
			if strings.TrimSpace(chunk) != "" {
				frames = append(frames, textSprite(chunk))
			}
		}
		return frames, nil
	case SourceImage:
		img, err := Open(ctx, resolve(baseDir, cfg.Path))
		if err != nil {
			return nil, err
		}
		return []Sprite{{Raster: Rasterize(img, int(size.W), int(size.H))}}, nil
	}
	return nil, fmt.Errorf("unknown pose source %q", cfg.Source)
}

func inlineFrames(cfg pet.PoseConfig) []Sprite {
	frames := make([]Sprite, 0, len(cfg.Frames))
	for _, f := range cfg.Frames {
		if f.Art != "" {
			frames = append(frames, textSprite(f.Art))
		}
	}
	return frames
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || !isLocal(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func (p *Poses) Has(pose string) bool {
	return len(p.frames[pose]) > 0
}

// Frame returns frame i (modulo the frame count) of pose, falling back to
// stand and then to the builtin rabbit.
func (p *Poses) Frame(pose string, i int) Sprite {
	frames := p.frames[pose]
	if len(frames) == 0 {
		frames = p.frames[pet.PoseStand]
	}
	if len(frames) == 0 {
		return textSprite(BuiltinArt(pet.PoseStand))
	}
	if i < 0 {
		i = -i
	}
	return frames[i%len(frames)]
}

// Frames is the number of frames of pose after fallback.
func (p *Poses) Frames(pose string) int {
	if n := len(p.frames[pose]); n > 0 {
		return n
	}
	if n := len(p.frames[pet.PoseStand]); n > 0 {
		return n
	}
	return 1
}
