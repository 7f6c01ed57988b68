package art

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const maxImageBytes = 16 << 20

var httpClient = &http.Client{Timeout: 10 * time.Second}

// Open loads an image from a data URI, an http(s) URL or a file path.
func Open(ctx context.Context, src string) (image.Image, error) {
	data, err := read(ctx, src)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func read(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == "":
		return nil, fmt.Errorf("empty image reference")
	case strings.HasPrefix(src, "data:"):
		return DecodeDataURI(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build image request: %w", err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("image fetch: unexpected status %s", resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// DecodeDataURI returns the payload of a base64 data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("data URI has no payload")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return []byte(payload), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI: %w", err)
	}
	return data, nil
}

func isLocal(src string) bool {
	for _, prefix := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(src, prefix) {
			return false
		}
	}
	return true
}

// Raster is an image scaled to a cell grid. Each cell shows two pixels
// stacked vertically, drawn as an upper half block.
type Raster struct {
	Cols, Rows int
	Top        []color.RGBA
	Bottom     []color.RGBA
}

// At returns the upper and lower colours of a cell. A zero alpha means
// transparent.
func (r *Raster) At(col, row int) (color.RGBA, color.RGBA) {
	i := row*r.Cols + col
	return r.Top[i], r.Bottom[i]
}

// Rasterize samples img onto cols×rows cells with nearest-neighbour scaling.
func Rasterize(img image.Image, cols, rows int) *Raster {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	r := &Raster{
		Cols:   cols,
		Rows:   rows,
		Top:    make([]color.RGBA, cols*rows),
		Bottom: make([]color.RGBA, cols*rows),
	}

	b := img.Bounds()
	sample := func(col, py int) color.RGBA {
		x := b.Min.X + col*b.Dx()/cols
		y := b.Min.Y + py*b.Dy()/(rows*2)
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			r.Top[i] = sample(col, row*2)
			r.Bottom[i] = sample(col, row*2+1)
		}
	}
	return r
}
