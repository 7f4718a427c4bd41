// Package capture saves rendered frames to image files.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// ErrPixelSize is returned when pixel data does not match the frame size.
var ErrPixelSize = errors.New("pixel data does not match frame size")

// Capturer writes frames into a directory with timestamped names.
type Capturer struct {
	dir    string
	prefix string
	format string
	now    func() time.Time
}

// New creates a capturer. An empty format means PNG.
func New(dir, prefix, format string) (*Capturer, error) {
	switch format {
	case "":
		format = FormatPNG
	case FormatPNG, FormatBMP:
	default:
		return nil, fmt.Errorf("unknown capture format %q", format)
	}
	return &Capturer{dir: dir, prefix: prefix, format: format, now: time.Now}, nil
}

// Filename returns the path the next capture of iteration would use.
func (c *Capturer) Filename(iteration int) string {
	name := fmt.Sprintf("%s_%s_%06d.%s", c.prefix, c.now().Format("2006-01-02_15-04-05"), iteration, c.format)
	if c.dir != "" {
		name = filepath.Join(c.dir, name)
	}
	return name
}

// SaveRGBA writes a bottom-up RGBA frame, as read back from OpenGL, and
// returns the file name.
func (c *Capturer) SaveRGBA(pixels []byte, width, height, iteration int) (string, error) {
	img, err := FlipRGBA(pixels, width, height)
	if err != nil {
		return "", err
	}

	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating capture dir: %w", err)
		}
	}

	name := c.Filename(iteration)
	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := c.encode(file, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", c.format, err)
	}
	return name, nil
}

func (c *Capturer) encode(w io.Writer, img image.Image) error {
	if c.format == FormatBMP {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

// FlipRGBA copies a bottom-up frame into a top-down image.
func FlipRGBA(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d frame, %d bytes", ErrPixelSize, width, height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}
