// Package snapshot saves a host-facing lcd.Screen buffer as a timestamped
// PNG file, a headless debugging aid reachable from the terminal renderer's
// F12 shortcut and from headless runs via --snapshot-interval.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golynx/golynx/lynx/display"
	"github.com/golynx/golynx/lynx/lcd"
)

// Save encodes screen as a PNG named baseName_<timestamp>.png inside dir
// (the current directory if dir is empty).
func Save(screen *lcd.Screen, baseName, dir string) error {
	img, err := toImage(screen)
	if err != nil {
		return err
	}

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("snapshot: failed to get current directory: %w", err)
		}
		dir = cwd
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", baseName, timestamp))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: failed to create file %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("snapshot: failed to encode PNG: %w", err)
	}

	slog.Info("snapshot saved", "path", path, "size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
	return nil
}

// toImage decodes screen's host-facing buffer into a standard library
// image.Image, handling both pixel formats lcd.Screen can be built for.
func toImage(screen *lcd.Screen) (image.Image, error) {
	w, h := screen.Dimensions()
	switch screen.Format {
	case display.PixelFormatRGBA8888:
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		copy(img.Pix, screen.Buffer)
		return img, nil
	case display.PixelFormatRGB565:
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := 0; i < w*h; i++ {
			packed := uint16(screen.Buffer[i*2]) | uint16(screen.Buffer[i*2+1])<<8
			r5 := uint8(packed>>display.RGB565RShift) & 0x1F
			g6 := uint8(packed>>display.RGB565GShift) & 0x3F
			b5 := uint8(packed) & 0x1F
			img.SetRGBA(i%w, i/w, color.RGBA{
				R: r5<<3 | r5>>2,
				G: g6<<2 | g6>>4,
				B: b5<<3 | b5>>2,
				A: 0xFF,
			})
		}
		return img, nil
	default:
		return nil, fmt.Errorf("snapshot: unsupported pixel format %v", screen.Format)
	}
}
