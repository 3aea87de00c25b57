package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"os"

	"fortio.org/log"
)

const (
	gifWidth  = 160
	gifHeight = 80
)

// renderFrames spins the dice through n frames offscreen at the interactive
// default speeds.
func renderFrames(n int, colored, lit bool) []image.NRGBA {
	s := newScene(colored)
	s.lightOn = lit
	angle := math.Pi / float64(frames)
	bounds := image.Rect(0, 0, gifWidth, gifHeight*2)
	images := make([]image.NRGBA, 0, n)
	for range n {
		img := image.NewNRGBA(bounds)
		draw.Draw(img, bounds, &image.Uniform{s.background(color.RGBA{0, 0, 0, 255})}, image.Point{}, draw.Src)
		s.step()
		s.rotate(angle*.5, angle*.5, angle*.5)
		s.draw(img, gifWidth, gifHeight, 5)
		images = append(images, *img)
	}
	return images
}

// gifPalette is black, shades of each band color, and a grey ramp for the
// uncolored mode.
func gifPalette() color.Palette {
	palette := color.Palette{color.Black, white, litBackground}
	for _, c := range bandColors {
		for k := 1; k <= 8; k++ {
			palette = append(palette, shade(c, float64(k)/8))
		}
	}
	for i := range 64 {
		gray := uint8(i * 4)
		palette = append(palette, color.NRGBA{gray, gray, gray, 255})
	}
	return palette
}

func exportToGif(path string, images []image.NRGBA, fps float64) error {
	if len(images) == 0 {
		return fmt.Errorf("no frames to export")
	}
	delay := max(int(100/fps), 1) // centiseconds
	palette := gifPalette()
	outGif := &gif.GIF{LoopCount: 0}
	bounds := images[0].Bounds()
	for _, img := range images {
		palettedImage := image.NewPaletted(bounds, palette)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				palettedImage.Set(x, y, img.NRGBAAt(x, y))
			}
		}
		outGif.Image = append(outGif.Image, palettedImage)
		outGif.Delay = append(outGif.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := encodeAndClose(f, outGif); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Infof("wrote %d frames to %s", len(images), path)
	return nil
}

// encodeAndClose writes g to w and closes it. A failed Close is reported
// since it can be the last write that didn't make it.
func encodeAndClose(w io.WriteCloser, g *gif.GIF) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return gif.EncodeAll(w, g)
}

func exportFrames(path string, n int, fps float64, colored, lit bool) error {
	return exportToGif(path, renderFrames(n, colored, lit), fps)
}
