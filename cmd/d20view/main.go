// Command d20view spins a small D20 inside a big one in the terminal, shaded
// with their averaged vertex normals. Space turns the light on and makes the
// big die see-through, q quits, dragging rotates.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"
)

const frames = 60

type speeds struct{ x, y, z float64 }

func main() {
	os.Exit(Main())
}

// Main runs the viewer or the gif export and returns the exit code.
func Main() int {
	fpsFlag := flag.Float64("fps", 60, "set the fps for the animation")
	colorFlag := flag.Bool("color", false, "color the faces of the die by band")
	wireFlag := flag.Bool("wire", false, "draw the edges only, no shading")
	litFlag := flag.Bool("lit", false, "start with the light on and the big die see-through")
	gifFlag := flag.Int("gif", 0, "write this many frames to the -out file instead of running interactively")
	outFlag := flag.String("out", "d20.gif", "output path for -gif")
	levelFlag := flag.String("loglevel", "info", "log `level` (debug, verbose, info, warning, error, critical)")
	flag.Parse()
	if err := log.SetLogLevelStr(*levelFlag); err != nil {
		log.Errf("bad -loglevel: %v", err)
		return 1
	}
	if *gifFlag > 0 {
		log.Infof("rendering %d frames to %s", *gifFlag, *outFlag)
		if err := exportFrames(*outFlag, *gifFlag, *fpsFlag, *colorFlag, *litFlag); err != nil {
			log.Errf("gif export failed: %v", err)
			return 1
		}
		return 0
	}
	if err := run(*fpsFlag, *colorFlag, *wireFlag, *litFlag); err != nil {
		log.Errf("%v", err)
		return 1
	}
	return 0
}

func run(fps float64, colored, wire, lit bool) error { //nolint:funlen // the frame loop reads better in one place
	ap := ansipixels.NewAnsiPixels(fps)
	if err := ap.Open(); err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	ap.HideCursor()
	defer func() {
		ap.ShowCursor()
		ap.MouseTrackingOff()
		ap.MouseClickOff()
		ap.ClearScreen()
		ap.Restore()
	}()
	ap.MouseTrackingOn()
	ap.ClearScreen()

	s := newScene(colored)
	s.wire = wire
	s.lightOn = lit
	sp := speeds{.5, .5, .5}
	width, height := ap.W, ap.H
	scale := 5.
	img := image.NewNRGBA(image.Rect(0, 0, width, height*2))
	prevMouse := [2]int{}
	angle := math.Pi / float64(frames)
	ap.OnResize = func() error {
		width, height = ap.W, ap.H
		img = image.NewNRGBA(image.Rect(0, 0, width, height*2))
		return nil
	}
	ap.SyncBackgroundColor()
	return ap.FPSTicks(context.Background(), func(context.Context) bool {
		clear(img.Pix)
		bg := s.background(color.RGBA{ap.Background.R, ap.Background.G, ap.Background.B, 255})
		draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Over)

		barWidth := img.Bounds().Dx() / 20
		barHeightAp := ap.H / 3
		s.step()
		s.rotate(angle*sp.x, angle*sp.y, angle*sp.z)

		lc, ld := ap.LeftClick(), ap.LeftDrag()
		inBars := ap.My >= ap.H-barHeightAp
		switch {
		case (lc || ld) && inBars && ap.Mx >= 0 && ap.Mx <= barWidth+1:
			sp.x = float64(ap.H-ap.My) / float64(barHeightAp)
		case (lc || ld) && inBars && ap.Mx > barWidth+1 && ap.Mx <= barWidth*2+1:
			sp.y = float64(ap.H-ap.My) / float64(barHeightAp)
		case (lc || ld) && inBars && ap.Mx > barWidth*2+1 && ap.Mx <= barWidth*3+1:
			sp.z = float64(ap.H-ap.My) / float64(barHeightAp)
		case ld:
			sp = speeds{}
			dx, dy := ap.Mx-prevMouse[0], ap.My-prevMouse[1]
			s.rotate(angle*.7*float64(dy), -angle*.7*float64(dx), 0)
		}
		if ap.RightDrag() {
			sp = speeds{}
			s.rotate(0, 0, -angle*.7*float64(ap.Mx-prevMouse[0]))
		}
		if ap.MouseWheelUp() {
			scale *= .9
		}
		if ap.MouseWheelDown() {
			scale /= .9
		}
		prevMouse = [2]int{ap.Mx, ap.My}
		if len(ap.Data) > 0 {
			switch ap.Data[0] {
			case 'q', 'Q':
				return false
			case ' ':
				on := s.toggleLight()
				log.Debugf("light on: %v", on)
			}
		}
		s.draw(img, width, height, scale)
		if err := drawImageAndSliders(ap, img, barWidth, barHeightAp, sp, s.lightOn); err != nil {
			log.Debugf("draw failed: %v", err)
			return false
		}
		return true
	})
}

func drawImageAndSliders(
	ap *ansipixels.AnsiPixels,
	img *image.NRGBA,
	barWidth, barHeightAp int,
	sp speeds,
	lightOn bool,
) error {
	barHeightImg := img.Bounds().Dy() / 3
	bottom := img.Bounds().Dy() - 2
	bars := []struct {
		x0, x1 int
		v      float64
		c      color.RGBA
	}{
		{1, barWidth, sp.x, color.RGBA{145, 0, 0, 255}},
		{barWidth + 2, barWidth*2 + 1, sp.y, color.RGBA{0, 145, 0, 255}},
		{barWidth*2 + 3, barWidth*3 + 2, sp.z, color.RGBA{0, 0, 145, 255}},
	}
	for _, b := range bars {
		r := image.Rect(b.x0, bottom-int(b.v*float64(barHeightImg)), b.x1, bottom)
		draw.Draw(img, r, &image.Uniform{b.c}, image.Point{}, draw.Over)
	}
	ap.StartSyncMode()
	rgba := &image.RGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
	var err error
	if ap.ColorOutput.TrueColor {
		err = ap.DrawTrueColorImage(0, 0, rgba)
	} else {
		err = ap.Draw216ColorImage(0, 0, rgba)
	}
	if err != nil {
		return err
	}
	ap.WriteBg(ap.Background.Color())
	for i := range bars {
		ap.DrawRoundBox(i*(barWidth+1), ap.H-barHeightAp, barWidth+1, barHeightAp)
	}
	status := "light on, inner die showing (space to toggle, q to quit)"
	if !lightOn {
		status = "light off (space to reveal the inner die, q to quit)"
	}
	ap.WriteAtStr(0, 0, status)
	ap.EndSyncMode()
	return nil
}
