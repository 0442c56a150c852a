package app

import (
	"image/color"
	"math"
	"time"

	"go.creack.net/hero/platform"
)

// DefaultPeriod is the duration of one dark-bright-dark cycle.
const DefaultPeriod = 2 * time.Second

// Intensity maps elapsed time to [0, 1] along a sine wave of the given period.
func Intensity(elapsed, period time.Duration) float64 {
	if period <= 0 {
		period = DefaultPeriod
	}
	phase := float64(elapsed%period) / float64(period)
	return (1 + math.Sin(2*math.Pi*phase)) / 2
}

// FillColor scales each channel of tint by intensity, fully opaque.
func FillColor(intensity float64, tint color.Color) color.NRGBA {
	intensity = max(0, min(1, intensity))
	t := color.NRGBAModel.Convert(tint).(color.NRGBA)
	scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * intensity)) }
	return color.NRGBA{R: scale(t.R), G: scale(t.G), B: scale(t.B), A: 0xff}
}

// Renderer clears the surface to a time varying color.
// It keeps no state between frames.
type Renderer struct {
	clock   platform.Clock
	surface platform.Surface
	period  time.Duration
	tint    color.Color
}

// NewRenderer creates a renderer drawing on surface.
// A nil tint renders grayscale.
func NewRenderer(clock platform.Clock, surface platform.Surface, period time.Duration, tint color.Color) *Renderer {
	if tint == nil {
		tint = color.White
	}
	return &Renderer{clock: clock, surface: surface, period: period, tint: tint}
}

// RenderFrame clears and presents one frame.
// Draw failures are ignored: nothing depends on display success.
func (r *Renderer) RenderFrame() {
	c := FillColor(Intensity(r.clock.Elapsed(), r.period), r.tint)
	r.surface.SetDrawColor(c)
	_ = r.surface.Clear()
	_ = r.surface.Present()
}
