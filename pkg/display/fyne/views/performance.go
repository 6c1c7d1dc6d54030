package views

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/perf"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Performance plots the frame times reported by the emulator against
// the hardware frame time.
type Performance struct {
	widget.BaseWidget

	recorder *perf.Recorder
	target   time.Duration
	dirty    atomic.Bool

	image   *image.RGBA
	raster  *canvas.Raster
	average *widget.Label
}

func NewPerformance(r *perf.Recorder, target time.Duration) *Performance {
	p := &Performance{
		recorder: r,
		target:   target,
		image:    image.NewRGBA(image.Rect(0, 0, 640, 320)),
		average:  mono("no frames yet"),
	}
	p.raster = canvas.NewRasterFromImage(p.image)
	p.raster.ScaleMode = canvas.ImageScalePixels
	p.raster.SetMinSize(fyne.NewSize(640, 320))
	p.ExtendBaseWidget(p)
	return p
}

func (p *Performance) Title() string {
	return "Performance"
}

func (p *Performance) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(p.average, nil, nil, nil, p.raster))
}

// Record adds a frame time to the plot.
func (p *Performance) Record(d time.Duration) {
	p.recorder.Record(d)
	p.dirty.Store(true)
}

// Update redraws the plot if a frame time was recorded since the
// last call.
func (p *Performance) Update(display.Snapshot) {
	if !p.dirty.Swap(false) {
		return
	}
	plt, err := p.recorder.Plot(p.target)
	if err != nil {
		return
	}

	c := vgimg.NewWith(vgimg.UseImage(p.image))
	plt.Draw(draw.New(c))
	p.average.SetText(fmt.Sprintf("average %s, target %s", p.recorder.Average(), p.target))
	p.raster.Refresh()
}
