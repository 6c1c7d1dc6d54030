// Package perf records how long the emulator takes to produce each
// frame and renders the result as a plot.
package perf

import (
	"errors"
	"sync"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoSamples is returned when plotting an empty recorder.
var ErrNoSamples = errors.New("perf: no frame times recorded")

// Recorder keeps the most recent frame times. It is safe for
// concurrent use.
type Recorder struct {
	times []time.Duration
	max   int
	total int

	mu sync.Mutex
}

// NewRecorder returns a recorder that keeps up to max samples. The
// recorder always keeps at least the latest sample.
func NewRecorder(max int) *Recorder {
	if max < 1 {
		max = 1
	}
	return &Recorder{max: max}
}

// Record adds a frame time, dropping the oldest sample once the
// recorder is full.
func (r *Recorder) Record(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.times) == r.max {
		copy(r.times, r.times[1:])
		r.times = r.times[:r.max-1]
	}
	r.times = append(r.times, d)
	r.total++
}

// Times returns a copy of the recorded samples, oldest first.
func (r *Recorder) Times() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.times...)
}

// Average returns the mean of the recorded samples.
func (r *Recorder) Average() time.Duration {
	times := r.Times()
	if len(times) == 0 {
		return 0
	}
	var sum time.Duration
	for _, t := range times {
		sum += t
	}
	return sum / time.Duration(len(times))
}

// Plot draws the frame times in milliseconds against the frame
// number, with the target frame time as a reference line.
func (r *Recorder) Plot(target time.Duration) (*plot.Plot, error) {
	times := r.Times()
	if len(times) == 0 {
		return nil, ErrNoSamples
	}

	r.mu.Lock()
	first := r.total - len(times)
	r.mu.Unlock()

	p := plot.New()
	p.Title.Text = "Frame Time"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "ms"

	points := make(plotter.XYs, len(times))
	for i, t := range times {
		points[i].X = float64(first + i)
		points[i].Y = float64(t) / float64(time.Millisecond)
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	p.Add(line)

	if target > 0 {
		ms := float64(target) / float64(time.Millisecond)
		ref := plotter.NewFunction(func(float64) float64 { return ms })
		ref.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(ref)
		p.Legend.Add("target", ref)
	}
	p.Legend.Add("frame", line)

	return p, nil
}

// SavePlot writes the plot to filename, the format is chosen by the
// file extension (png, svg, pdf...).
func (r *Recorder) SavePlot(filename string, target time.Duration) error {
	p, err := r.Plot(target)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}
