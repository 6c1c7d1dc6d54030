package perf

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

// StatsAddress is where runtime statistics are served by default.
const StatsAddress = "localhost:12600"

// ServeStats serves runtime statistics (heap, goroutines, GC) on addr
// in the background until stop is called.
func ServeStats(addr string, l log.Logger) (stop func()) {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()
	go mgr.Start()

	l.Infof("stats server available at http://%s/debug/statsview", addr)
	return mgr.Stop
}
