package headless

import (
	"sync"
	"testing"
	"time"

	"github.com/thelolagemann/gomeboy/pkg/display"
	"github.com/thelolagemann/gomeboy/pkg/display/event"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

func TestDriver_Limit(t *testing.T) {
	d := New(log.NewNullLogger())
	d.Limit = 3

	fb := make(chan []byte, 5)
	for i := 0; i < 5; i++ {
		fb <- []byte{byte(i)}
	}

	if err := d.Start(fb, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if d.Frames != 3 || d.Last[0] != 2 {
		t.Errorf("expected to stop after 3 frames, got %d (last %v)", d.Frames, d.Last)
	}
}

func TestDriver_Stop(t *testing.T) {
	d := New(log.NewNullLogger())
	done := make(chan error)
	go func() { done <- d.Start(nil, make(chan event.Event), nil, nil) }()

	_ = d.Stop()
	_ = d.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("driver did not stop")
	}
}

func TestDriver_StopConcurrent(t *testing.T) {
	d := New(log.NewNullLogger())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Stop()
		}()
	}
	wg.Wait()

	if err := d.Start(nil, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
}

func TestInstalled(t *testing.T) {
	if display.GetDriver("headless") == nil {
		t.Fatal("expected headless driver to be installed")
	}
}
