package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_Order(t *testing.T) {
	s := NewScheduler()
	var fired []EventType
	s.RegisterEvent(DMATransfer, func() { fired = append(fired, DMATransfer) })
	s.RegisterEvent(SerialTransfer, func() { fired = append(fired, SerialTransfer) })

	s.ScheduleEvent(SerialTransfer, 100)
	s.ScheduleEvent(DMATransfer, 10)
	assert.Equal(t, "DMATransfer:10->SerialTransfer:100->", s.String())

	s.Tick(9)
	assert.Empty(t, fired)
	assert.Equal(t, uint64(1), s.Until(DMATransfer))

	s.Tick(1)
	assert.Equal(t, []EventType{DMATransfer}, fired)
	assert.False(t, s.Scheduled(DMATransfer))

	// a large tick runs everything that became due
	s.Tick(500)
	assert.Equal(t, []EventType{DMATransfer, SerialTransfer}, fired)
	assert.Equal(t, uint64(510), s.Cycle())
}

func TestScheduler_Reschedule(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.RegisterEvent(DMATransfer, func() { count++ })

	s.ScheduleEvent(DMATransfer, 10)
	s.Tick(5)
	s.ScheduleEvent(DMATransfer, 10) // restart replaces the pending event
	s.Tick(9)
	assert.Equal(t, 0, count)
	s.Tick(1)
	assert.Equal(t, 1, count)

	s.ScheduleEvent(DMATransfer, 1)
	s.DescheduleEvent(DMATransfer)
	s.Tick(10)
	assert.Equal(t, 1, count)
	assert.Equal(t, uint64(0), s.Until(DMATransfer))
}

func TestScheduler_Chained(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.RegisterEvent(SerialTransfer, func() {
		count++
		if count < 3 {
			s.ScheduleEvent(SerialTransfer, 0)
		}
	})
	s.ScheduleEvent(SerialTransfer, 1)
	s.Tick(1)
	assert.Equal(t, 3, count)
}

func TestScheduler_Defer(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.RegisterEvent(DMATransfer, func() { count++ })

	s.Defer(DMATransfer, 160)
	assert.True(t, s.Scheduled(DMATransfer))
	assert.Equal(t, uint64(160), s.Until(DMATransfer))

	// the step that deferred the event
	s.Tick(3)
	assert.Equal(t, uint64(160), s.Until(DMATransfer))
	s.Tick(159)
	assert.Equal(t, 0, count)
	s.Tick(1)
	assert.Equal(t, 1, count)
	assert.Equal(t, uint64(163), s.Cycle())

	s.Defer(DMATransfer, 1)
	s.DescheduleEvent(DMATransfer)
	s.Tick(10)
	assert.Equal(t, 1, count)
	assert.False(t, s.Scheduled(DMATransfer))
}
