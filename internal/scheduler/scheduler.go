package scheduler

import (
	"fmt"
	"strings"
)

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific machine cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is ticked, every
// event that has become due is executed and removed from the list, in order.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]*Event
}

func NewScheduler() *Scheduler {
	s := &Scheduler{}

	// the events are allocated up front and reused, so scheduling
	// never allocates
	for i := range s.events {
		s.events[i] = &Event{eventType: EventType(i)}
	}

	return s
}

// Cycle returns the number of machine cycles the scheduler has seen.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RegisterEvent registers a function of the EventType to be called when
// the event becomes due.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by the given number of machine cycles,
// executing every event that is now due in the order it was scheduled
// for. A handler may schedule further events.
func (s *Scheduler) Tick(c uint64) {
	s.cycles += c

	for _, event := range s.events {
		if event.deferred {
			s.ScheduleEvent(event.eventType, event.after)
		}
	}

	for s.root != nil && s.root.cycle <= s.cycles {
		event := s.root
		s.root = event.next
		event.next = nil
		event.scheduled = false

		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}
}

// ScheduleEvent schedules an event to be executed after the given number
// of machine cycles. An event of the same type that is already scheduled
// is replaced.
func (s *Scheduler) ScheduleEvent(eventType EventType, after uint64) {
	s.DescheduleEvent(eventType)

	this := s.events[eventType]
	this.cycle = s.cycles + after
	this.scheduled = true

	// events due on the same cycle run in the order they were scheduled
	if s.root == nil || this.cycle < s.root.cycle {
		this.next = s.root
		s.root = this
		return
	}

	event := s.root
	for event.next != nil && event.next.cycle <= this.cycle {
		event = event.next
	}
	this.next = event.next
	event.next = this
}

// Defer schedules an event to be executed the given number of machine
// cycles after the end of the step in progress, that is, counted from
// the next call to Tick. Hardware registers written mid-instruction use
// it, as the cycles of the writing instruction have not been ticked yet.
func (s *Scheduler) Defer(eventType EventType, after uint64) {
	s.DescheduleEvent(eventType)

	this := s.events[eventType]
	this.deferred = true
	this.after = after
	this.scheduled = true
}

// DescheduleEvent removes the event from the list, if it is scheduled.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	if e := s.events[eventType]; e.deferred {
		e.deferred = false
		e.scheduled = false
		return
	}

	var prev *Event
	for event := s.root; event != nil; prev, event = event, event.next {
		if event.eventType != eventType {
			continue
		}
		if prev == nil {
			s.root = event.next
		} else {
			prev.next = event.next
		}
		event.next = nil
		event.scheduled = false
		return
	}
}

// Scheduled reports whether an event of the given type is pending.
func (s *Scheduler) Scheduled(eventType EventType) bool {
	return s.events[eventType].scheduled
}

// Until returns the number of machine cycles until the event is due,
// or 0 if it is not scheduled.
func (s *Scheduler) Until(eventType EventType) uint64 {
	e := s.events[eventType]
	if !e.scheduled {
		return 0
	}
	if e.deferred {
		return e.after
	}
	return e.cycle - s.cycles
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		b.WriteString(fmt.Sprintf("%s:%d->", event.eventType, event.cycle))
	}
	return b.String()
}
