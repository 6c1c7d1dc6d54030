package scheduler

// EventType identifies a kind of deferred hardware event. Only one
// event of each type can be scheduled at a time.
type EventType int

const (
	// DMATransfer completes an OAM DMA copy.
	DMATransfer EventType = iota
	// SerialTransfer completes the shifting of a serial byte.
	SerialTransfer

	eventTypes
)

var eventNames = [eventTypes]string{"DMATransfer", "SerialTransfer"}

func (e EventType) String() string {
	if e < 0 || e >= eventTypes {
		return "Unknown"
	}
	return eventNames[e]
}

type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event

	// set by Defer until the next Tick places the event
	deferred bool
	after    uint64
}
