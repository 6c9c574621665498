// Package input turns joystick style axes into swerve drive commands.
//
// Axes are polled rather than observed: every change bumps a version counter and consumers, such
// as the drive loop, compare versions to decide whether anything needs to be recomputed.
package input

import (
	"time"
)

// EventType is the kind of change an Event reports.
type EventType uint8

// Event types. The zero EventType is not a valid event.
const (
	Connect EventType = iota + 1
	Disconnect
	PositionChangeAbs
)

// Control identifies a single axis of a controller.
type Control uint32

// Axis controls understood by a Mixer.
const (
	AbsoluteX Control = 1000 + iota
	AbsoluteY
	AbsoluteZ
	AbsoluteRX
	AbsoluteRY
	AbsoluteRZ
)

func (c Control) String() string {
	switch c {
	case AbsoluteX:
		return "AbsoluteX"
	case AbsoluteY:
		return "AbsoluteY"
	case AbsoluteZ:
		return "AbsoluteZ"
	case AbsoluteRX:
		return "AbsoluteRX"
	case AbsoluteRY:
		return "AbsoluteRY"
	case AbsoluteRZ:
		return "AbsoluteRZ"
	default:
		return "Unknown"
	}
}

// An Event is a new position reported for one control.
type Event struct {
	Time    time.Time
	Event   EventType
	Control Control
	Value   float64 // -1.0 to +1.0
}

// NewPositionEvent returns an absolute position event for control stamped with the current time.
func NewPositionEvent(control Control, value float64) Event {
	return Event{Time: time.Now(), Event: PositionChangeAbs, Control: control, Value: value}
}
