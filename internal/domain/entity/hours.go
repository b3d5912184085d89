package entity

import (
	"time"
)

// Availability Verdict
const (
	VerdictOpen         = "OPEN"
	VerdictClosed       = "CLOSED"
	VerdictUnparseable  = "UNPARSEABLE"
	VerdictUnverifiable = "UNVERIFIABLE"
)

// BusinessHours represents the open/close interval shared by a group of
// weekdays. Open always precedes Close; entries that would violate that are
// rejected as unverifiable before they get here.
type BusinessHours struct {
	DayGroup  string
	Open      time.Time
	Close     time.Time
	OpenText  string
	CloseText string
}

// Verdict is the outcome of one availability check
type Verdict struct {
	Kind     string
	Weekday  string
	DateText string
	TimeText string
	// BadField names the input that failed to resolve ("date" or "time")
	// when Kind is UNPARSEABLE
	BadField string
	// Hours carries the interval the verdict was judged against, present for
	// OPEN and CLOSED
	Hours *BusinessHours
}
