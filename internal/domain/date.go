package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// GenDate is a half-open date interval [Start, End] with an Accuracy
// tolerance expressed in days. An exact date is the degenerate interval
// Start == End, Accuracy == 0 (§3 Date).
type GenDate struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Accuracy int       `json:"accuracy"` // tolerance, in days
}

// NewExactDate returns the degenerate interval representing a single known day.
func NewExactDate(t time.Time) GenDate {
	return GenDate{Start: t, End: t}
}

// NewDateRange returns the interval [start, end] with the given accuracy in days.
func NewDateRange(start, end time.Time, accuracyDays int) GenDate {
	return GenDate{Start: start, End: end, Accuracy: accuracyDays}
}

// IsZero reports whether the date carries no information.
func (d GenDate) IsZero() bool {
	return d.Start.IsZero() && d.End.IsZero()
}

// Validate checks that the interval is well-formed.
func (d GenDate) Validate() error {
	if d.IsZero() {
		return nil
	}
	if d.End.Before(d.Start) {
		return fmt.Errorf("end %s is before start %s", d.End.Format(time.RFC3339), d.Start.Format(time.RFC3339))
	}
	if d.Accuracy < 0 {
		return fmt.Errorf("accuracy %d cannot be negative", d.Accuracy)
	}
	return nil
}

// OverlapConsistent reports whether d and other could describe the same
// event, i.e. their accuracy-widened intervals intersect (§3):
//
//	d.Start - d.Accuracy <= other.End + other.Accuracy AND
//	other.Start - other.Accuracy <= d.End + d.Accuracy
func (d GenDate) OverlapConsistent(other GenDate) bool {
	if d.IsZero() || other.IsZero() {
		return false
	}
	dStart := d.Start.AddDate(0, 0, -d.Accuracy)
	dEnd := d.End.AddDate(0, 0, d.Accuracy)
	oStart := other.Start.AddDate(0, 0, -other.Accuracy)
	oEnd := other.End.AddDate(0, 0, other.Accuracy)
	return !dStart.After(oEnd) && !oStart.After(dEnd)
}

// Before reports whether d's earliest possible moment precedes other's
// earliest possible moment.
func (d GenDate) Before(other GenDate) bool {
	return d.Start.Before(other.Start)
}

// String renders the interval for debugging/logging.
func (d GenDate) String() string {
	if d.IsZero() {
		return "(unknown)"
	}
	if d.Start.Equal(d.End) && d.Accuracy == 0 {
		return d.Start.Format("2006-01-02")
	}
	return fmt.Sprintf("%s..%s (+/-%dd)", d.Start.Format("2006-01-02"), d.End.Format("2006-01-02"), d.Accuracy)
}

// dateJSON is the wire shape specified in §6: {start, end, accuracy}.
type dateJSON struct {
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
	Accuracy int        `json:"accuracy,omitempty"`
}

// MarshalJSON implements the §6 wire format for dates.
func (d GenDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(dateJSON{Start: &d.Start, End: &d.End, Accuracy: d.Accuracy})
}

// UnmarshalJSON implements the §6 wire format for dates.
func (d *GenDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = GenDate{}
		return nil
	}
	var wire dateJSON
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	if wire.Start != nil {
		d.Start = *wire.Start
	}
	if wire.End != nil {
		d.End = *wire.End
	}
	d.Accuracy = wire.Accuracy
	return nil
}
