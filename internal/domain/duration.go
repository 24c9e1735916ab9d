package domain

import (
	"encoding/json"
	"fmt"
)

// Duration is the age of a Person at the time of a Fact, expressed as a
// years/months/weeks/days breakdown rather than a single scalar, grounded
// on original_source/data_model.py's Duration (duration_list, precision,
// year_day_ambiguity). Precision names the coarsest unit the original
// record actually specified (e.g. a death record giving only "4 2/3
// annorum" carries PrecisionMonth even though Years is the nonzero
// component); YearDayAmbiguity flags the recurring transcription hazard
// where a column heading of "dies vitae" leaves it unclear whether an
// entered number is days or years.
type Duration struct {
	Years            int
	Months           int
	Weeks            int
	Days             int
	Precision        DurationPrecision
	YearDayAmbiguity bool
}

// NewDuration returns a Duration with precision inferred from the first
// (coarsest) non-zero component of [years, months, weeks, days], falling
// back to PrecisionDay when every component is zero.
func NewDuration(years, months, weeks, days int) Duration {
	d := Duration{Years: years, Months: months, Weeks: weeks, Days: days}
	d.Precision = d.inferredPrecision()
	return d
}

// IsZero reports whether the Duration carries no information at all.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0 && d.Precision == ""
}

func (d Duration) inferredPrecision() DurationPrecision {
	switch {
	case d.Years > 0:
		return PrecisionYear
	case d.Months > 0:
		return PrecisionMonth
	case d.Weeks > 0:
		return PrecisionWeek
	default:
		return PrecisionDay
	}
}

// Validate checks that the Duration holds sane values.
func (d Duration) Validate() error {
	if d.Years < 0 || d.Months < 0 || d.Weeks < 0 || d.Days < 0 {
		return fmt.Errorf("duration components cannot be negative")
	}
	if !d.Precision.IsValid() {
		return fmt.Errorf("invalid precision: %s", d.Precision)
	}
	return nil
}

// String renders the Duration for debugging/logging.
func (d Duration) String() string {
	if d.IsZero() {
		return "(unknown)"
	}
	s := fmt.Sprintf("%dy%dm%dw%dd (%s)", d.Years, d.Months, d.Weeks, d.Days, d.Precision)
	if d.YearDayAmbiguity {
		s += " [year/day ambiguous]"
	}
	return s
}

// durationJSON is the §6 wire shape: {duration: [y,m,w,d], precision,
// year_day_ambiguity}.
type durationJSON struct {
	Duration         [4]int            `json:"duration"`
	Precision        DurationPrecision `json:"precision,omitempty"`
	YearDayAmbiguity bool              `json:"year_day_ambiguity,omitempty"`
}

// MarshalJSON implements the §6 wire format for durations.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(durationJSON{
		Duration:         [4]int{d.Years, d.Months, d.Weeks, d.Days},
		Precision:        d.Precision,
		YearDayAmbiguity: d.YearDayAmbiguity,
	})
}

// UnmarshalJSON implements the §6 wire format for durations.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Duration{}
		return nil
	}
	var wire durationJSON
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	d.Years, d.Months, d.Weeks, d.Days = wire.Duration[0], wire.Duration[1], wire.Duration[2], wire.Duration[3]
	d.Precision = wire.Precision
	d.YearDayAmbiguity = wire.YearDayAmbiguity
	return nil
}
