package merger

// QueueOrder selects which end of the twig queue is popped first. Both
// directions are exposed; QueueSmallestFirst is the default, matching the
// documented default behavior of yielding small twigs before large ones.
type QueueOrder string

const (
	QueueSmallestFirst QueueOrder = "smallest_first"
	QueueLargestFirst  QueueOrder = "largest_first"
)

// IsValid reports whether q is one of the known QueueOrder values.
func (q QueueOrder) IsValid() bool {
	switch q {
	case QueueSmallestFirst, QueueLargestFirst:
		return true
	default:
		return false
	}
}

// Options configures a Merger run, grounded on the teacher's flat,
// yaml-decodable config struct convention (internal/config.Config).
type Options struct {
	// MinimumMatchSize is the smallest MCS match the Merger will act on;
	// smaller matches are skipped as ambiguous/insufficient. Default 5.
	MinimumMatchSize int `yaml:"minimum_match_size"`

	// Order controls which twig the queue yields first.
	Order QueueOrder `yaml:"queue_order"`
}

// DefaultOptions returns the spec-mandated defaults.
func DefaultOptions() Options {
	return Options{
		MinimumMatchSize: 5,
		Order:            QueueSmallestFirst,
	}
}

// Validate checks that the Options hold sane values.
func (o Options) Validate() error {
	if o.MinimumMatchSize < 1 {
		return errInvalidOptions("minimum_match_size must be at least 1")
	}
	if !o.Order.IsValid() {
		return errInvalidOptions("queue_order must be smallest_first or largest_first")
	}
	return nil
}

type optionsError string

func (e optionsError) Error() string { return string(e) }

func errInvalidOptions(msg string) error { return optionsError("merger: " + msg) }
