package circulation

import "time"

// Default circulation limits, matching the library's standing policy.
const (
	DefaultMaxBorrows   = 10
	DefaultMaxReserve   = 5
	DefaultLoanDuration = 3
	DefaultLateFee      = 10
)

// DateLayout is the wire format for all calendar dates. Fixed-width and
// zero-padded, so lexicographic comparison orders dates correctly.
const DateLayout = "2006-01-02"

// Config carries the circulation limits and the clock. Zero fields fall
// back to the defaults, so tests can shrink a single limit without
// spelling out the rest.
type Config struct {
	MaxBorrows   int              // loans a student may hold at once
	MaxReserve   int              // reservations a student may hold across all books
	LoanDuration int              // loan length in days
	LateFee      int              // flat penalty per late return
	Clock        func() time.Time // defaults to time.Now
}

func (c Config) withDefaults() Config {
	if c.MaxBorrows == 0 {
		c.MaxBorrows = DefaultMaxBorrows
	}
	if c.MaxReserve == 0 {
		c.MaxReserve = DefaultMaxReserve
	}
	if c.LoanDuration == 0 {
		c.LoanDuration = DefaultLoanDuration
	}
	if c.LateFee == 0 {
		c.LateFee = DefaultLateFee
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}

func (c Config) today() string {
	return c.Clock().Format(DateLayout)
}

func (c Config) dueDate() string {
	return c.Clock().AddDate(0, 0, c.LoanDuration).Format(DateLayout)
}
