// Package reports selects the expenses of a reporting period and aggregates them.
package reports

import (
	"errors"
	"fmt"
	"time"

	"github.com/pocketledger/backend/internal/types"
)

// ErrInvalidPeriod is returned for report periods that do not describe
// an existing month or year.
var ErrInvalidPeriod = errors.New("the report period is invalid")

// maxYear is the last year whose window ends on a date with a four digit year.
const maxYear = 9998

// Kind is the length of a reporting period.
type Kind string

const (
	Monthly Kind = "monthly"
	Yearly  Kind = "yearly"
)

// Period is a calendar month or a calendar year.
//
// Month is only used for monthly periods.
type Period struct {
	Kind  Kind
	Month int
	Year  int
}

// MonthlyPeriod returns the period for a calendar month.
func MonthlyPeriod(year, month int) Period {
	return Period{Kind: Monthly, Year: year, Month: month}
}

// YearlyPeriod returns the period for a calendar year.
func YearlyPeriod(year int) Period {
	return Period{Kind: Yearly, Year: year}
}

// String returns the period formatted as YYYY-MM or YYYY.
func (p Period) String() string {
	if p.Kind == Monthly {
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	}

	return fmt.Sprintf("%04d", p.Year)
}

// Window is the half-open date interval [Start, End).
type Window struct {
	Start types.Date `json:"start" example:"2024-01-01" swaggertype:"string" format:"date"` // First day of the window
	End   types.Date `json:"end" example:"2024-02-01" swaggertype:"string" format:"date"`   // First day after the window
}

// Contains reports whether the date is inside the window.
func (w Window) Contains(d types.Date) bool {
	return !d.Before(w.Start) && d.Before(w.End)
}

// ComputeWindow returns the window covering the period.
//
// Both kinds of periods use an exclusive end: a month ends on the first day
// of the following month and a year ends on January 1 of the following year.
func ComputeWindow(p Period) (Window, error) {
	if p.Year < 1 || p.Year > maxYear {
		return Window{}, fmt.Errorf("%w: the year must be between 1 and %d, got %d", ErrInvalidPeriod, maxYear, p.Year)
	}

	switch p.Kind {
	case Monthly:
		if p.Month < 1 || p.Month > 12 {
			return Window{}, fmt.Errorf("%w: the month must be between 1 and 12, got %d", ErrInvalidPeriod, p.Month)
		}

		start := types.NewDate(p.Year, time.Month(p.Month), 1)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil

	case Yearly:
		start := types.NewDate(p.Year, time.January, 1)
		return Window{Start: start, End: start.AddDate(1, 0, 0)}, nil
	}

	return Window{}, fmt.Errorf("%w: unknown period kind '%s'", ErrInvalidPeriod, p.Kind)
}
