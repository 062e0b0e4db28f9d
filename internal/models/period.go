package models

import (
	"fmt"
	"time"
)

// Period is a calendar month, the unit every monthly aggregate is computed over.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf builds a Period from a zero-based month index (0 is January),
// the convention used by the month pickers.
func PeriodOf(monthIndex, year int) Period {
	return Period{Year: year, Month: time.Month(monthIndex + 1)}
}

// PeriodContaining returns the month d falls in.
func PeriodContaining(d Date) Period {
	return Period{Year: d.Year(), Month: d.Month()}
}

// CurrentPeriod returns the month of now.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: now.Month()}
}

// Index returns the zero-based month index.
func (p Period) Index() int { return int(p.Month) - 1 }

// Contains reports whether d falls inside the period.
func (p Period) Contains(d Date) bool {
	return d.Year() == p.Year && d.Month() == p.Month
}

// Previous returns the month before p, wrapping January to December of the
// previous year.
func (p Period) Previous() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Next returns the month after p.
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}
