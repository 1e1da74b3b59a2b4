package db

import (
	"hkmond/common"
)

// DateBounds configures the date-range picker for one subsystem.

type DateBounds struct {
	// Every day in [MinDate, MaxDate] with no data in any file, sorted
	// ascending.  Used to grey out picker entries.
	DisabledDays []string `json:"disabledDays"`

	MinDate string `json:"minDate"`
	MaxDate string `json:"maxDate"`

	// True when the subsystem has no valid data at all; MinDate and MaxDate
	// then hold today's date by convention and must not be read as a real
	// range.
	NoData bool `json:"noData,omitempty"`
}

// DateBounds refreshes the subsystem's index and computes picker bounds.

func (s *Store) DateBounds(kind SubsystemKind) (DateBounds, error) {
	ix, err := s.Refresh(kind)
	if err != nil {
		return DateBounds{}, err
	}

	bounds, ok := ix.GlobalBounds()
	if !ok {
		today := common.Today()
		return DateBounds{DisabledDays: []string{}, MinDate: today, MaxDate: today, NoData: true}, nil
	}

	minDate := common.DayOfUnix(bounds.Earliest)
	maxDate := common.DayOfUnix(bounds.Latest)
	available := ix.availableDays()
	allDays, err := common.DaysBetween(minDate, maxDate)
	if err != nil {
		return DateBounds{}, err
	}
	disabled := make([]string, 0)
	for _, d := range allDays {
		if !available[d] {
			disabled = append(disabled, d)
		}
	}
	return DateBounds{DisabledDays: disabled, MinDate: minDate, MaxDate: maxDate}, nil
}
