package db

import (
	"errors"
	"fmt"

	"hkmond/common"
)

// Selector is the user's choice of time window: the most recent Hours of data
// when Hours > 0, the inclusive day range [Start, End] when Hours == 0 and
// both days are set, and no filtering at all otherwise.

type Selector struct {
	Hours int
	Start string // "yyyy-mm-dd", inclusive
	End   string // "yyyy-mm-dd", inclusive
}

func NewSelector(hours int, start, end string) (Selector, error) {
	if hours < 0 {
		return Selector{}, errors.New("Hours must be nonnegative")
	}
	if hours > 0 {
		return Selector{Hours: hours}, nil
	}
	if start == "" && end == "" {
		return Selector{}, nil
	}
	if _, err := common.ParseDayUtc(start); err != nil {
		return Selector{}, fmt.Errorf("Bad start date %q", start)
	}
	if _, err := common.ParseDayUtc(end); err != nil {
		return Selector{}, fmt.Errorf("Bad end date %q", end)
	}
	return Selector{Start: start, End: end}, nil
}

func (sel Selector) hasRange() bool {
	return sel.Start != "" && sel.End != ""
}

// The explicit range covers from midnight of Start to the last second of End,
// so that sample-time comparisons can be inclusive on both sides.

func (sel Selector) explicitWindow() (xmin, xmax float64) {
	start, _ := common.ParseDayUtc(sel.Start)
	end, _ := common.ParseDayUtc(sel.End)
	xmin = float64(start.Unix())
	xmax = float64(end.AddDate(0, 0, 1).Unix() - 1)
	return
}

// FilterSamples windows a single series.  For RecentHours the anchor is the
// series' last sample, not the wall clock - when the data is stale, "last 5
// hours" means the 5 hours before the data stopped.

func FilterSamples(sel Selector, xs, ys []float64) ([]float64, []float64) {
	switch {
	case sel.Hours > 0:
		if len(xs) == 0 {
			return xs, ys
		}
		xmin := xs[len(xs)-1] - float64(sel.Hours)*3600
		return applyWindow(xs, ys, xmin, xs[len(xs)-1])
	case sel.hasRange():
		xmin, xmax := sel.explicitWindow()
		return applyWindow(xs, ys, xmin, xmax)
	default:
		return xs, ys
	}
}

// jointWindow computes one pair of window bounds shared by all channels of a
// multi-channel file: for RecentHours, xmax is the max over the channels' max
// positive timestamps and xmin follows from the hour count; for the
// unfiltered case the bounds span all positive timestamps.  ok is false when
// no channel has any positive timestamp.

func jointWindow(sel Selector, times [][]float64) (xmin, xmax float64, ok bool) {
	if sel.Hours == 0 && sel.hasRange() {
		xmin, xmax = sel.explicitWindow()
		return xmin, xmax, true
	}

	for _, xs := range times {
		for _, t := range xs {
			if t <= 0 {
				continue
			}
			if !ok {
				xmin, xmax = t, t
				ok = true
			} else {
				xmin = min(xmin, t)
				xmax = max(xmax, t)
			}
		}
	}
	if !ok {
		return 0, 0, false
	}
	if sel.Hours > 0 {
		xmin = xmax - float64(sel.Hours)*3600
	}
	return xmin, xmax, true
}

func applyWindow(xs, ys []float64, xmin, xmax float64) ([]float64, []float64) {
	xf := make([]float64, 0, len(xs))
	yf := make([]float64, 0, len(ys))
	for i, t := range xs {
		if t >= xmin && t <= xmax {
			xf = append(xf, t)
			if i < len(ys) {
				yf = append(yf, ys[i])
			}
		}
	}
	return xf, yf
}
