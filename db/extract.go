package db

import (
	"errors"
	"path"
	"sort"

	"hkmond/common"
)

// ErrNoData means every channel in the file yielded zero valid timestamps
// after filtering.  It is a normal outcome, not a failure: the instruments
// write files eagerly and fill them in later.
var ErrNoData = errors.New("No valid data in file")

// TimeCoverage is the extracted time metadata for one measurement file.

type TimeCoverage struct {
	MinTime int64    // Unix seconds UTC
	MaxTime int64    // Unix seconds UTC
	Days    []string // sorted ascending, non-empty
}

// ExtractTimeCoverage opens the file and folds every channel's time array
// into the running min/max and the set of calendar days touched.
//
// Timestamps <= 0 are instrument sentinels emitted before acquisition starts
// and are dropped silently.  Timestamps outside the plausibility window
// derived from the file name's embedded date are clock glitches; they are
// dropped too but counted as soft errors so the caller can surface a
// diagnostic.  Missing or malformed variables degrade to partial coverage or
// ErrNoData, never a hard failure.

func ExtractTimeCoverage(filePath string, kind SubsystemKind) (cov *TimeCoverage, softErrors int, err error) {
	ds, err := openDataset(filePath)
	if err != nil {
		return nil, 0, err
	}
	defer ds.Close()

	lo, hi, bounded := plausibleBounds(path.Base(filePath))
	if !bounded {
		common.Log.Debugf("extract: no date in file name %s, plausibility check disabled", filePath)
	}

	var minTime, maxTime int64
	haveData := false
	daySet := make(map[string]bool)
	for _, timeVar := range kind.timeVars() {
		if !ds.HasVariable(timeVar) {
			continue
		}
		times, varErr := ds.Floats(timeVar)
		if varErr != nil {
			common.Log.Warningf("extract: %s: bad variable %s: %s", filePath, timeVar, varErr.Error())
			softErrors++
			continue
		}
		for _, tf := range times {
			if tf <= 0 {
				continue
			}
			t := int64(tf)
			if bounded && (t < lo || t >= hi) {
				softErrors++
				continue
			}
			if !haveData {
				minTime, maxTime = t, t
				haveData = true
			} else {
				minTime = min(minTime, t)
				maxTime = max(maxTime, t)
			}
			daySet[common.DayOfUnix(t)] = true
		}
	}

	if !haveData {
		return nil, softErrors, ErrNoData
	}

	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)
	return &TimeCoverage{MinTime: minTime, MaxTime: maxTime, Days: days}, softErrors, nil
}
