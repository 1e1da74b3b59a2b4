package db

import (
	"errors"
	"fmt"
	"regexp"

	"hkmond/common"
)

// SubsystemKind is resolved once at the API boundary from the external
// subsystem name; everything below dispatches on the kind, never on file name
// substrings.

type SubsystemKind int

const (
	KindThermetry SubsystemKind = iota
	KindDilutionFridge
	KindCryocmp
	KindRsfend
)

var ErrUnknownSubsystem = errors.New("Unknown subsystem")

var kindNames = []string{"thermetry", "dilutionFridge", "cryocmp", "rsfend"}

func KindFromName(name string) (SubsystemKind, error) {
	for i, n := range kindNames {
		if n == name {
			return SubsystemKind(i), nil
		}
	}
	return 0, ErrUnknownSubsystem
}

func KindNames() []string {
	return kindNames
}

func (k SubsystemKind) String() string {
	return kindNames[k]
}

// Per-kind tables.  Thermetry records 16 channels with dedicated time arrays;
// the other subsystems have a single designated time variable.

const thermetryChannels = 16

func (k SubsystemKind) timeVars() []string {
	switch k {
	case KindThermetry:
		vars := make([]string, thermetryChannels)
		for i := range vars {
			vars[i] = fmt.Sprintf("Data.ToltecThermetry.Time%d", i+1)
		}
		return vars
	case KindDilutionFridge:
		return []string{"Data.ToltecDilutionFridge.SampleTime"}
	case KindCryocmp:
		return []string{"Data.ToltecCryocmp.Time"}
	case KindRsfend:
		return []string{"Data.Rsfend.Time"}
	default:
		panic("Unknown kind")
	}
}

// The persisted index for a subsystem lives under this basename; directory
// scans must never treat it as a measurement file.

func (k SubsystemKind) IndexBasename() string {
	return k.String() + "_index.json"
}

// Measurement file names embed the file's nominal date:
// {subsystem}_{yyyy-mm-dd}_...nc.  This is the only file -> expected-date
// association we have, and it anchors the plausibility window for timestamps:
// a sample more than a year after the file's nominal date (or before it) is a
// clock glitch, not data.

var fileDateRe = regexp.MustCompile(`^[A-Za-z0-9]+_(\d\d\d\d-\d\d-\d\d)_`)

const plausibleDays = 365

func plausibleBounds(basename string) (lo, hi int64, ok bool) {
	probe := fileDateRe.FindStringSubmatch(basename)
	if probe == nil {
		return 0, 0, false
	}
	day, err := common.ParseDayUtc(probe[1])
	if err != nil {
		return 0, 0, false
	}
	lo = day.Unix()
	hi = day.AddDate(0, 0, plausibleDays).Unix()
	return lo, hi, true
}
