package db

import (
	"slices"

	"hkmond/common"
)

// FileRecord is the cached metadata for one measurement file.  A record is
// only ever stored with a non-empty Days list; files with no extractable valid
// data are never cached, so a later fix to the source file (which bumps its
// mtime) is picked up on the next refresh.

type FileRecord struct {
	// Modification time of the underlying file at index time, UnixNano.  A
	// mismatch with the file's current mtime invalidates the record.
	Mtime int64 `json:"mtime"`

	// Earliest and latest valid sample timestamps, Unix seconds UTC.
	MinTime int64 `json:"minTime"`
	MaxTime int64 `json:"maxTime"`

	// Calendar days with at least one valid sample, sorted ascending,
	// "yyyy-mm-dd", never empty.
	Days []string `json:"availableDays"`
}

func (r *FileRecord) coversDay(day string) bool {
	_, found := slices.BinarySearch(r.Days, day)
	return found
}

// SubsystemIndex maps file basename -> FileRecord for one subsystem.  The
// Records map is shared with the Store's soft cache; callers must treat it as
// read-only.

type SubsystemIndex struct {
	Kind    SubsystemKind
	Records map[string]*FileRecord
}

// Global bounds across all records.  ok is false when the index has no
// records, which callers must surface as "no data available" rather than a
// real time range.

func (ix *SubsystemIndex) GlobalBounds() (bounds common.Timebound, ok bool) {
	for _, r := range ix.Records {
		if !ok {
			bounds = common.Timebound{Earliest: r.MinTime, Latest: r.MaxTime}
			ok = true
			continue
		}
		bounds.Earliest = min(bounds.Earliest, r.MinTime)
		bounds.Latest = max(bounds.Latest, r.MaxTime)
	}
	return
}

// The union of every record's available days.  Overlapping files contribute
// their union, not their intersection.

func (ix *SubsystemIndex) availableDays() map[string]bool {
	days := make(map[string]bool)
	for _, r := range ix.Records {
		for _, d := range r.Days {
			days[d] = true
		}
	}
	return days
}
