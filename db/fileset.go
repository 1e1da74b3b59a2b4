package db

import (
	"hkmond/common"
)

// FilesFor resolves a selector to the set of file basenames that must be
// loaded to satisfy the query.  The order of the result is not a contract;
// downstream merges data regardless of file order.
//
// Two intentionally different predicates (kept for parity with long-standing
// dashboard behavior):
//
//   - single-day lookup (start == end, and all RecentHours queries) selects by
//     span containment: minTime.date <= day <= maxTime.date, so a gap day
//     inside a file's span still matches;
//
//   - multi-day lookup (start != end) selects by availability intersection:
//     some day in the file's availableDays falls inside [start, end].

func (s *Store) FilesFor(kind SubsystemKind, sel Selector) ([]string, error) {
	ix, err := s.Refresh(kind)
	if err != nil {
		return nil, err
	}

	var startDay, endDay string
	if sel.Hours > 0 {
		// Only the file choice is narrowed here, to the most recently covered
		// day; the hour cut itself happens in the window filter.
		bounds, ok := ix.GlobalBounds()
		if !ok {
			return []string{}, nil
		}
		startDay = common.DayOfUnix(bounds.Latest)
		endDay = startDay
	} else {
		start, err := common.ParseDayUtc(sel.Start)
		if err != nil {
			return nil, err
		}
		end, err := common.ParseDayUtc(sel.End)
		if err != nil {
			return nil, err
		}
		startDay = common.DayOf(start)
		endDay = common.DayOf(end)
	}

	files := make([]string, 0)
	if startDay == endDay {
		for name, r := range ix.Records {
			if common.DayOfUnix(r.MinTime) <= startDay && startDay <= common.DayOfUnix(r.MaxTime) {
				files = append(files, name)
			}
		}
		return files, nil
	}

	rangeDays, err := common.DaysBetween(startDay, endDay)
	if err != nil {
		return nil, err
	}
	for name, r := range ix.Records {
		for _, d := range rangeDays {
			if r.coversDay(d) {
				files = append(files, name)
				break
			}
		}
	}
	return files, nil
}
