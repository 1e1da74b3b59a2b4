package db

import (
	"errors"
	"os"
	"path"
	"strings"

	"hkmond/common"
)

// Refresh brings the subsystem's index up to date with the directory and
// returns it.
//
// Per file: a cached record whose stored mtime equals the file's current
// mtime is reused without opening the file; otherwise the file is
// re-extracted and, on a non-NoData result, the record is replaced and the
// index marked dirty.  The persisted index is rewritten only when dirty.
//
// Each file is fault-isolated: an extraction failure is logged, the file is
// skipped for this cycle, and its old record (if any) is preserved.  Entries
// for files no longer on disk are kept (deliberate: manual archival should
// not erase history), but their absence is logged so the staleness is
// observable.

func (s *Store) Refresh(kind SubsystemKind) (*SubsystemIndex, error) {
	s.Lock()
	defer s.Unlock()
	return s.refreshLocked(kind)
}

func (s *Store) refreshLocked(kind SubsystemKind) (*SubsystemIndex, error) {
	if s.closed {
		return nil, ErrStoreClosed
	}

	dir, configured := s.dirs[kind]
	if !configured {
		common.Log.Warningf("refresh: no directory configured for %s", kind)
		return &SubsystemIndex{Kind: kind, Records: make(map[string]*FileRecord)}, nil
	}

	records := s.soft[kind]
	if records == nil {
		var err error
		records, err = s.persister.Load(kind)
		if err != nil {
			common.Log.Warningf("refresh: %s: unreadable index, rebuilding: %s", kind, err.Error())
			records = make(map[string]*FileRecord)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// A missing or unreadable directory is "no data", not a hard error.
		// Don't install the records as the soft cache: if the mount comes
		// back, the next refresh starts from the persisted index.
		common.Log.Warningf("refresh: %s: cannot list %s: %s", kind, dir, err.Error())
		return &SubsystemIndex{Kind: kind, Records: make(map[string]*FileRecord)}, nil
	}

	indexName := kind.IndexBasename()
	dirty := false
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".nc") || name == indexName {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			common.Log.Warningf("refresh: %s: cannot stat %s: %s", kind, name, err.Error())
			continue
		}
		seen[name] = true
		mtime := info.ModTime().UnixNano()
		if old := records[name]; old != nil && old.Mtime == mtime {
			continue
		}
		cov, softErrors, err := ExtractTimeCoverage(path.Join(dir, name), kind)
		if softErrors > 0 {
			common.Log.Warningf("refresh: %s: %d implausible or malformed values in %s", kind, softErrors, name)
		}
		if err != nil {
			if errors.Is(err, ErrNoData) {
				common.Log.Infof("refresh: %s: no valid data in %s", kind, name)
			} else {
				common.Log.Warningf("refresh: %s: cannot extract %s: %s", kind, name, err.Error())
			}
			continue
		}
		records[name] = &FileRecord{
			Mtime:   mtime,
			MinTime: cov.MinTime,
			MaxTime: cov.MaxTime,
			Days:    cov.Days,
		}
		dirty = true
	}

	for name := range records {
		if !seen[name] {
			common.Log.Debugf("refresh: %s: cached entry %s has no file on disk", kind, name)
		}
	}

	if dirty {
		if err := s.persister.Save(kind, records); err != nil {
			// The in-memory index is still good; next dirty refresh retries.
			common.Log.Warningf("refresh: %s: cannot persist index: %s", kind, err.Error())
		}
		if s.notifier != nil {
			ix := &SubsystemIndex{Kind: kind, Records: records}
			bounds, _ := ix.GlobalBounds()
			s.notifier.RefreshUpdated(kind.String(), len(records), bounds)
		}
	}

	s.soft[kind] = records
	return &SubsystemIndex{Kind: kind, Records: records}, nil
}
