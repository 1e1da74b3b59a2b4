package db

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"

	"hkmond/common"
)

// IndexPersister stores the per-subsystem file->record mapping between
// processes.  Load returns an empty mapping (not an error) when no index has
// been persisted yet; other failures are returned and handled as "rebuild
// from scratch" by the refresh cycle.

type IndexPersister interface {
	Load(kind SubsystemKind) (map[string]*FileRecord, error)
	Save(kind SubsystemKind, records map[string]*FileRecord) error
}

// filePersister keeps one JSON blob per subsystem.  By default the blob lives
// in the subsystem's own data directory (which is why directory scans exclude
// the index basename); a configured cache directory overrides that.
//
// Writes go through a temp file + rename so a crashed writer can at worst
// leave a stale index, never a torn one.  Concurrent writer processes are not
// coordinated; that is an accepted limitation of this persister, and
// deployments that care use the Postgres persister instead.

type filePersister struct {
	dirs     map[SubsystemKind]string
	cacheDir string
}

func NewFilePersister(dirs map[SubsystemKind]string, cacheDir string) IndexPersister {
	return &filePersister{dirs: dirs, cacheDir: cacheDir}
}

func (fp *filePersister) indexPath(kind SubsystemKind) string {
	dir := fp.cacheDir
	if dir == "" {
		dir = fp.dirs[kind]
	}
	return path.Join(dir, kind.IndexBasename())
}

func (fp *filePersister) Load(kind SubsystemKind) (map[string]*FileRecord, error) {
	records := make(map[string]*FileRecord)
	blob, err := os.ReadFile(fp.indexPath(kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return records, nil
		}
		return records, err
	}
	if len(blob) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(blob, &records); err != nil {
		// Corruption is non-fatal, the index is rebuilt from the files.
		common.Log.Warningf("index: corrupt index for %s, rebuilding: %s", kind, err.Error())
		return make(map[string]*FileRecord), nil
	}
	// Entries that violate the invariants (no days, bad bounds) would poison
	// downstream logic; drop them and let the next scan re-extract.
	for name, r := range records {
		if r == nil || len(r.Days) == 0 || r.MinTime > r.MaxTime {
			common.Log.Warningf("index: dropping invalid cached entry %s for %s", name, kind)
			delete(records, name)
		}
	}
	return records, nil
}

func (fp *filePersister) Save(kind SubsystemKind, records map[string]*FileRecord) error {
	blob, err := json.Marshal(records)
	if err != nil {
		return err
	}
	fn := fp.indexPath(kind)
	tmp := fn + ".tmp"
	if err := os.WriteFile(tmp, blob, filePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, fn)
}

const filePermissions = 0644
