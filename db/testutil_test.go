// Shared test doubles: an in-memory Dataset and an in-memory persister.  The
// openDataset hook lets the whole index/series pipeline run against fabricated
// variables without binary fixture files; the .nc files on disk only need to
// exist so that directory scans find them.

package db

import (
	"errors"
	"os"
	"path"
	"testing"
)

type fakeDataset struct {
	floats  map[string][]float64
	strings map[string][]string
}

func (ds *fakeDataset) HasVariable(name string) bool {
	_, f1 := ds.floats[name]
	_, f2 := ds.strings[name]
	return f1 || f2
}

func (ds *fakeDataset) Floats(name string) ([]float64, error) {
	if vs, found := ds.floats[name]; found {
		return vs, nil
	}
	return nil, errors.New("No such variable: " + name)
}

func (ds *fakeDataset) Strings(name string) ([]string, error) {
	if vs, found := ds.strings[name]; found {
		return vs, nil
	}
	return nil, errors.New("No such variable: " + name)
}

func (ds *fakeDataset) Close() {}

// Install a dataset table keyed by file basename for the duration of the test
// and count the opens.  Unknown basenames yield an open error, which the
// refresh cycle must treat as a per-file fault.

func installDatasets(t *testing.T, byName map[string]*fakeDataset) *int {
	opens := new(int)
	prev := openDataset
	openDataset = func(p string) (Dataset, error) {
		*opens++
		if ds, found := byName[path.Base(p)]; found {
			return ds, nil
		}
		return nil, errors.New("Cannot open " + p)
	}
	t.Cleanup(func() {
		openDataset = prev
	})
	return opens
}

// A one-channel dataset for subsystems with a single time variable.

func timeOnlyDataset(timeVar string, times ...float64) *fakeDataset {
	return &fakeDataset{floats: map[string][]float64{timeVar: times}}
}

// Create an empty placeholder measurement file; content is irrelevant because
// the dataset table intercepts the open.

func touchFile(t *testing.T, dir, name string) {
	if err := os.WriteFile(path.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

type memPersister struct {
	indexes map[SubsystemKind]map[string]*FileRecord
	saves   int
	loadErr error
	saveErr error
}

func newMemPersister() *memPersister {
	return &memPersister{indexes: make(map[SubsystemKind]map[string]*FileRecord)}
}

func (mp *memPersister) Load(kind SubsystemKind) (map[string]*FileRecord, error) {
	if mp.loadErr != nil {
		return nil, mp.loadErr
	}
	records := make(map[string]*FileRecord)
	for name, r := range mp.indexes[kind] {
		clone := *r
		records[name] = &clone
	}
	return records, nil
}

func (mp *memPersister) Save(kind SubsystemKind, records map[string]*FileRecord) error {
	if mp.saveErr != nil {
		return mp.saveErr
	}
	mp.saves++
	saved := make(map[string]*FileRecord)
	for name, r := range records {
		clone := *r
		saved[name] = &clone
	}
	mp.indexes[kind] = saved
	return nil
}

func newTestStore(t *testing.T, kind SubsystemKind) (*Store, string, *memPersister) {
	dir := t.TempDir()
	mp := newMemPersister()
	s := NewStore(map[SubsystemKind]string{kind: dir}, mp)
	t.Cleanup(s.Close)
	return s, dir, mp
}
