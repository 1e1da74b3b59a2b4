package db

import (
	"os"
	"path"
	"reflect"
	"testing"
)

func someRecords() map[string]*FileRecord {
	return map[string]*FileRecord{
		"cryocmp_2024-01-01_000.nc": {
			Mtime:   12345,
			MinTime: jan1 + 10,
			MaxTime: jan2 + 10,
			Days:    []string{"2024-01-01", "2024-01-02"},
		},
		"cryocmp_2024-01-05_000.nc": {
			Mtime:   23456,
			MinTime: jan5 + 10,
			MaxTime: jan5 + 20,
			Days:    []string{"2024-01-05"},
		},
	}
}

func TestFilePersisterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fp := NewFilePersister(map[SubsystemKind]string{KindCryocmp: dir}, "")

	// No index yet: empty mapping, no error.
	records, err := fp.Load(KindCryocmp)
	if err != nil || len(records) != 0 {
		t.Fatalf("Got %v, %v", records, err)
	}

	want := someRecords()
	if err := fp.Save(KindCryocmp, want); err != nil {
		t.Fatal(err)
	}
	// The blob lives in the data directory under the reserved basename.
	if _, err := os.Stat(path.Join(dir, KindCryocmp.IndexBasename())); err != nil {
		t.Fatal(err)
	}
	records, err = fp.Load(KindCryocmp)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("Got %v want %v", records, want)
	}
}

func TestFilePersisterCacheDir(t *testing.T) {
	dataDir := t.TempDir()
	cacheDir := t.TempDir()
	fp := NewFilePersister(map[SubsystemKind]string{KindCryocmp: dataDir}, cacheDir)
	if err := fp.Save(KindCryocmp, someRecords()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path.Join(cacheDir, KindCryocmp.IndexBasename())); err != nil {
		t.Fatal("Index not in the cache directory")
	}
	if _, err := os.Stat(path.Join(dataDir, KindCryocmp.IndexBasename())); err == nil {
		t.Fatal("Index leaked into the data directory")
	}
}

func TestFilePersisterCorruptIndex(t *testing.T) {
	dir := t.TempDir()
	fp := NewFilePersister(map[SubsystemKind]string{KindCryocmp: dir}, "")
	fn := path.Join(dir, KindCryocmp.IndexBasename())
	if err := os.WriteFile(fn, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	// Corruption must not be fatal; the caller rebuilds from the files.
	records, err := fp.Load(KindCryocmp)
	if err != nil || len(records) != 0 {
		t.Fatalf("Got %v, %v", records, err)
	}
}

func TestFilePersisterDropsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	fp := NewFilePersister(map[SubsystemKind]string{KindCryocmp: dir}, "")
	bad := map[string]*FileRecord{
		"good.nc":     {Mtime: 1, MinTime: jan1, MaxTime: jan2, Days: []string{"2024-01-01"}},
		"no-days.nc":  {Mtime: 1, MinTime: jan1, MaxTime: jan2},
		"inverted.nc": {Mtime: 1, MinTime: jan2, MaxTime: jan1, Days: []string{"2024-01-01"}},
	}
	if err := fp.Save(KindCryocmp, bad); err != nil {
		t.Fatal(err)
	}
	records, err := fp.Load(KindCryocmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records["good.nc"] == nil {
		t.Fatalf("Got %v", records)
	}
}
