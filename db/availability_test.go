package db

import (
	"reflect"
	"testing"

	"hkmond/common"
)

func TestDateBoundsDisabledDays(t *testing.T) {
	// Files cover Jan 1, Jan 2 and Jan 5; the picker range is [Jan 1, Jan 5]
	// with Jan 3 and Jan 4 greyed out.
	s, dir, _ := newTestStore(t, KindCryocmp)
	touchFile(t, dir, "cryocmp_2024-01-01_000.nc")
	touchFile(t, dir, "cryocmp_2024-01-05_000.nc")
	installDatasets(t, map[string]*fakeDataset{
		"cryocmp_2024-01-01_000.nc": timeOnlyDataset("Data.ToltecCryocmp.Time", jan1+10, jan2+10),
		"cryocmp_2024-01-05_000.nc": timeOnlyDataset("Data.ToltecCryocmp.Time", jan5+10),
	})

	bounds, err := s.DateBounds(KindCryocmp)
	if err != nil {
		t.Fatal(err)
	}
	want := DateBounds{
		DisabledDays: []string{"2024-01-03", "2024-01-04"},
		MinDate:      "2024-01-01",
		MaxDate:      "2024-01-05",
	}
	if !reflect.DeepEqual(bounds, want) {
		t.Fatalf("Got %v want %v", bounds, want)
	}
}

func TestDateBoundsOverlappingFilesUnion(t *testing.T) {
	// Two files both touch Jan 2; a day is enabled if any file has it.
	s, dir, _ := newTestStore(t, KindCryocmp)
	touchFile(t, dir, "cryocmp_2024-01-01_000.nc")
	touchFile(t, dir, "cryocmp_2024-01-02_000.nc")
	installDatasets(t, map[string]*fakeDataset{
		"cryocmp_2024-01-01_000.nc": timeOnlyDataset("Data.ToltecCryocmp.Time", jan1+10, jan2+10),
		"cryocmp_2024-01-02_000.nc": timeOnlyDataset("Data.ToltecCryocmp.Time", jan2+20, jan3+10),
	})

	bounds, err := s.DateBounds(KindCryocmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(bounds.DisabledDays) != 0 {
		t.Fatalf("No day should be disabled, got %v", bounds.DisabledDays)
	}
	if bounds.MinDate != "2024-01-01" || bounds.MaxDate != "2024-01-03" {
		t.Fatalf("Bad range %v", bounds)
	}
}

func TestDateBoundsNoData(t *testing.T) {
	s, _, _ := newTestStore(t, KindCryocmp)
	installDatasets(t, map[string]*fakeDataset{})

	bounds, err := s.DateBounds(KindCryocmp)
	if err != nil {
		t.Fatal(err)
	}
	if !bounds.NoData {
		t.Fatal("Want the no-data marker")
	}
	today := common.Today()
	if bounds.MinDate != today || bounds.MaxDate != today {
		t.Fatalf("Want today's sentinel range, got %v", bounds)
	}
	if len(bounds.DisabledDays) != 0 {
		t.Fatalf("Want no disabled days, got %v", bounds.DisabledDays)
	}
}
