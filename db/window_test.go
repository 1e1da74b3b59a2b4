package db

import (
	"reflect"
	"testing"
)

func TestNewSelector(t *testing.T) {
	if _, err := NewSelector(-1, "", ""); err == nil {
		t.Fatal("Negative hours accepted")
	}
	// Hours wins; dates are ignored when hours is set.
	sel, err := NewSelector(5, "garbage", "")
	if err != nil || sel.Hours != 5 || sel.Start != "" {
		t.Fatalf("Got %v, %v", sel, err)
	}
	if _, err := NewSelector(0, "2024-01-01", "bogus"); err == nil {
		t.Fatal("Bad end date accepted")
	}
	if _, err := NewSelector(0, "bogus", "2024-01-01"); err == nil {
		t.Fatal("Bad start date accepted")
	}
	sel, err = NewSelector(0, "", "")
	if err != nil || sel.Hours != 0 || sel.hasRange() {
		t.Fatalf("Got %v, %v", sel, err)
	}
}

func TestFilterSamplesRecentHours(t *testing.T) {
	// The anchor is the last sample, not the wall clock: with stale data,
	// "last 5 hours" is the 5 hours before the data stopped.
	anchor := float64(jan2 + 3600)
	xs := []float64{
		anchor - 6*3600,
		anchor - 5*3600, // window is inclusive at both ends
		anchor - 3600,
		anchor,
	}
	ys := []float64{1, 2, 3, 4}
	xf, yf := FilterSamples(Selector{Hours: 5}, xs, ys)
	if !reflect.DeepEqual(xf, xs[1:]) || !reflect.DeepEqual(yf, ys[1:]) {
		t.Fatalf("Got %v/%v", xf, yf)
	}
}

func TestFilterSamplesExplicitRange(t *testing.T) {
	xs := []float64{jan1 - 1, jan1, jan2 + 100, jan3 - 1, jan3}
	ys := []float64{1, 2, 3, 4, 5}
	// [Jan 1, Jan 2] means midnight Jan 1 through the last second of Jan 2.
	xf, yf := FilterSamples(Selector{Start: "2024-01-01", End: "2024-01-02"}, xs, ys)
	if !reflect.DeepEqual(xf, xs[1:4]) || !reflect.DeepEqual(yf, ys[1:4]) {
		t.Fatalf("Got %v/%v", xf, yf)
	}
}

func TestFilterSamplesPassThrough(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{4, 5, 6}
	xf, yf := FilterSamples(Selector{}, xs, ys)
	if !reflect.DeepEqual(xf, xs) || !reflect.DeepEqual(yf, ys) {
		t.Fatalf("Got %v/%v", xf, yf)
	}
	xf, yf = FilterSamples(Selector{Hours: 5}, nil, nil)
	if len(xf) != 0 || len(yf) != 0 {
		t.Fatalf("Got %v/%v", xf, yf)
	}
}

func TestJointWindow(t *testing.T) {
	// The laggard channel's samples stay inside the shared window: the
	// anchor is the max over all channels, with sentinels ignored.
	times := [][]float64{
		{0, -1, jan1 + 100, jan2},
		{jan1 + 50},
		nil,
	}
	xmin, xmax, ok := jointWindow(Selector{}, times)
	if !ok || xmin != jan1+50 || xmax != jan2 {
		t.Fatalf("Got %v %v %v", xmin, xmax, ok)
	}

	xmin, xmax, ok = jointWindow(Selector{Hours: 2}, times)
	if !ok || xmax != jan2 || xmin != jan2-2*3600 {
		t.Fatalf("Got %v %v %v", xmin, xmax, ok)
	}

	xmin, xmax, ok = jointWindow(Selector{Start: "2024-01-01", End: "2024-01-01"}, times)
	if !ok || xmin != jan1 || xmax != jan2-1 {
		t.Fatalf("Got %v %v %v", xmin, xmax, ok)
	}

	if _, _, ok = jointWindow(Selector{}, [][]float64{{0, -3}, nil}); ok {
		t.Fatal("Want no window for sentinel-only data")
	}
}
