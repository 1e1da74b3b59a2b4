package db

import (
	"errors"
	"fmt"
	"math"
	"path"

	"hkmond/common"
)

// Series is one named time/value stream, ready for plotting.  Timestamps are
// Unix seconds UTC.

type Series struct {
	Name string    `json:"name"`
	X    []int64   `json:"x"`
	Y    []float64 `json:"y"`
}

type SeriesResult struct {
	Series []Series `json:"series"`

	// Channels that exist in the file but yielded nothing inside the window
	// (or contain no finite data).  Reported, not fatal.
	InvalidChannels []string `json:"invalidChannels,omitempty"`
}

// LoadSeries opens one measurement file and returns its windowed channel
// series.  fileName must be a bare basename as returned by FilesFor.

func (s *Store) LoadSeries(kind SubsystemKind, fileName string, sel Selector) (*SeriesResult, error) {
	if fileName == "" || fileName != path.Base(fileName) || fileName[0] == '.' {
		return nil, errors.New("Bad file name")
	}

	s.Lock()
	if s.closed {
		s.Unlock()
		return nil, ErrStoreClosed
	}
	dir, configured := s.dirs[kind]
	s.Unlock()
	if !configured {
		return nil, fmt.Errorf("No directory configured for %s", kind)
	}

	ds, err := openDataset(path.Join(dir, fileName))
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	switch kind {
	case KindThermetry:
		return readThermetrySeries(ds, sel), nil
	case KindDilutionFridge:
		return readDilutionFridgeSeries(ds, sel), nil
	case KindCryocmp:
		return readCryocmpSeries(ds, sel), nil
	case KindRsfend:
		return readRsfendSeries(ds, sel), nil
	default:
		panic("Unknown kind")
	}
}

// Thermetry: 16 channels, each with its own time array.  The window bounds
// are computed once across all channels and then applied per channel, so all
// panels share an x axis even when some thermometers lag.

func readThermetrySeries(ds Dataset, sel Selector) *SeriesResult {
	labels := thermetryLabels(ds)
	times := make([][]float64, thermetryChannels)
	temps := make([][]float64, thermetryChannels)
	for i := 0; i < thermetryChannels; i++ {
		timeVar := fmt.Sprintf("Data.ToltecThermetry.Time%d", i+1)
		tempVar := fmt.Sprintf("Data.ToltecThermetry.Temperature%d", i+1)
		if !ds.HasVariable(timeVar) || !ds.HasVariable(tempVar) {
			common.Log.Warningf("series: variables %s or %s not found", timeVar, tempVar)
			continue
		}
		xs, err := ds.Floats(timeVar)
		if err != nil {
			common.Log.Warningf("series: %s: %s", timeVar, err.Error())
			continue
		}
		ys, err := ds.Floats(tempVar)
		if err != nil {
			common.Log.Warningf("series: %s: %s", tempVar, err.Error())
			continue
		}
		times[i], temps[i] = xs, ys
	}

	res := &SeriesResult{Series: []Series{}}
	xmin, xmax, ok := jointWindow(sel, times)
	if !ok {
		return res
	}
	for i := range times {
		if len(times[i]) == 0 || len(temps[i]) == 0 || !hasFinite(temps[i]) {
			res.InvalidChannels = append(res.InvalidChannels, labels[i])
			continue
		}
		xf, yf := applyWindow(times[i], temps[i], xmin, xmax)
		xf, yf = dropNaN(xf, yf)
		if len(xf) == 0 {
			res.InvalidChannels = append(res.InvalidChannels, labels[i])
			continue
		}
		// Last reading decides the display unit: sub-half-kelvin channels
		// read better in millikelvin.
		temp := yf[len(yf)-1]
		units := "K"
		if math.Abs(temp) < 0.5 {
			units = "mK"
			temp *= 1000.0
		}
		res.Series = append(res.Series, Series{
			Name: fmt.Sprintf("%s (%.2f %s)", labels[i], temp, units),
			X:    toUnixSeconds(xf),
			Y:    yf,
		})
	}
	return res
}

func thermetryLabels(ds Dataset) []string {
	labels := make([]string, thermetryChannels)
	for i := range labels {
		labels[i] = fmt.Sprintf("Chan%d", i+1)
	}
	const labelVar = "Header.ToltecThermetry.ChanLabel"
	if !ds.HasVariable(labelVar) {
		return labels
	}
	fromFile, err := ds.Strings(labelVar)
	if err != nil {
		common.Log.Warningf("series: cannot read channel labels: %s", err.Error())
		return labels
	}
	for i := 0; i < len(labels) && i < len(fromFile); i++ {
		if fromFile[i] != "" {
			labels[i] = fromFile[i]
		}
	}
	return labels
}

// Dilution fridge: one shared SampleTime base and a fixed gauge set.  The
// Energized series is derived from the pulse-tube cooler state word.

const dfBase = "Data.ToltecDilutionFridge."

var dfGauges = func() []gauge {
	gs := []gauge{
		{"StsDevP1PresSigPres", "P1"},
		{"StsDevP2PresSigPres", "P2"},
		{"StsDevP3PresSigPres", "P3"},
		{"StsDevP4PresSigPres", "P4"},
		{"StsDevP5PresSigPres", "P5"},
		{"StsDevP6PresSigPres", "P6"},
		{"StsDevTurb1PumpSigPowr", "Power"},
		{"StsDevTurb1PumpSigSpd", "Speed"},
		{"StsDevC1PtcSigWit", "H2O In Temp"},
		{"StsDevC1PtcSigWot", "H2O Out Temp"},
		{"StsDevC1PtcSigOilt", "Oil Temp"},
		{"StsDevC1PtcSigHt", "Helium Temp"},
		{"StsDevC1PtcSigHlp", "Low Pressure"},
		{"StsDevC1PtcSigHhp", "High Pressure"},
		{"StsDevH1HtrSigPowr", "Chamber"},
		{"StsDevH2HtrSigPowr", "Still"},
		{"StsDevH3HtrSigPowr", "H3"},
	}
	for i := 1; i <= 16; i++ {
		gs = append(gs, gauge{fmt.Sprintf("StsDevT%dTempSigTemp", i), fmt.Sprintf("T%d", i)})
	}
	for i := 1; i <= 16; i++ {
		gs = append(gs, gauge{fmt.Sprintf("StsDevT%dTempSigRes", i), fmt.Sprintf("R%d", i)})
	}
	return gs
}()

type gauge struct {
	variable string
	label    string
}

func readDilutionFridgeSeries(ds Dataset, sel Selector) *SeriesResult {
	res := &SeriesResult{Series: []Series{}}
	xs, err := ds.Floats(dfBase + "SampleTime")
	if err != nil {
		common.Log.Warningf("series: cannot read sample time: %s", err.Error())
		return res
	}
	for _, g := range dfGauges {
		if !ds.HasVariable(dfBase + g.variable) {
			continue
		}
		ys, err := ds.Floats(dfBase + g.variable)
		if err != nil {
			common.Log.Warningf("series: %s: %s", g.variable, err.Error())
			continue
		}
		appendSeries(res, g.label, sel, xs, ys)
	}
	if states, err := dfEnergized(ds); err == nil {
		appendSeries(res, "Energized", sel, xs, states)
	}
	return res
}

func dfEnergized(ds Dataset) ([]float64, error) {
	const stateVar = dfBase + "StsDevC1PtcSigState"
	if !ds.HasVariable(stateVar) {
		return nil, errors.New("No state variable")
	}
	states, err := ds.Strings(stateVar)
	if err != nil {
		return nil, err
	}
	ys := make([]float64, len(states))
	for i, st := range states {
		if st == "ON" {
			ys[i] = 10
		}
	}
	return ys, nil
}

// Cryo-compressor: water/oil temperatures converted to Fahrenheit for the
// operators, Energized scaled to plot alongside them.

const cryocmpBase = "Data.ToltecCryocmp."

func readCryocmpSeries(ds Dataset, sel Selector) *SeriesResult {
	res := &SeriesResult{Series: []Series{}}
	xs, err := ds.Floats(cryocmpBase + "Time")
	if err != nil {
		common.Log.Warningf("series: cannot read time: %s", err.Error())
		return res
	}
	for _, g := range []gauge{
		{"CoolOutTemp", "Water Out Temp"},
		{"CoolInTemp", "Water In Temp"},
		{"OilTemp", "Oil Temp"},
		{"Energized", "Energized"},
	} {
		if !ds.HasVariable(cryocmpBase + g.variable) {
			continue
		}
		ys, err := ds.Floats(cryocmpBase + g.variable)
		if err != nil {
			common.Log.Warningf("series: %s: %s", g.variable, err.Error())
			continue
		}
		if g.variable == "Energized" {
			ys = scale(ys, 10)
		} else {
			ys = toFahrenheit(ys)
		}
		appendSeries(res, g.label, sel, xs, ys)
	}
	return res
}

// Receiver front end: eight named temperatures against a single time base.

const rsfendBase = "Data.Rsfend."

var rsfendGauges = []gauge{
	{"ColdPlateTemp", "Cold Plate Temp"},
	{"RotatorCDTemp", "Rotator CD Temp"},
	{"MmicAPrimaryTemp", "Mmic A Primary Temp"},
	{"80KCharcoalPlateTemp", "80K Charcoal Plate Temp"},
	{"20KCharcoalPlateTemp", "20K Charcoal Plate Temp"},
	{"SolenoidValveTemp", "Solenoid Valve Temp"},
	{"OpticsTemp", "Optics Temp"},
	{"CompressorTemp", "Compressor Temp"},
}

func readRsfendSeries(ds Dataset, sel Selector) *SeriesResult {
	res := &SeriesResult{Series: []Series{}}
	xs, err := ds.Floats(rsfendBase + "Time")
	if err != nil {
		common.Log.Warningf("series: cannot read time: %s", err.Error())
		return res
	}
	for _, g := range rsfendGauges {
		if !ds.HasVariable(rsfendBase + g.variable) {
			common.Log.Warningf("series: variable %s not found", rsfendBase+g.variable)
			continue
		}
		ys, err := ds.Floats(rsfendBase + g.variable)
		if err != nil {
			common.Log.Warningf("series: %s: %s", g.variable, err.Error())
			continue
		}
		appendSeries(res, g.label, sel, xs, ys)
	}
	return res
}

func appendSeries(res *SeriesResult, label string, sel Selector, xs, ys []float64) {
	xf, yf := FilterSamples(sel, xs, ys)
	xf, yf = dropNaN(xf, yf)
	if len(xf) == 0 {
		res.InvalidChannels = append(res.InvalidChannels, label)
		return
	}
	res.Series = append(res.Series, Series{Name: label, X: toUnixSeconds(xf), Y: yf})
}

func hasFinite(ys []float64) bool {
	for _, y := range ys {
		if !math.IsNaN(y) && !math.IsInf(y, 0) {
			return true
		}
	}
	return false
}

func dropNaN(xs, ys []float64) ([]float64, []float64) {
	xf := make([]float64, 0, len(xs))
	yf := make([]float64, 0, len(ys))
	for i := range xs {
		if i < len(ys) && !math.IsNaN(ys[i]) {
			xf = append(xf, xs[i])
			yf = append(yf, ys[i])
		}
	}
	return xf, yf
}

func toFahrenheit(ys []float64) []float64 {
	out := make([]float64, len(ys))
	for i, y := range ys {
		out[i] = y*1.8 + 32
	}
	return out
}

func scale(ys []float64, by float64) []float64 {
	out := make([]float64, len(ys))
	for i, y := range ys {
		out[i] = y * by
	}
	return out
}

func toUnixSeconds(xs []float64) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = int64(x)
	}
	return out
}
