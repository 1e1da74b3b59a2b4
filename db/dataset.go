package db

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Dataset is the narrow view of a structured scientific data file that the
// extraction and series code needs: named array variables, numeric or
// string-valued.  The production implementation reads netCDF; tests install
// in-memory fakes through openDataset.

type Dataset interface {
	HasVariable(name string) bool

	// The variable's values flattened to float64, row-major.
	Floats(name string) ([]float64, error)

	// The variable's values as trimmed strings (for char-matrix variables
	// such as channel labels and state words).
	Strings(name string) ([]string, error)

	Close()
}

// MT: Constant after initialization, except in tests.
var openDataset func(path string) (Dataset, error) = openNetCDF

type ncDataset struct {
	group api.Group
	vars  map[string]bool
}

func openNetCDF(path string) (Dataset, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	vars := make(map[string]bool)
	for _, v := range group.ListVariables() {
		vars[v] = true
	}
	return &ncDataset{group: group, vars: vars}, nil
}

func (ds *ncDataset) HasVariable(name string) bool {
	return ds.vars[name]
}

func (ds *ncDataset) Floats(name string) ([]float64, error) {
	v, err := ds.group.GetVariable(name)
	if err != nil {
		return nil, err
	}
	fs := make([]float64, 0)
	err = appendFloats(&fs, reflect.ValueOf(v.Values))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return fs, nil
}

func (ds *ncDataset) Strings(name string) ([]string, error) {
	v, err := ds.group.GetVariable(name)
	if err != nil {
		return nil, err
	}
	var ss []string
	err = appendStrings(&ss, reflect.ValueOf(v.Values))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	for i := range ss {
		ss[i] = strings.TrimRight(ss[i], "\x00 ")
	}
	return ss, nil
}

func (ds *ncDataset) Close() {
	ds.group.Close()
}

// netCDF values come back as possibly-nested slices of some concrete numeric
// type; flatten them row-major and widen to float64.

func appendFloats(fs *[]float64, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := appendFloats(fs, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Float32, reflect.Float64:
		*fs = append(*fs, v.Float())
		return nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		*fs = append(*fs, float64(v.Int()))
		return nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		*fs = append(*fs, float64(v.Uint()))
		return nil
	default:
		return fmt.Errorf("Not a numeric variable (%s)", v.Kind())
	}
}

func appendStrings(ss *[]string, v reflect.Value) error {
	switch v.Kind() {
	case reflect.String:
		*ss = append(*ss, v.String())
		return nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := appendStrings(ss, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("Not a string variable (%s)", v.Kind())
	}
}
