// Process configuration.
//
// The configuration file is an ini file mapping each subsystem to its data
// directory, plus optional store and daemon settings:
//
//	[directories]
//	thermetry=/data/lmt/thermetry
//	dilutionFridge=/data/lmt/dilutionFridge
//	cryocmp=/data/lmt/cryocmp
//	rsfend=/data/lmt/rsfend
//
//	[store]
//	cache-dir=/var/cache/hkmond
//	database=postgres://hk@localhost/hk
//
//	[daemon]
//	port=8099
//	kafka-broker=localhost:9092
//
// Values are subject to $VAR expansion.  All sections and keys are optional; a
// subsystem without a directory is simply not served.

package common

import (
	"fmt"
	"os"
	"path"
	"strconv"

	ini "github.com/lars-t-hansen/ini"
)

const DefaultDaemonPort = 8099

// MT: Constant after initialization
var (
	p           = ini.NewParser()
	dirSection  = p.AddSection("directories")
	dirFields   = map[string]*ini.Field{
		"thermetry":      dirSection.AddString("thermetry"),
		"dilutionFridge": dirSection.AddString("dilutionFridge"),
		"cryocmp":        dirSection.AddString("cryocmp"),
		"rsfend":         dirSection.AddString("rsfend"),
	}
	storeSection  = p.AddSection("store")
	storeCacheDir = storeSection.AddString("cache-dir")
	storeDatabase = storeSection.AddString("database")
	daemonSection = p.AddSection("daemon")
	daemonPort    = daemonSection.AddString("port")
	daemonKafka   = daemonSection.AddString("kafka-broker")
)

type Config struct {
	// Subsystem name -> data directory, cleaned.  Only subsystems present in
	// the config file appear here.
	Directories map[string]string

	// Directory for persisted index files; "" means each index lives in its
	// subsystem's own data directory.
	CacheDir string

	// Postgres URI for the shared index store; "" selects the per-subsystem
	// JSON index files.
	DatabaseURI string

	Port        int
	KafkaBroker string
}

func ReadConfig(filename string) (*Config, error) {
	input, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer input.Close()
	store, err := p.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("Error in trying to parse %s: %w", filename, err)
	}

	cfg := &Config{
		Directories: make(map[string]string),
		Port:        DefaultDaemonPort,
	}
	for name, f := range dirFields {
		if f.Present(store) {
			cfg.Directories[name] = path.Clean(os.ExpandEnv(f.StringVal(store)))
		}
	}
	if storeCacheDir.Present(store) {
		cfg.CacheDir = path.Clean(os.ExpandEnv(storeCacheDir.StringVal(store)))
	}
	if storeDatabase.Present(store) {
		cfg.DatabaseURI = os.ExpandEnv(storeDatabase.StringVal(store))
	}
	if daemonPort.Present(store) {
		port, err := strconv.Atoi(daemonPort.StringVal(store))
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("Bad port in %s", filename)
		}
		cfg.Port = port
	}
	if daemonKafka.Present(store) {
		cfg.KafkaBroker = os.ExpandEnv(daemonKafka.StringVal(store))
	}
	return cfg, nil
}

// The default config file is ~/.hkmond, if it exists.

func DefaultConfigFile() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	fn := path.Join(path.Clean(home), ".hkmond")
	if _, err := os.Stat(fn); err != nil {
		return ""
	}
	return fn
}
