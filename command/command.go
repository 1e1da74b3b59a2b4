package command

import (
	"errors"
	"flag"
	"io"

	"hkmond/common"
	"hkmond/db"
	"hkmond/status"
)

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// Represents an hkmond command: bounds, files, series, refresh, daemon.

type Command interface {
	// Add all arguments including shared arguments
	Add(fs *flag.FlagSet)

	// One line per string, for the help text
	Summary() []string

	// Validate all arguments including shared arguments
	Validate() error

	// Perform the operation, writing any output to `out`
	Perform(out io.Writer) error
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// Shared argument groups.  Commands embed these and forward Add/Validate.

type VerboseArgs struct {
	Verbose bool
}

func (va *VerboseArgs) Add(fs *flag.FlagSet) {
	fs.BoolVar(&va.Verbose, "v", false, "Print verbose diagnostics")
	fs.BoolVar(&va.Verbose, "verbose", false, "Print verbose diagnostics")
}

func (va *VerboseArgs) Validate() error {
	if va.Verbose {
		common.Log.LowerLevelTo(status.LogLevelInfo)
	}
	return nil
}

type ConfigArgs struct {
	ConfigFile string
	cfg        *common.Config
}

func (ca *ConfigArgs) Add(fs *flag.FlagSet) {
	fs.StringVar(&ca.ConfigFile, "config", "", "Configuration `filename` (default ~/.hkmond)")
}

func (ca *ConfigArgs) Validate() error {
	if ca.ConfigFile == "" {
		ca.ConfigFile = common.DefaultConfigFile()
	}
	if ca.ConfigFile == "" {
		return errors.New("No configuration file (use -config)")
	}
	cfg, err := common.ReadConfig(ca.ConfigFile)
	if err != nil {
		return err
	}
	ca.cfg = cfg
	return nil
}

func (ca *ConfigArgs) Config() *common.Config {
	return ca.cfg
}

type SubsystemArgs struct {
	Subsystem string
	kind      db.SubsystemKind
}

func (sa *SubsystemArgs) Add(fs *flag.FlagSet) {
	fs.StringVar(&sa.Subsystem, "subsystem", "", "Subsystem `name` (required)")
}

func (sa *SubsystemArgs) Validate() error {
	if sa.Subsystem == "" {
		return errors.New("A -subsystem argument is required")
	}
	kind, err := db.KindFromName(sa.Subsystem)
	if err != nil {
		return err
	}
	sa.kind = kind
	return nil
}

func (sa *SubsystemArgs) Kind() db.SubsystemKind {
	return sa.kind
}

type SelectorArgs struct {
	Hours    int
	FromDate string
	ToDate   string
	selector db.Selector
}

func (sa *SelectorArgs) Add(fs *flag.FlagSet) {
	fs.IntVar(&sa.Hours, "hours", 0, "Select the most recent `n` hours of data")
	fs.StringVar(&sa.FromDate, "from", "", "Start `date` (yyyy-mm-dd, inclusive; with -to)")
	fs.StringVar(&sa.ToDate, "to", "", "End `date` (yyyy-mm-dd, inclusive; with -from)")
}

func (sa *SelectorArgs) Validate() error {
	sel, err := db.NewSelector(sa.Hours, sa.FromDate, sa.ToDate)
	if err != nil {
		return err
	}
	sa.selector = sel
	return nil
}

func (sa *SelectorArgs) Selector() db.Selector {
	return sa.selector
}
