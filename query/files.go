package query

import (
	"errors"
	"flag"
	"io"
	"sort"

	"hkmond/command"
)

type FilesCommand struct {
	command.ConfigArgs
	command.VerboseArgs
	command.SubsystemArgs
	command.SelectorArgs
}

func (fc *FilesCommand) Add(fs *flag.FlagSet) {
	fc.ConfigArgs.Add(fs)
	fc.VerboseArgs.Add(fs)
	fc.SubsystemArgs.Add(fs)
	fc.SelectorArgs.Add(fs)
}

func (fc *FilesCommand) Summary() []string {
	return []string{
		"Print the measurement files that must be loaded to satisfy a time",
		"window: either -hours N, or an explicit -from/-to date range.",
	}
}

func (fc *FilesCommand) Validate() error {
	if err := fc.ConfigArgs.Validate(); err != nil {
		return err
	}
	if err := fc.VerboseArgs.Validate(); err != nil {
		return err
	}
	if err := fc.SubsystemArgs.Validate(); err != nil {
		return err
	}
	if err := fc.SelectorArgs.Validate(); err != nil {
		return err
	}
	if fc.Hours == 0 && (fc.FromDate == "" || fc.ToDate == "") {
		return errors.New("Either -hours or both -from and -to are required")
	}
	return nil
}

func (fc *FilesCommand) Perform(out io.Writer) error {
	store, err := command.OpenStore(fc.Config())
	if err != nil {
		return err
	}
	defer store.Close()
	files, err := store.FilesFor(fc.Kind(), fc.Selector())
	if err != nil {
		return err
	}
	// The resolver's order is not a contract; sort for stable CLI output.
	sort.Strings(files)
	return printJSON(out, files)
}
