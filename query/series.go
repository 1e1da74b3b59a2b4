package query

import (
	"errors"
	"flag"
	"io"

	"hkmond/command"
)

type SeriesCommand struct {
	command.ConfigArgs
	command.VerboseArgs
	command.SubsystemArgs
	command.SelectorArgs
	File string
}

func (sc *SeriesCommand) Add(fs *flag.FlagSet) {
	sc.ConfigArgs.Add(fs)
	sc.VerboseArgs.Add(fs)
	sc.SubsystemArgs.Add(fs)
	sc.SelectorArgs.Add(fs)
	fs.StringVar(&sc.File, "file", "", "Measurement file `basename` (required)")
}

func (sc *SeriesCommand) Summary() []string {
	return []string{
		"Print the named channel series of one measurement file, windowed by",
		"the selector.  Without -hours or -from/-to the file is unfiltered.",
	}
}

func (sc *SeriesCommand) Validate() error {
	if err := sc.ConfigArgs.Validate(); err != nil {
		return err
	}
	if err := sc.VerboseArgs.Validate(); err != nil {
		return err
	}
	if err := sc.SubsystemArgs.Validate(); err != nil {
		return err
	}
	if err := sc.SelectorArgs.Validate(); err != nil {
		return err
	}
	if sc.File == "" {
		return errors.New("A -file argument is required")
	}
	return nil
}

func (sc *SeriesCommand) Perform(out io.Writer) error {
	store, err := command.OpenStore(sc.Config())
	if err != nil {
		return err
	}
	defer store.Close()
	res, err := store.LoadSeries(sc.Kind(), sc.File, sc.Selector())
	if err != nil {
		return err
	}
	return printJSON(out, res)
}
