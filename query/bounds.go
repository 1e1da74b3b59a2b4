// CLI query verbs.  Each verb opens the store from the injected config,
// performs one resolution pipeline to completion, and prints JSON on stdout;
// the daemon exposes the same operations over HTTP.

package query

import (
	"encoding/json"
	"flag"
	"io"

	"hkmond/command"
)

type BoundsCommand struct {
	command.ConfigArgs
	command.VerboseArgs
	command.SubsystemArgs
}

func (bc *BoundsCommand) Add(fs *flag.FlagSet) {
	bc.ConfigArgs.Add(fs)
	bc.VerboseArgs.Add(fs)
	bc.SubsystemArgs.Add(fs)
}

func (bc *BoundsCommand) Summary() []string {
	return []string{
		"Print the date-picker bounds for a subsystem: the covered date range",
		"and the days within it that have no data.",
	}
}

func (bc *BoundsCommand) Validate() error {
	if err := bc.ConfigArgs.Validate(); err != nil {
		return err
	}
	if err := bc.VerboseArgs.Validate(); err != nil {
		return err
	}
	return bc.SubsystemArgs.Validate()
}

func (bc *BoundsCommand) Perform(out io.Writer) error {
	store, err := command.OpenStore(bc.Config())
	if err != nil {
		return err
	}
	defer store.Close()
	bounds, err := store.DateBounds(bc.Kind())
	if err != nil {
		return err
	}
	return printJSON(out, bounds)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
