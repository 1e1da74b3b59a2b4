package query

import (
	"flag"
	"io"

	"hkmond/command"
	"hkmond/common"
	"hkmond/db"
)

type RefreshCommand struct {
	command.ConfigArgs
	command.VerboseArgs
	Subsystem string
}

func (rc *RefreshCommand) Add(fs *flag.FlagSet) {
	rc.ConfigArgs.Add(fs)
	rc.VerboseArgs.Add(fs)
	fs.StringVar(&rc.Subsystem, "subsystem", "", "Refresh only this subsystem (default: all)")
}

func (rc *RefreshCommand) Summary() []string {
	return []string{
		"Rescan subsystem directories and bring the persisted indexes up to",
		"date, printing a per-subsystem summary.",
	}
}

func (rc *RefreshCommand) Validate() error {
	if err := rc.ConfigArgs.Validate(); err != nil {
		return err
	}
	if err := rc.VerboseArgs.Validate(); err != nil {
		return err
	}
	if rc.Subsystem != "" {
		if _, err := db.KindFromName(rc.Subsystem); err != nil {
			return err
		}
	}
	return nil
}

type refreshSummary struct {
	Subsystem string `json:"subsystem"`
	Files     int    `json:"files"`
	MinDate   string `json:"minDate,omitempty"`
	MaxDate   string `json:"maxDate,omitempty"`
}

func (rc *RefreshCommand) Perform(out io.Writer) error {
	store, err := command.OpenStore(rc.Config())
	if err != nil {
		return err
	}
	defer store.Close()

	names := db.KindNames()
	if rc.Subsystem != "" {
		names = []string{rc.Subsystem}
	}
	summaries := make([]refreshSummary, 0, len(names))
	for _, name := range names {
		kind, _ := db.KindFromName(name)
		ix, err := store.Refresh(kind)
		if err != nil {
			return err
		}
		summary := refreshSummary{Subsystem: name, Files: len(ix.Records)}
		if bounds, ok := ix.GlobalBounds(); ok {
			summary.MinDate = common.DayOfUnix(bounds.Earliest)
			summary.MaxDate = common.DayOfUnix(bounds.Latest)
		}
		summaries = append(summaries, summary)
	}
	return printJSON(out, summaries)
}
