// `hkmond` -- Serve and query LMT housekeeping telemetry files
//
// Run `hkmond help` for brief help.

package main

import (
	"flag"
	"fmt"
	"os"

	. "hkmond/command"
	"hkmond/daemon"
	"hkmond/query"
)

// v0.1.0 - bounds/files/series/refresh verbs and the daemon

const HkmondVersion = "0.1.0"

func main() {
	cmd := commandLine()
	err := cmd.Perform(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commandLine() Command {
	out := flag.CommandLine.Output()

	if len(os.Args) < 2 {
		fmt.Fprintf(out, "Required operation missing, try `hkmond help`\n")
		os.Exit(2)
	}

	var cmd Command
	var verb = os.Args[1]
	switch verb {
	case "help", "-h":
		fmt.Fprintf(out, "Usage: %s command [options]\n", os.Args[0])
		fmt.Fprintf(out, "Commands:\n")
		fmt.Fprintf(out, "  bounds  - print the covered date range and data-free days of a subsystem\n")
		fmt.Fprintf(out, "  files   - print the measurement files needed for a time window\n")
		fmt.Fprintf(out, "  series  - print the channel series of one measurement file\n")
		fmt.Fprintf(out, "  refresh - rescan subsystem directories and update the indexes\n")
		fmt.Fprintf(out, "  daemon  - serve the above operations over HTTP\n")
		fmt.Fprintf(out, "  version - print information about the program\n")
		fmt.Fprintf(out, "  help    - print this message\n")
		fmt.Fprintf(out, "Each command accepts -h to further explain options.\n")
		os.Exit(0)
	case "bounds":
		cmd = new(query.BoundsCommand)
	case "files":
		cmd = new(query.FilesCommand)
	case "series":
		cmd = new(query.SeriesCommand)
	case "refresh":
		cmd = new(query.RefreshCommand)
	case "daemon":
		cmd = new(daemon.DaemonCommand)
	case "version":
		fmt.Printf("hkmond version(%s)\n", HkmondVersion)
		os.Exit(0)
	default:
		fmt.Fprintf(out, "Required operation missing, try `hkmond help`\n")
		os.Exit(2)
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cmd.Add(fs)

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s %s [options]\n\n", os.Args[0], os.Args[1])
		for _, s := range cmd.Summary() {
			fmt.Fprintln(out, "  ", s)
		}
		fmt.Fprintln(out, "\nOptions:")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[2:])

	if len(fs.Args()) > 0 {
		fmt.Fprintf(out, "Rest arguments not accepted by `%s`.\n", verb)
		os.Exit(2)
	}

	err := cmd.Validate()
	if err != nil {
		fmt.Fprintf(out, "Bad arguments, try -h\n%v\n", err.Error())
		os.Exit(2)
	}

	return cmd
}
