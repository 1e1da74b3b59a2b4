// `hkmond daemon` - HTTP server that serves housekeeping data queries.
//
// The server exposes the bounds / files / series resolution pipeline over a
// small JSON API, see api.go for the routes.  Each request refreshes the
// relevant subsystem index before answering, so the answers always reflect
// what is on disk; unchanged files are never re-read.
//
// Arguments:
//
// -port <port-number>
//
//  Optional.  The port number to listen on, overriding the [daemon] section of
//  the configuration file.
//
// -kafka-broker <host:port>
//
//  Optional.  If set (here or in the configuration file), index refreshes that
//  change the on-disk picture are announced on the broker, topic
//  "hk.<subsystem>.refresh".
//
// Termination:
//
//  Sending SIGHUP or SIGTERM to `hkmond daemon` will shut it down in an
//  orderly manner.  The daemon delivers a non-zero exit code if an error was
//  discovered during startup or shutdown.
//
// Logging:
//
//  The daemon logs everything to the syslog with the tag defined below
//  ("logTag").  Errors encountered during startup are also logged to stderr.

package daemon

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/syslog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hkmond/command"
	"hkmond/common"
	"hkmond/httpsrv"
)

const logTag = "lmt/hkmond"

// Immutable after argument parsing.  It *will* be accessed concurrently b/c
// every HTTP handler runs as a separate goroutine.
type DaemonCommand struct {
	command.ConfigArgs
	command.VerboseArgs
	port        int
	kafkaBroker string
}

func (dc *DaemonCommand) Add(fs *flag.FlagSet) {
	dc.ConfigArgs.Add(fs)
	dc.VerboseArgs.Add(fs)
	fs.IntVar(&dc.port, "port", 0, "Listen on this `port` (overrides the config file)")
	fs.StringVar(&dc.kafkaBroker, "kafka-broker", "",
		"Announce index refreshes on this `host:port` (overrides the config file)")
}

func (dc *DaemonCommand) Summary() []string {
	return []string{
		"Run a daemon that serves subsystem bounds, file sets and channel",
		"series over HTTP, refreshing the file indexes on demand.",
	}
}

func (dc *DaemonCommand) Validate() error {
	if err := dc.ConfigArgs.Validate(); err != nil {
		return err
	}
	if err := dc.VerboseArgs.Validate(); err != nil {
		return err
	}
	if dc.port < 0 {
		return errors.New("Bad -port argument")
	}
	cfg := dc.Config()
	if dc.port == 0 {
		dc.port = cfg.Port
	}
	if dc.port == 0 {
		dc.port = common.DefaultDaemonPort
	}
	if dc.kafkaBroker == "" {
		dc.kafkaBroker = cfg.KafkaBroker
	}
	return nil
}

func (dc *DaemonCommand) Perform(_ io.Writer) error {
	logger, err := syslog.Dial("", "", syslog.LOG_INFO|syslog.LOG_USER, logTag)
	if err != nil {
		return fmt.Errorf("FATAL ERROR: Failing to open logger: %v", err)
	}
	common.Log.SetUnderlying(logger)

	store, err := command.OpenStore(dc.Config())
	if err != nil {
		return err
	}
	defer store.Close()

	var notifier *kafkaNotifier
	if dc.kafkaBroker != "" {
		notifier, err = newKafkaNotifier(dc.kafkaBroker)
		if err != nil {
			return err
		}
		defer notifier.Close()
		store.SetNotifier(notifier)
	}

	mux := http.NewServeMux()
	newAPI(mux, store, dc.Verbose)

	var programFailed bool
	s := httpsrv.New(dc.Verbose, dc.port, mux, func(err error) {
		programFailed = true
	})
	go s.Start()

	// Wait here until we're stopped by SIGHUP (manual) or SIGTERM (from OS
	// during shutdown).
	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, syscall.SIGHUP, syscall.SIGTERM)
	<-stopSignal
	s.Stop()

	if programFailed {
		return errors.New("HTTP server failed to start, or errored out")
	}
	return nil
}
