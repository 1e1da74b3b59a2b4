// A simple HTTP server lifecycle wrapper (built on existing Go library code).
// The handler is whatever mux the caller sets up; this code only owns startup,
// shutdown and failure reporting.

package httpsrv

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hkmond/status"
)

const (
	serverShutdownTimeoutSec = 10
)

type Server struct {
	verbose bool
	port    int
	failed  func(error)
	stop    chan bool
	server  *http.Server
}

// Create a server that will be listening on `port` and serving `handler`.  It
// will call `failed` if the server returns a failure code.  The server is not
// started by this.

func New(verbose bool, port int, handler http.Handler, failed func(error)) *Server {
	return &Server{
		verbose: verbose,
		port:    port,
		failed:  failed,
		stop:    make(chan bool),
		server:  &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: handler},
	}
}

// Start the server.  This blocks the current goroutine until the server exits,
// so typical usage would be `go s.Start()`.  To force the server to shut down,
// call s.Stop().  When the server exits, it will call s.failed if there was an
// error.

func (s *Server) Start() {
	if s.verbose {
		status.Default().Infof("Listening on port %d", s.port)
	}
	err := s.server.ListenAndServe()
	if err != nil {
		if err != http.ErrServerClosed {
			status.Default().Errorf("%s", err.Error())
			status.Default().Errorf("SERVER NOT RUNNING")
			if s.failed != nil {
				s.failed(err)
			}
		} else {
			status.Default().Infof("%s", err.Error())
		}
	}
	s.stop <- true
}

// Cause the server to shut down and stop.

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeoutSec*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		status.Default().Warningf("%s", err.Error())
	}
	<-s.stop
}
