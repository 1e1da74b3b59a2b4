// JSON API for the daemon.
//
// Routes:
//
//	GET  /api/bounds/{subsystem}                        date-picker bounds
//	GET  /api/files/{subsystem}?hours=&from=&to=        file set for a window
//	GET  /api/series/{subsystem}/{file}?hours=&from=&to= channel series
//	POST /api/refresh/{subsystem}                       force an index rescan
//
// An unknown subsystem name yields 404; a missing or malformed window
// selector yields 400 (or 422 from schema validation).  Everything else the
// store can't do (unreadable file, closed store) yields 500 with the error
// text in the body.

package daemon

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"hkmond/common"
	"hkmond/db"
)

type handlers struct {
	store   *db.Store
	verbose bool
}

func newAPI(mux *http.ServeMux, store *db.Store, verbose bool) huma.API {
	api := humago.New(mux, huma.DefaultConfig("hkmond", "0.1.0"))
	h := &handlers{store: store, verbose: verbose}
	huma.Get(api, "/api/bounds/{subsystem}", h.bounds)
	huma.Get(api, "/api/files/{subsystem}", h.files)
	huma.Get(api, "/api/series/{subsystem}/{file}", h.series)
	huma.Post(api, "/api/refresh/{subsystem}", h.refresh)
	return api
}

type SubsystemInput struct {
	Subsystem string `path:"subsystem" doc:"Subsystem name, eg thermetry"`
}

type WindowInput struct {
	SubsystemInput
	Hours int    `query:"hours" minimum:"0" doc:"Select the most recent n hours of data"`
	From  string `query:"from" doc:"Start date, yyyy-mm-dd inclusive (with to)"`
	To    string `query:"to" doc:"End date, yyyy-mm-dd inclusive (with from)"`
}

func (h *handlers) kindOf(name string) (db.SubsystemKind, error) {
	kind, err := db.KindFromName(name)
	if err != nil {
		return 0, huma.Error404NotFound("No such subsystem: " + name)
	}
	return kind, nil
}

func (h *handlers) selectorOf(in *WindowInput) (db.Selector, error) {
	sel, err := db.NewSelector(in.Hours, in.From, in.To)
	if err != nil {
		return db.Selector{}, huma.Error400BadRequest("Bad time window", err)
	}
	return sel, nil
}

type boundsOutput struct {
	Body db.DateBounds
}

func (h *handlers) bounds(_ context.Context, in *SubsystemInput) (*boundsOutput, error) {
	if h.verbose {
		common.Log.Infof("Request: bounds %s", in.Subsystem)
	}
	kind, err := h.kindOf(in.Subsystem)
	if err != nil {
		return nil, err
	}
	bounds, err := h.store.DateBounds(kind)
	if err != nil {
		return nil, err
	}
	return &boundsOutput{Body: bounds}, nil
}

type filesOutput struct {
	Body struct {
		Files []string `json:"files"`
	}
}

func (h *handlers) files(_ context.Context, in *WindowInput) (*filesOutput, error) {
	if h.verbose {
		common.Log.Infof("Request: files %s hours=%d from=%s to=%s",
			in.Subsystem, in.Hours, in.From, in.To)
	}
	kind, err := h.kindOf(in.Subsystem)
	if err != nil {
		return nil, err
	}
	if in.Hours == 0 && in.From == "" && in.To == "" {
		return nil, huma.Error400BadRequest("Either hours or both from and to are required")
	}
	sel, err := h.selectorOf(in)
	if err != nil {
		return nil, err
	}
	files, err := h.store.FilesFor(kind, sel)
	if err != nil {
		return nil, err
	}
	out := new(filesOutput)
	out.Body.Files = files
	return out, nil
}

type seriesInput struct {
	WindowInput
	File string `path:"file" doc:"Measurement file basename"`
}

type seriesOutput struct {
	Body db.SeriesResult
}

func (h *handlers) series(_ context.Context, in *seriesInput) (*seriesOutput, error) {
	if h.verbose {
		common.Log.Infof("Request: series %s %s", in.Subsystem, in.File)
	}
	kind, err := h.kindOf(in.Subsystem)
	if err != nil {
		return nil, err
	}
	sel, err := h.selectorOf(&in.WindowInput)
	if err != nil {
		return nil, err
	}
	res, err := h.store.LoadSeries(kind, in.File, sel)
	if err != nil {
		return nil, err
	}
	return &seriesOutput{Body: *res}, nil
}

type refreshOutput struct {
	Body struct {
		Subsystem string `json:"subsystem"`
		Files     int    `json:"files"`
	}
}

func (h *handlers) refresh(_ context.Context, in *SubsystemInput) (*refreshOutput, error) {
	if h.verbose {
		common.Log.Infof("Request: refresh %s", in.Subsystem)
	}
	kind, err := h.kindOf(in.Subsystem)
	if err != nil {
		return nil, err
	}
	ix, err := h.store.Refresh(kind)
	if err != nil {
		return nil, err
	}
	out := new(refreshOutput)
	out.Body.Subsystem = in.Subsystem
	out.Body.Files = len(ix.Records)
	return out, nil
}
