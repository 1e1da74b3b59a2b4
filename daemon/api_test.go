// Unit test the JSON API surface: routing, parameter validation and status
// codes, served through the same mux the daemon runs.

package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hkmond/db"
)

func newTestMux(t *testing.T) *http.ServeMux {
	dir := t.TempDir()
	dirs := map[db.SubsystemKind]string{db.KindCryocmp: dir}
	store := db.NewStore(dirs, db.NewFilePersister(dirs, ""))
	t.Cleanup(store.Close)
	mux := http.NewServeMux()
	newAPI(mux, store, false)
	return mux
}

func request(t *testing.T, mux *http.ServeMux, method, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestApiBounds(t *testing.T) {
	mux := newTestMux(t)

	rec := request(t, mux, "GET", "/api/bounds/cryocmp")
	if rec.Code != 200 {
		t.Fatalf("Got %d: %s", rec.Code, rec.Body.String())
	}
	var bounds db.DateBounds
	if err := json.Unmarshal(rec.Body.Bytes(), &bounds); err != nil {
		t.Fatal(err)
	}
	if !bounds.NoData {
		t.Fatalf("Want the no-data marker, got %+v", bounds)
	}

	if rec := request(t, mux, "GET", "/api/bounds/warble"); rec.Code != 404 {
		t.Fatalf("Got %d", rec.Code)
	}
}

func TestApiFiles(t *testing.T) {
	mux := newTestMux(t)

	// No window at all is a client error, not a failed date parse.
	if rec := request(t, mux, "GET", "/api/files/cryocmp"); rec.Code != 400 {
		t.Fatalf("Got %d: %s", rec.Code, rec.Body.String())
	}
	// Half a range fails selector construction.
	if rec := request(t, mux, "GET", "/api/files/cryocmp?from=2024-01-01"); rec.Code != 400 {
		t.Fatalf("Got %d: %s", rec.Code, rec.Body.String())
	}

	rec := request(t, mux, "GET", "/api/files/cryocmp?hours=5")
	if rec.Code != 200 {
		t.Fatalf("Got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Files []string `json:"files"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Files) != 0 {
		t.Fatalf("Got %v", out.Files)
	}
}

func TestApiSeries(t *testing.T) {
	mux := newTestMux(t)

	if rec := request(t, mux, "GET", "/api/series/warble/f.nc"); rec.Code != 404 {
		t.Fatalf("Got %d", rec.Code)
	}
	// No selector is fine for series (unfiltered); the unreadable file is
	// what fails, as a server error.
	if rec := request(t, mux, "GET", "/api/series/cryocmp/missing.nc"); rec.Code != 500 {
		t.Fatalf("Got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestApiRefresh(t *testing.T) {
	mux := newTestMux(t)

	rec := request(t, mux, "POST", "/api/refresh/cryocmp")
	if rec.Code != 200 {
		t.Fatalf("Got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Subsystem string `json:"subsystem"`
		Files     int    `json:"files"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Subsystem != "cryocmp" || out.Files != 0 {
		t.Fatalf("Got %+v", out)
	}

	if rec := request(t, mux, "POST", "/api/refresh/warble"); rec.Code != 404 {
		t.Fatalf("Got %d", rec.Code)
	}
}
