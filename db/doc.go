// The db package is the data discovery, caching, and time-window resolution
// layer for the housekeeping store.
//
// Each subsystem (thermetry, dilutionFridge, cryocmp, rsfend) owns a directory
// of per-day netCDF measurement files.  The layer scans those directories,
// extracts each file's time coverage (extract.go), maintains a persisted
// per-subsystem index of that coverage with modification-time invalidation
// (refresh.go, persist.go, pgpersist.go), and resolves time-window queries
// into date-picker bounds (availability.go), candidate file sets (fileset.go),
// and windowed plot series (series.go, window.go).
//
// The Store (indexstore.go) is the entry point and owns the in-process soft
// cache of per-subsystem indexes.  One Store is created at process start from
// the injected configuration; it is thread-safe but queries are served one at
// a time.
//
// Failure philosophy: no single bad file, and no corrupt persisted index, may
// ever prevent the operator from seeing the rest of the subsystem's data.
// Per-file extraction failures are logged and skipped; corrupt indexes are
// treated as empty and rebuilt.
package db
