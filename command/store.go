package command

import (
	"hkmond/common"
	"hkmond/db"
)

// Build the Store from the injected configuration: directories from the
// [directories] section, and either the shared Postgres index store or the
// per-subsystem JSON index files.

func OpenStore(cfg *common.Config) (*db.Store, error) {
	dirs := db.DirsFromConfig(cfg)
	var persister db.IndexPersister
	if cfg.DatabaseURI != "" {
		var err error
		persister, err = db.OpenPostgresPersister(cfg.DatabaseURI)
		if err != nil {
			return nil, err
		}
	} else {
		persister = db.NewFilePersister(dirs, cfg.CacheDir)
	}
	return db.NewStore(dirs, persister), nil
}
