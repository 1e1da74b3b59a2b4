// Postgres-backed index persistence.
//
// The JSON persister is fine for the expected single-operator deployment, but
// when several dashboard worker processes share one data store their index
// writes clobber each other blob-wise.  Backing the index with a shared table
// narrows that to last-writer-wins at row granularity, which is harmless
// because every writer derives the same row content from the same file.
//
// No caching here beyond the Store's soft cache; we read the rows every time
// the soft cache misses.  Only if this is a performance issue will we add
// anything more.

package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
)

const createIndexTable = `
CREATE TABLE IF NOT EXISTS hk_file_index (
  subsystem text NOT NULL,
  filename text NOT NULL,
  mtime bigint NOT NULL,
  min_time bigint NOT NULL,
  max_time bigint NOT NULL,
  available_days text[] NOT NULL,
  PRIMARY KEY (subsystem, filename)
)`

type pgPersister struct {
	// The connection is not thread-safe.  All uses acquire the lock.
	conn *pgx.Conn
	lock sync.Mutex
}

func OpenPostgresPersister(databaseURI string) (IndexPersister, error) {
	conn, err := pgx.Connect(context.Background(), databaseURI)
	if err != nil {
		return nil, fmt.Errorf("Unable to connect to database: %w", err)
	}
	if _, err := conn.Exec(context.Background(), createIndexTable); err != nil {
		conn.Close(context.Background())
		return nil, err
	}
	return &pgPersister{conn: conn}, nil
}

func (pp *pgPersister) Load(kind SubsystemKind) (map[string]*FileRecord, error) {
	pp.lock.Lock()
	defer pp.lock.Unlock()

	rows, err := pp.conn.Query(
		context.Background(),
		`SELECT filename, mtime, min_time, max_time, available_days
		   FROM hk_file_index WHERE subsystem = $1`,
		kind.String(),
	)
	if err != nil {
		return make(map[string]*FileRecord), err
	}
	defer rows.Close()

	records := make(map[string]*FileRecord)
	for rows.Next() {
		var name string
		r := new(FileRecord)
		if err := rows.Scan(&name, &r.Mtime, &r.MinTime, &r.MaxTime, &r.Days); err != nil {
			return make(map[string]*FileRecord), err
		}
		if len(r.Days) == 0 {
			continue
		}
		records[name] = r
	}
	return records, rows.Err()
}

func (pp *pgPersister) Save(kind SubsystemKind, records map[string]*FileRecord) error {
	pp.lock.Lock()
	defer pp.lock.Unlock()

	ctx := context.Background()
	tx, err := pp.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for name, r := range records {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO hk_file_index (subsystem, filename, mtime, min_time, max_time, available_days)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (subsystem, filename) DO UPDATE
			   SET mtime = EXCLUDED.mtime,
			       min_time = EXCLUDED.min_time,
			       max_time = EXCLUDED.max_time,
			       available_days = EXCLUDED.available_days`,
			kind.String(), name, r.Mtime, r.MinTime, r.MaxTime, r.Days,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
