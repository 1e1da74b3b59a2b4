package db

import (
	"errors"
	"sync"

	"hkmond/common"
)

var ErrStoreClosed = errors.New("Store is closed")

// RefreshNotifier is told about refresh cycles that changed a subsystem's
// persisted index.  Optional; used by the daemon to publish refresh events.

type RefreshNotifier interface {
	RefreshUpdated(subsystem string, files int, bounds common.Timebound)
}

// Store owns the per-subsystem soft caches and the persister.  It replaces
// the usual pile of process-global mutable cache variables with one object
// with a defined lifecycle: constructed once at process start, explicitly
// invalidatable, closable.  Thread-safe; queries are served one at a time
// under the lock.

type Store struct {
	// MT: Immutable after initialization
	dirs      map[SubsystemKind]string
	persister IndexPersister

	sync.Mutex
	closed   bool
	notifier RefreshNotifier

	// Soft in-process cache of each subsystem's record mapping.  Populated
	// lazily by the first refresh, reused (with per-file mtime revalidation)
	// by later ones, dropped only by Invalidate or Close.
	soft map[SubsystemKind]map[string]*FileRecord
}

func NewStore(dirs map[SubsystemKind]string, persister IndexPersister) *Store {
	return &Store{
		dirs:      dirs,
		persister: persister,
		soft:      make(map[SubsystemKind]map[string]*FileRecord),
	}
}

// Map the configured subsystem-name -> directory table to kinds.  Unknown
// names are logged and skipped so a typo in the config does not take the
// whole process down.

func DirsFromConfig(cfg *common.Config) map[SubsystemKind]string {
	dirs := make(map[SubsystemKind]string)
	for name, dir := range cfg.Directories {
		kind, err := KindFromName(name)
		if err != nil {
			common.Log.Warningf("config: unknown subsystem %s ignored", name)
			continue
		}
		dirs[kind] = dir
	}
	return dirs
}

func (s *Store) SetNotifier(n RefreshNotifier) {
	s.Lock()
	defer s.Unlock()
	s.notifier = n
}

// Drop the soft cache for one subsystem; the next query rebuilds it from the
// persisted index and the directory.

func (s *Store) Invalidate(kind SubsystemKind) {
	s.Lock()
	defer s.Unlock()
	delete(s.soft, kind)
}

func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.soft = nil
}
