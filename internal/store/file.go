package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	tempSuffix  = ".tmp"
	journalName = ".commit"
)

// journal lists the collections whose temp files make up one commit.
// Once it is on disk the commit is decided and only the renames remain.
type journal struct {
	Collections []Collection `json:"collections"`
}

// FileStore keeps one <name>.json file per collection in a directory.
type FileStore struct {
	dir string
	mu  sync.RWMutex
	// pending lists the collections of a decided commit whose renames have
	// not all succeeded. Readers take their temp file while it exists.
	pending map[Collection]bool
}

var _ Store = (*FileStore)(nil)

// OpenFileStore creates dir if needed, finishes any commit interrupted by a
// crash and drops temp files that never made it into a commit. A commit
// that still cannot be applied stays readable and blocks further writes.
func OpenFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	s := &FileStore{dir: dir}
	if err := s.replay(); err != nil {
		if errors.Is(err, ErrCorrupt) {
			return nil, err
		}
		log.Printf("⚠️ store: commit still pending: %v", err)
	}
	if err := s.removeOrphans(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir is the data directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(name Collection) string {
	return filepath.Join(s.dir, string(name)+".json")
}

func (s *FileStore) journalPath() string {
	return filepath.Join(s.dir, journalName)
}

func (s *FileStore) View(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&fileTx{store: s})
}

func (s *FileStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	// A previous commit may have failed half way through its renames.
	// Nothing new is written on top of it until it is applied.
	if err := s.replay(); err != nil {
		return fmt.Errorf("store: previous commit not applied: %w", err)
	}
	tx := &fileTx{store: s, writable: true}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(&tx.staged)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) commit(st *staging) error {
	if len(st.order) == 0 {
		return nil
	}
	written := make([]string, 0, len(st.order))
	for _, name := range st.order {
		tmp := s.path(name) + tempSuffix
		if err := writeFileSync(tmp, st.docs[name]); err != nil {
			removeAll(written)
			_ = os.Remove(tmp)
			return fmt.Errorf("store: write %s: %w", name, err)
		}
		written = append(written, tmp)
	}

	if len(st.order) == 1 {
		name := st.order[0]
		if err := os.Rename(s.path(name)+tempSuffix, s.path(name)); err != nil {
			removeAll(written)
			return fmt.Errorf("store: replace %s: %w", name, err)
		}
		syncDir(s.dir)
		return nil
	}

	// Several collections: decide the commit by writing the journal first.
	data, err := json.Marshal(journal{Collections: st.order})
	if err != nil {
		removeAll(written)
		return fmt.Errorf("store: encode journal: %w", err)
	}
	jtmp := s.journalPath() + tempSuffix
	if err := writeFileSync(jtmp, data); err != nil {
		removeAll(written)
		_ = os.Remove(jtmp)
		return fmt.Errorf("store: write journal: %w", err)
	}
	if err := os.Rename(jtmp, s.journalPath()); err != nil {
		removeAll(written)
		_ = os.Remove(jtmp)
		return fmt.Errorf("store: publish journal: %w", err)
	}
	syncDir(s.dir)

	// The commit is decided. A failed rename is finished by the next
	// Update or on open; until then readers see the temp files.
	s.setPending(st.order)
	if err := s.apply(st.order); err != nil {
		log.Printf("⚠️ store: commit of %v applied later: %v", st.order, err)
	}
	return nil
}

func (s *FileStore) setPending(names []Collection) {
	s.pending = make(map[Collection]bool, len(names))
	for _, name := range names {
		s.pending[name] = true
	}
}

// apply performs the renames of a decided commit and drops the journal.
// Missing temp files were already renamed by an earlier attempt. The
// caller holds the write lock.
func (s *FileStore) apply(names []Collection) error {
	for _, name := range names {
		tmp := s.path(name) + tempSuffix
		if err := os.Rename(tmp, s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: replace %s: %w", name, err)
		}
	}
	syncDir(s.dir)
	if err := os.Remove(s.journalPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: remove journal: %w", err)
	}
	syncDir(s.dir)
	s.pending = nil
	return nil
}

func (s *FileStore) replay() error {
	data, err := os.ReadFile(s.journalPath())
	if errors.Is(err, os.ErrNotExist) {
		s.pending = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read journal: %w", err)
	}
	var j journal
	if err := json.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("%w: journal: %v", ErrCorrupt, err)
	}
	log.Printf("⚠️ store: finishing interrupted commit of %v", j.Collections)
	s.setPending(j.Collections)
	return s.apply(j.Collections)
}

func (s *FileStore) removeOrphans() error {
	// The pattern also matches the journal's own temp file.
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+tempSuffix))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if s.pendingTemp(m) {
			continue
		}
		log.Printf("⚠️ store: discarding uncommitted %s", filepath.Base(m))
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: remove %s: %w", m, err)
		}
	}
	return nil
}

func (s *FileStore) pendingTemp(path string) bool {
	for name := range s.pending {
		if s.path(name)+tempSuffix == path {
			return true
		}
	}
	return false
}

type fileTx struct {
	store    *FileStore
	staged   staging
	writable bool
}

func (tx *fileTx) Get(name Collection) ([]byte, error) {
	if data, ok := tx.staged.get(name); ok {
		return data, nil
	}
	if tx.store.pending[name] {
		data, err := os.ReadFile(tx.store.path(name) + tempSuffix)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("store: read %s: %w", name, err)
		}
	}
	data, err := os.ReadFile(tx.store.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	return data, nil
}

func (tx *fileTx) Put(name Collection, data []byte) error {
	if !tx.writable {
		return ErrReadOnly
	}
	tx.staged.put(name, data)
	return nil
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// syncDir flushes directory entries after renames. Not every platform
// supports it, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	d.Close()
}

func removeAll(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}
