// Package settings persists the trial State as a small JSON document inside a
// settings directory supplied by the embedding application.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"grimm.is/apptrial/internal/clock"
	"grimm.is/apptrial/internal/trial"
)

// FileName is the name of the settings file inside the settings directory.
const FileName = "settings.json"

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Store reads and writes exactly one trial.State at Dir()/settings.json.
// It is safe to share between goroutines of one process; concurrent writers
// in separate processes are last-writer-wins.
type Store struct {
	dir         string
	path        string
	clock       clock.Clock
	defaultDays int
	indent      bool
}

// Option configures a Store.
type Option func(*Store)

// WithDefaultPeriod sets the trial length Load reports when no file exists.
func WithDefaultPeriod(days int) Option {
	return func(s *Store) { s.defaultDays = days }
}

// WithIndent pretty-prints the JSON document.
func WithIndent() Option {
	return func(s *Store) { s.indent = true }
}

// New returns a Store rooted at dir. Nothing touches the disk until Load or
// Save is called.
func New(dir string, clk clock.Clock, opts ...Option) *Store {
	if clk == nil {
		clk = clock.System
	}
	s := &Store{
		dir:         dir,
		path:        filepath.Join(dir, FileName),
		clock:       clk,
		defaultDays: trial.DefaultTrialPeriodDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the settings directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the settings file path.
func (s *Store) Path() string { return s.path }

// Exists reports whether the settings file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load returns the stored state. A missing file is not an error: Load then
// returns a default trial starting now.
func (s *Store) Load() (trial.State, error) {
	state, err := s.Read()
	if errors.Is(err, fs.ErrNotExist) {
		return trial.NewState(s.clock.Now(), s.defaultDays), nil
	}
	return state, err
}

// Read returns the stored state and fails with an IOError wrapping
// fs.ErrNotExist when there is no settings file.
func (s *Store) Read() (trial.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return trial.State{}, &IOError{Op: "read", Path: s.path, Err: err}
	}
	return s.decode(data)
}

// ReadRaw returns the settings file bytes exactly as stored.
func (s *Store) ReadRaw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	return data, nil
}

func (s *Store) decode(data []byte) (trial.State, error) {
	var state trial.State
	if err := json.Unmarshal(data, &state); err != nil {
		return trial.State{}, &DecodeError{Path: s.path, Err: err}
	}
	return state, nil
}

// Encode renders state the way Save writes it.
func (s *Store) Encode(state trial.State) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if s.indent {
		data, err = json.MarshalIndent(state, "", "  ")
	} else {
		data, err = json.Marshal(state)
	}
	if err != nil {
		return nil, fmt.Errorf("settings: encode: %w", err)
	}
	return data, nil
}

// Save writes state to disk, creating the settings directory (and any missing
// parents) first. The file is replaced atomically: a reader sees either the
// old document or the new one.
func (s *Store) Save(state trial.State) error {
	data, err := s.Encode(state)
	if err != nil {
		return err
	}

	if err := s.ensureDir(); err != nil {
		return err
	}

	return s.writeAtomic(data)
}

func (s *Store) ensureDir() error {
	if info, err := os.Stat(s.dir); err == nil && info.IsDir() {
		return nil
	}
	// MkdirAll is a no-op when another writer created it in the meantime.
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return &IOError{Op: "mkdir", Path: s.dir, Err: err}
	}
	return nil
}

func (s *Store) writeAtomic(data []byte) error {
	// Unique name so two processes saving at once never share a temp file.
	tmpPath := filepath.Join(s.dir, "."+FileName+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return &IOError{Op: "create", Path: tmpPath, Err: err}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return &IOError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}

var _ trial.Store = (*Store)(nil)
