// Package storage persists vacancies to a single JSON file.
//
// Every mutating call reloads the file, applies the change and rewrites the
// whole file. Nothing is cached between calls, so edits made to the file by
// hand between two calls are always picked up.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"jobscout/internal/logger"
	"jobscout/internal/models"
)

// ErrMissingPath is returned by NewStore when no file path is given.
var ErrMissingPath = errors.New("storage: file path is required")

// Store is the file-backed vacancy collection.
type Store struct {
	fs     FileSystem
	log    *logger.Logger
	schema *entrySchema
	path   string
}

// Option configures a Store.
type Option func(*Store)

// WithFileSystem replaces the OS file system, e.g. with a MemFS in tests.
func WithFileSystem(fsys FileSystem) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithLogger sets the logger used for load warnings.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithoutSchemaValidation disables the per-entry JSON schema check on load.
func WithoutSchemaValidation() Option {
	return func(s *Store) {
		s.schema = nil
	}
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, ErrMissingPath
	}

	schema, err := newEntrySchema()
	if err != nil {
		return nil, err
	}

	s := &Store{
		fs:     OSFS{},
		log:    logger.NewNop(),
		schema: schema,
		path:   path,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every vacancy from the file. It never fails: a missing file,
// malformed JSON or any read error yields an empty slice and a warning.
// Entries that cannot be turned into a vacancy are skipped with a warning.
func (s *Store) Load() []models.Vacancy {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("vacancies file not found, starting empty", "path", s.path)
		} else {
			s.log.Warn("failed to read vacancies file", "path", s.path, "err", err)
		}

		return []models.Vacancy{}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("vacancies file is not a valid JSON array", "path", s.path, "err", err)

		return []models.Vacancy{}
	}

	vacancies := make([]models.Vacancy, 0, len(entries))

	for i, entry := range entries {
		v, err := s.decodeEntry(entry)
		if err != nil {
			s.log.Warn("skipping stored vacancy", "path", s.path, "index", i, "err", err)

			continue
		}

		vacancies = append(vacancies, v)
	}

	s.log.Debug("vacancies loaded", "path", s.path, "count", len(vacancies))

	return vacancies
}

func (s *Store) decodeEntry(entry json.RawMessage) (models.Vacancy, error) {
	if s.schema != nil {
		if err := s.schema.Validate(entry); err != nil {
			return models.Vacancy{}, err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(entry))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return models.Vacancy{}, fmt.Errorf("decode entry: %w", err)
	}

	return vacancyFromEntry(raw)
}

// Save replaces the file contents with vacancies.
func (s *Store) Save(vacancies []models.Vacancy) error {
	if vacancies == nil {
		vacancies = []models.Vacancy{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(vacancies); err != nil {
		return fmt.Errorf("encode vacancies: %w", err)
	}

	if err := s.fs.WriteFile(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("save vacancies to %s: %w", s.path, err)
	}

	s.log.Debug("vacancies saved", "path", s.path, "count", len(vacancies))

	return nil
}

// Add appends one vacancy to the file.
func (s *Store) Add(v models.Vacancy) error {
	return s.AddMany([]models.Vacancy{v})
}

// AddMany appends vacancies to the file with a single rewrite.
func (s *Store) AddMany(vacancies []models.Vacancy) error {
	stored := s.Load()
	stored = append(stored, vacancies...)

	return s.Save(stored)
}

// Delete removes every stored vacancy with the same ID as v. Unknown IDs are
// not an error.
func (s *Store) Delete(v models.Vacancy) error {
	return s.DeleteByID(v.ID)
}

// DeleteByID removes every stored vacancy with the given ID.
func (s *Store) DeleteByID(id string) error {
	stored := s.Load()
	kept := stored[:0]

	for _, v := range stored {
		if v.ID != id {
			kept = append(kept, v)
		}
	}

	if removed := len(stored) - len(kept); removed > 0 {
		s.log.Info("vacancies deleted", "id", id, "count", removed)
	}

	return s.Save(kept)
}
