// Package memory is an in-process row source seeded from a CSV file or a
// literal matrix. It backs local development and tests where no spreadsheet
// API is reachable.
package memory

import (
	"context"
	"encoding/csv"
	"os"
	"sync"

	"salesdash/internal/source"
)

type Store struct {
	mu   sync.Mutex
	rows [][]string
	err  error
}

var _ source.RowSource = (*Store)(nil)

// New builds a store over a fixed values matrix (header row included).
func New(rows [][]string) *Store {
	return &Store{rows: rows}
}

// NewFromFile loads rows from a CSV seed file. A missing or unreadable file
// yields an empty store rather than an error; local dev should start even
// without seed data.
func NewFromFile(path string) *Store {
	f, err := os.Open(path)
	if err != nil {
		return &Store{}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may be ragged, like real sheet payloads
	rows, err := r.ReadAll()
	if err != nil {
		return &Store{}
	}
	return &Store{rows: rows}
}

// FetchRows implements source.RowSource. Returns a copy so callers can never
// alias the seed data.
func (s *Store) FetchRows(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// SetRows replaces the seed matrix.
func (s *Store) SetRows(rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
}

// FailWith makes subsequent fetches return err (nil restores success).
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
