// Package store persists validation results between runs using bbolt.
//
// The watcher uses it for incremental updates: a changed file's diagnostics
// are atomically replaced without touching results for other files.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/agentlint/agentlint/internal/version"
	"github.com/agentlint/agentlint/pkg/diagnostic"
)

// Common errors.
var ErrNotFound = errors.New("not found")

// Bucket names.
var (
	BucketDiagnostics = []byte("diagnostics")
	BucketRuns        = []byte("runs")
	BucketMeta        = []byte("meta")
)

var keyLastRun = []byte("last_run")

// Record wraps a stored diagnostic with its identity and provenance.
type Record struct {
	ID        string                `json:"id"` // ULID
	RunID     string                `json:"runId"`
	CreatedAt time.Time             `json:"createdAt"`
	Diag      diagnostic.Diagnostic `json:"diagnostic"`
}

// Run summarises one validation run.
type Run struct {
	ID        string    `json:"id"` // ULID
	Root      string    `json:"root"`
	CreatedAt time.Time `json:"createdAt"`
	// Version records the validator build that produced the results, so
	// stale stores can be told apart after an upgrade.
	Version    string         `json:"version"`
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"bySeverity"`
	ByRule     map[string]int `json:"byRule"`
}

// ListOptions filters List and Stats queries.
type ListOptions struct {
	RuleID   string // exact match
	Severity string // "error", "warning", "info"
	FilePath string // substring match
	Limit    int    // 0 = no limit
}

// Store is a bbolt-backed diagnostics store.
type Store struct {
	db *bolt.DB
}

// Open opens or creates a store at the given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open diagnostics db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{BucketDiagnostics, BucketRuns, BucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun replaces the stored diagnostics with the results of a full
// project validation and records a Run summary. The swap is atomic: on
// error the previous results remain untouched.
func (s *Store) SaveRun(root string, diags []diagnostic.Diagnostic) (*Run, error) {
	run := &Run{
		ID:         ulid.Make().String(),
		Root:       root,
		CreatedAt:  time.Now(),
		Version:    version.String(),
		Total:      len(diags),
		BySeverity: make(map[string]int),
		ByRule:     make(map[string]int),
	}
	for _, d := range diags {
		run.BySeverity[d.Severity.String()]++
		run.ByRule[d.RuleID]++
	}

	runData, err := json.Marshal(run)
	if err != nil {
		return nil, fmt.Errorf("marshal run: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(BucketDiagnostics); err != nil {
			return err
		}
		b, err := tx.CreateBucket(BucketDiagnostics)
		if err != nil {
			return err
		}
		for _, d := range diags {
			if err := putRecord(b, run.ID, d); err != nil {
				return err
			}
		}
		if err := tx.Bucket(BucketRuns).Put([]byte(run.ID), runData); err != nil {
			return err
		}
		return tx.Bucket(BucketMeta).Put(keyLastRun, []byte(run.ID))
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ReplaceForFile atomically replaces the stored diagnostics for one file.
// Diagnostics for other files are untouched. Used by incremental
// revalidation.
func (s *Store) ReplaceForFile(filePath string, diags []diagnostic.Diagnostic) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(BucketDiagnostics)
		c := b.Cursor()

		var deleteKeys [][]byte
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				continue
			}
			if rec.Diag.FilePath == filePath {
				// Cursor keys are only valid at the current position.
				deleteKeys = append(deleteKeys, append([]byte(nil), k...))
			}
		}
		for _, k := range deleteKeys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}

		runID := ""
		if v := tx.Bucket(BucketMeta).Get(keyLastRun); v != nil {
			runID = string(v)
		}
		for _, d := range diags {
			if err := putRecord(b, runID, d); err != nil {
				return err
			}
		}
		return nil
	})
}

func putRecord(b *bolt.Bucket, runID string, d diagnostic.Diagnostic) error {
	rec := Record{
		ID:        ulid.Make().String(),
		RunID:     runID,
		CreatedAt: time.Now(),
		Diag:      d,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return b.Put([]byte(rec.ID), data)
}

// List returns stored diagnostics matching opts. ULID keys keep iteration
// in insertion order.
func (s *Store) List(opts ListOptions) ([]Record, error) {
	var out []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(BucketDiagnostics).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				continue
			}
			if !matches(&rec, opts) {
				continue
			}
			out = append(out, rec)
			if opts.Limit > 0 && len(out) >= opts.Limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func matches(rec *Record, opts ListOptions) bool {
	if opts.RuleID != "" && rec.Diag.RuleID != opts.RuleID {
		return false
	}
	if opts.Severity != "" && rec.Diag.Severity.String() != opts.Severity {
		return false
	}
	if opts.FilePath != "" && !strings.Contains(rec.Diag.FilePath, opts.FilePath) {
		return false
	}
	return true
}

// Stats returns aggregate counts for stored diagnostics matching opts.
func (s *Store) Stats(opts ListOptions) (map[string]int, error) {
	stats := make(map[string]int)
	recs, err := s.List(ListOptions{RuleID: opts.RuleID, Severity: opts.Severity, FilePath: opts.FilePath})
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		stats[rec.Diag.Severity.String()]++
	}
	return stats, nil
}

// GetRun returns a run summary by id.
func (s *Store) GetRun(id string) (*Run, error) {
	var run Run
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(BucketRuns).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &run)
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// LastRun returns the most recently saved run, or ErrNotFound when the
// store has never seen a full run.
func (s *Store) LastRun() (*Run, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(BucketMeta).Get(keyLastRun); v != nil {
			id = string(v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrNotFound
	}
	return s.GetRun(id)
}
