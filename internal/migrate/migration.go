// Package migrate applies ordered, idempotent transformations to raw list
// documents and tracks progress with a persisted cursor. Migrations never
// touch the typed List representation: old documents may not parse under
// the current schema, so every step operates on the storage manager's raw
// path.
package migrate

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/mesh-intelligence/listmaker/internal/storage"
)

const stateFileName = "state.json"

// migrationState is the persisted cursor document at <root>/state.json.
type migrationState struct {
	LastMigration int `json:"last_migration"`
}

// migration is one indexed step in the ordered migration sequence.
type migration struct {
	name string
	run  func() error
}

// Migrator runs all pending migrations in order, persisting the cursor
// after each completed step. A failing step halts the sequence and
// propagates; the cursor is not advanced for it.
type Migrator struct {
	manager   *storage.Manager
	stateFile string
	logger    *log.Logger
	steps     []migration
}

// NewMigrator creates a migrator over the given storage manager. The cursor
// lives in state.json at the manager's root. A nil logger falls back to a
// stderr logger.
func NewMigrator(manager *storage.Manager, logger *log.Logger) *Migrator {
	if logger == nil {
		logger = log.New(os.Stderr, "[migrate] ", log.LstdFlags)
	}
	m := &Migrator{
		manager:   manager,
		stateFile: filepath.Join(manager.Root(), stateFileName),
		logger:    logger,
	}
	m.steps = []migration{
		{name: "add field order", run: m.addFieldOrder},
		// Future migrations go here.
	}
	return m
}

// Run executes every migration after the persisted cursor, in ascending
// index order, persisting the new cursor value after each step. If a step
// fails, the error is logged and returned and later steps do not run; the
// process must not serve requests against a partially migrated store.
func (m *Migrator) Run() error {
	last := m.loadState()

	for idx := last + 1; idx < len(m.steps); idx++ {
		step := m.steps[idx]
		m.logger.Printf("running migration %d (%s)", idx, step.name)
		if err := step.run(); err != nil {
			m.logger.Printf("migration %d (%s) failed: %v", idx, step.name, err)
			return fmt.Errorf("migration %d (%s): %w", idx, step.name, err)
		}
		if err := m.saveState(idx); err != nil {
			m.logger.Printf("migration %d (%s): saving state failed: %v", idx, step.name, err)
			return fmt.Errorf("migration %d (%s): saving state: %w", idx, step.name, err)
		}
		m.logger.Printf("migration %d (%s) completed", idx, step.name)
	}
	return nil
}

// addFieldOrder is migration 0: give every field an order attribute.
// A list needs migrating when any field lacks an order, or when more than
// one field exists and all orders are 0. Orders are assigned densely by
// sorted field ID, which is deterministic where document key order is not.
func (m *Migrator) addFieldOrder() error {
	lists, err := m.manager.LoadAllRaw()
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		m.logger.Printf("no lists to migrate")
		return nil
	}

	migrated := 0
	for id, doc := range lists {
		fields, ok := doc["fields"].(map[string]any)
		if !ok || len(fields) == 0 {
			continue
		}
		if !needsFieldOrder(fields) {
			continue
		}

		fieldIDs := make([]string, 0, len(fields))
		for fid := range fields {
			fieldIDs = append(fieldIDs, fid)
		}
		sort.Strings(fieldIDs)
		for idx, fid := range fieldIDs {
			if fd, ok := fields[fid].(map[string]any); ok {
				fd["order"] = idx
			}
		}

		if err := m.manager.WriteRaw(id, doc); err != nil {
			return err
		}
		migrated++
	}

	m.logger.Printf("migrated field orders for %d lists", migrated)
	return nil
}

// needsFieldOrder reports whether any field lacks an order attribute, or
// whether all fields share order 0 while more than one field exists.
func needsFieldOrder(fields map[string]any) bool {
	allZero := true
	for _, raw := range fields {
		fd, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		order, ok := fd["order"]
		if !ok {
			return true
		}
		if n, ok := order.(float64); !ok || n != 0 {
			allZero = false
		}
	}
	return allZero && len(fields) > 1
}

// loadState reads the persisted cursor. A missing or unreadable state file
// means no migrations have run; the migrator starts from the beginning.
func (m *Migrator) loadState() int {
	data, err := os.ReadFile(m.stateFile)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Printf("failed to read migration state: %v, starting from beginning", err)
		}
		return -1
	}
	var state migrationState
	if err := json.Unmarshal(data, &state); err != nil {
		m.logger.Printf("failed to parse migration state: %v, starting from beginning", err)
		return -1
	}
	return state.LastMigration
}

// saveState persists the cursor after a completed step.
func (m *Migrator) saveState(idx int) error {
	if err := os.MkdirAll(m.manager.Root(), 0o755); err != nil {
		return fmt.Errorf("creating storage root: %w", err)
	}
	data, err := json.MarshalIndent(migrationState{LastMigration: idx}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.stateFile, data, 0o644)
}
