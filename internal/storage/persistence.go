// Package storage implements durable, atomic persistence of lists as JSON
// documents on disk.
//
// Storage layout:
//
//	<root>/lists/<list-id>/list.json
//	<root>/state.json (migration cursor, owned by the migrate package)
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/listmaker/pkg/types"
)

const listFileName = "list.json"

// Manager reads and writes list documents under a storage root. Writes are
// atomic: a temporary file is written in the target directory and renamed
// over the document, so readers never observe a half-written file.
type Manager struct {
	root     string
	listsDir string
	logger   *log.Logger
}

// NewManager creates a manager rooted at the given directory. A nil logger
// falls back to a stderr logger.
func NewManager(root string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(os.Stderr, "[storage] ", log.LstdFlags)
	}
	return &Manager{
		root:     root,
		listsDir: filepath.Join(root, "lists"),
		logger:   logger,
	}
}

// Root returns the storage root directory.
func (m *Manager) Root() string {
	return m.root
}

// LoadAll loads every list from disk. Subdirectories whose name is not a
// valid UUID, or whose document is missing, unparseable, or fails schema
// validation, are skipped and logged; one bad list never aborts the load.
func (m *Manager) LoadAll() (map[uuid.UUID]*types.List, error) {
	lists := make(map[uuid.UUID]*types.List)
	loaded, skipped := 0, 0

	err := m.scanListDirs(func(id string, data []byte) {
		listID, err := uuid.Parse(id)
		if err != nil {
			m.logger.Printf("skipping directory with invalid list ID %q", id)
			skipped++
			return
		}
		var list types.List
		if err := json.Unmarshal(data, &list); err != nil {
			m.logger.Printf("skipping corrupted list %s: %v", id, err)
			skipped++
			return
		}
		if err := list.Validate(); err != nil {
			m.logger.Printf("skipping invalid list %s: %v", id, err)
			skipped++
			return
		}
		lists[listID] = &list
		loaded++
	}, func(id string, err error) {
		m.logger.Printf("skipping list %s: %v", id, err)
		skipped++
	})
	if err != nil {
		return nil, err
	}

	if skipped > 0 {
		m.logger.Printf("loaded %d lists from storage (skipped %d with errors)", loaded, skipped)
	} else {
		m.logger.Printf("loaded %d lists from storage", loaded)
	}
	return lists, nil
}

// LoadAllRaw loads every list document as an untyped map, skipping schema
// validation entirely. Used by migrations, which may need to read documents
// in an old, not-yet-valid shape.
func (m *Manager) LoadAllRaw() (map[string]map[string]any, error) {
	lists := make(map[string]map[string]any)

	err := m.scanListDirs(func(id string, data []byte) {
		if _, err := uuid.Parse(id); err != nil {
			m.logger.Printf("skipping directory with invalid list ID %q", id)
			return
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			m.logger.Printf("skipping corrupted list %s: %v", id, err)
			return
		}
		lists[id] = doc
	}, func(id string, err error) {
		m.logger.Printf("skipping list %s: %v", id, err)
	})
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// scanListDirs iterates the lists directory and calls found with each
// document's raw bytes, or missing when a directory has no readable
// document. A missing lists directory is not an error; the store is empty.
func (m *Manager) scanListDirs(found func(id string, data []byte), missing func(id string, err error)) error {
	entries, err := os.ReadDir(m.listsDir)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Printf("storage directory does not exist, starting empty")
			return nil
		}
		return fmt.Errorf("reading lists directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		data, err := os.ReadFile(filepath.Join(m.listsDir, id, listFileName))
		if err != nil {
			missing(id, err)
			continue
		}
		found(id, data)
	}
	return nil
}

// WriteList serializes the list and atomically replaces its document on
// disk, creating the list's directory if needed.
func (m *Manager) WriteList(list *types.List) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling list %s: %w", list.ID, err)
	}
	return m.writeDocument(list.ID.String(), data)
}

// WriteRaw atomically writes an untyped document for the given list ID,
// with no schema validation. Used by migrations.
func (m *Manager) WriteRaw(id string, doc map[string]any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling raw list %s: %w", id, err)
	}
	return m.writeDocument(id, data)
}

// writeDocument writes data to a temporary file in the list's directory and
// renames it over list.json. On failure the temporary file is removed and
// the previous document, if any, is left untouched.
func (m *Manager) writeDocument(id string, data []byte) error {
	listDir := filepath.Join(m.listsDir, id)
	if err := os.MkdirAll(listDir, 0o755); err != nil {
		return fmt.Errorf("creating directory for list %s: %w", id, err)
	}

	target := filepath.Join(listDir, listFileName)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		m.logger.Printf("failed to persist list %s: %v", id, err)
		os.Remove(tmp)
		return fmt.Errorf("writing list %s: %w", id, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		m.logger.Printf("failed to persist list %s: %v", id, err)
		os.Remove(tmp)
		return fmt.Errorf("replacing list %s: %w", id, err)
	}
	return nil
}

// DeleteList removes the list's directory and everything in it. Reports
// whether the directory existed.
func (m *Manager) DeleteList(id uuid.UUID) (bool, error) {
	listDir := filepath.Join(m.listsDir, id.String())
	if _, err := os.Stat(listDir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking list %s: %w", id, err)
	}
	if err := os.RemoveAll(listDir); err != nil {
		m.logger.Printf("failed to delete list %s: %v", id, err)
		return false, fmt.Errorf("deleting list %s: %w", id, err)
	}
	return true, nil
}
