package store

import (
	"os"
	"sync"
	"time"

	"github.com/jsphweid/scorepad/model"
	"github.com/jsphweid/scorepad/util"
	"github.com/pkg/errors"
)

// Memory keeps compositions in a map. When path is set, every change is
// snapshotted to disk as gob and reloaded on open.
type Memory struct {
	mu    sync.RWMutex
	items map[string]model.Composition
	path  string
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]model.Composition), now: time.Now}
}

// OpenMemory loads a snapshot from path if one exists.
func OpenMemory(path string) (*Memory, error) {
	m := NewMemory()
	m.path = path

	items, err := util.ReadBinary[map[string]model.Composition](path)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return m, nil
		}
		return nil, err
	}
	m.items = items
	return m, nil
}

func (m *Memory) snapshot() error {
	if m.path == "" {
		return nil
	}
	return util.WriteBinary(m.path, m.items)
}

func (m *Memory) Create(c model.Composition) (model.Composition, error) {
	if err := validate(c); err != nil {
		return model.Composition{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = NewID()
	c.CreatedAt = m.now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.items[c.ID] = c
	return c, m.snapshot()
}

func (m *Memory) Get(id string) (model.Composition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.items[id]
	if !ok {
		return model.Composition{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) Update(c model.Composition) (model.Composition, error) {
	if err := validate(c); err != nil {
		return model.Composition{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.items[c.ID]
	if !ok {
		return model.Composition{}, ErrNotFound
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = m.now().UTC()
	m.items[c.ID] = c
	return c, m.snapshot()
}

func (m *Memory) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return m.snapshot()
}

func (m *Memory) List(userID string) ([]model.Composition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]model.Composition, 0)
	for _, id := range util.GetKeys(m.items) {
		if c := m.items[id]; visibleTo(c, userID) {
			res = append(res, c)
		}
	}
	sortByCreation(res)
	return res, nil
}
