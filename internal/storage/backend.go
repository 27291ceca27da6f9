package storage

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

const (
	stateObject   = "presenter"
	stateProperty = "position"
)

// GdataBackend keeps the record in the per-user application data directory.
// A nil manager gives a backend that stores nothing.
type GdataBackend struct {
	manager *gdata.Manager
}

// OpenGdata opens the data directory of appName.
func OpenGdata(appName string) (*GdataBackend, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir for %s: %w", appName, err)
	}
	return NewGdataBackend(m), nil
}

// NewGdataBackend wraps an open manager.
func NewGdataBackend(m *gdata.Manager) *GdataBackend {
	return &GdataBackend{manager: m}
}

func (b *GdataBackend) Read() ([]byte, error) {
	if b.manager == nil || !b.manager.ObjectPropExists(stateObject, stateProperty) {
		return nil, nil
	}
	data, err := b.manager.LoadObjectProp(stateObject, stateProperty)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *GdataBackend) Write(data []byte) error {
	if b.manager == nil {
		return nil
	}
	return b.manager.SaveObjectProp(stateObject, stateProperty, data)
}

// Remove overwrites the record with an empty one, which Read reports as absent.
func (b *GdataBackend) Remove() error {
	return b.Write([]byte{})
}

// MemoryBackend keeps the record in memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

func (b *MemoryBackend) Read() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, nil
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBackend) Write(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte{}, data...)
	return nil
}

func (b *MemoryBackend) Remove() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = nil
	return nil
}
