package votestore

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"okinoko_flowvote/sdk"
	"okinoko_flowvote/voting"
)

// FileStore keeps hex encoded records in a map and, when a filename is set,
// mirrors the whole map to a JSON file after every write.
type FileStore struct {
	mu       sync.Mutex
	db       map[string]string
	filename string
}

var (
	_ Store  = (*FileStore)(nil)
	_ Writer = (*FileStore)(nil)
)

// NewMemoryStore never touches disk.
func NewMemoryStore() *FileStore {
	return &FileStore{db: make(map[string]string)}
}

// NewFileStore loads filename if it exists. A missing file is an empty store.
func NewFileStore(filename string) (*FileStore, error) {
	f := &FileStore{db: make(map[string]string), filename: filename}
	if err := f.loadFromFile(); err != nil {
		return nil, err
	}
	return f, nil
}

// RecordedVotes returns nil for a holder that never voted.
func (f *FileStore) RecordedVotes(_ context.Context, contract, holder sdk.Address) ([]voting.Allocation, error) {
	f.mu.Lock()
	val, ok := f.db[Key(contract, holder)]
	f.mu.Unlock()
	if !ok {
		return nil, nil
	}
	raw, err := hex.DecodeString(val)
	if err != nil {
		return nil, fmt.Errorf("corrupt record for %s: %w", holder, err)
	}
	rec, err := DecodeRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("corrupt record for %s: %w", holder, err)
	}
	return rec.Allocations, nil
}

// Invalidate is a no-op, the file is the source of truth.
func (f *FileStore) Invalidate(sdk.Address, sdk.Address) {}

// Record overwrites the holder's entry. An empty allocation is stored as such.
func (f *FileStore) Record(_ context.Context, rec VoteRecord) error {
	if rec.UpdatedAt == 0 {
		rec.UpdatedAt = time.Now().Unix()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.db[Key(rec.Contract, rec.Holder)] = hex.EncodeToString(EncodeRecord(&rec))
	return f.saveToFile()
}

// Delete drops the holder's entry.
func (f *FileStore) Delete(contract, holder sdk.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.db, Key(contract, holder))
	return f.saveToFile()
}

// saveToFile writes the full map, caller holds f.mu.
func (f *FileStore) saveToFile() error {
	if f.filename == "" {
		return nil
	}
	data, err := json.MarshalIndent(f.db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.filename, data, 0644)
}

func (f *FileStore) loadFromFile() error {
	data, err := os.ReadFile(f.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, &f.db); err != nil {
		return fmt.Errorf("load %s: %w", f.filename, err)
	}
	if f.db == nil {
		f.db = make(map[string]string)
	}
	return nil
}
