package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sagar-psycho/savings.io/pkg/domain"
)

// JSONFile keeps every key in one JSON object on disk. Writes go to a
// temporary file that is renamed over the original, so a reader sees either
// the old set of values or the new one.
type JSONFile struct {
	mu       sync.Mutex
	filename string
}

// check it meets the interface
var _ KV = &JSONFile{}

func NewJSONFile(filename string) *JSONFile {
	return &JSONFile{filename: filename}
}

func (f *JSONFile) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *JSONFile) SetMany(ctx context.Context, values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if errors.Is(err, domain.ErrStorageRead) {
		// unreadable contents get replaced wholesale
		current = map[string]string{}
	} else if err != nil {
		return err
	}

	for k, v := range values {
		current[k] = v
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.filename)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.filename)
}

func (f *JSONFile) Close() error {
	return nil
}

func (f *JSONFile) read() (map[string]string, error) {
	data, err := os.ReadFile(f.filename)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStorageRead, f.filename, err)
	}
	return values, nil
}
