package store

import (
	"fmt"
	"strings"
)

// Open builds a KV from a URI of the form backend:path, one of
//
//	jsonfile:/path/to/ledger.json
//	sqlite:/path/to/ledger.db
//	memory:
//
// A non-empty passphrase wraps the backend in a Sealed store.
func Open(uri, passphrase string) (KV, error) {
	bits := strings.SplitN(uri, ":", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("invalid store %q, expected [jsonfile:/path/file.json sqlite:/path/file.db memory:]", uri)
	}

	var kv KV
	switch bits[0] {
	case "jsonfile":
		if bits[1] == "" {
			return nil, fmt.Errorf("jsonfile store needs a path")
		}
		kv = NewJSONFile(bits[1])
	case "sqlite":
		if bits[1] == "" {
			return nil, fmt.Errorf("sqlite store needs a path")
		}
		db, err := NewSQLite(bits[1])
		if err != nil {
			return nil, err
		}
		kv = db
	case "memory":
		kv = NewMemory()
	default:
		return nil, fmt.Errorf("unknown store backend %q", bits[0])
	}

	if passphrase != "" {
		kv = NewSealed(kv, passphrase)
	}
	return kv, nil
}
