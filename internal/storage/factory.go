package storage

import "fmt"

// DefaultStoreKind is the backend used when none is configured.
const DefaultStoreKind = "file"

// NewStore builds a backend. path is the directory for "file" and the
// database file for "sqlite"; "memory" ignores it.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "memory":
		return NewMemoryStore(), nil
	case "", "file":
		return NewFileStore(path), nil
	case "sqlite":
		return newSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
