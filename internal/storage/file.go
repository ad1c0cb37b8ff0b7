package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"overmind/internal/model"
)

const fileExt = ".json.zst"

// FileStore keeps one zstd-compressed JSON document per record under a root
// directory: weights/<role>-<race>.json.zst and reports/<id>.json.zst.
type FileStore struct {
	root string

	mu          sync.RWMutex
	initialized bool
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == "" {
		return errors.New("file store directory is required")
	}
	for _, dir := range []string{s.weightsDir(), s.reportsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	s.initialized = true
	return nil
}

func (s *FileStore) SaveWeights(_ context.Context, record model.WeightRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	payload, err := EncodeWeights(record)
	if err != nil {
		return err
	}
	return writeAtomic(s.weightsPath(record.Key), Compress(payload))
}

func (s *FileStore) GetWeights(_ context.Context, key model.WeightKey) (model.WeightRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok, err := readCompressed(s.weightsPath(key))
	if err != nil || !ok {
		return model.WeightRecord{}, false, err
	}
	record, err := DecodeWeights(payload)
	if err != nil {
		return model.WeightRecord{}, false, fmt.Errorf("decode weights %s: %w", key, err)
	}
	return record, true, nil
}

func (s *FileStore) ListWeights(_ context.Context) ([]model.WeightKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := listNames(s.weightsDir())
	if err != nil {
		return nil, err
	}
	keys := make([]model.WeightKey, 0, len(names))
	for _, name := range names {
		role, raceName, ok := strings.Cut(name, "-")
		if !ok {
			continue
		}
		race, err := model.ParseRace(raceName)
		if err != nil {
			continue
		}
		keys = append(keys, model.WeightKey{Role: model.Role(role), Race: race})
	}
	sortKeys(keys)
	return keys, nil
}

func (s *FileStore) DeleteWeights(_ context.Context, key model.WeightKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.weightsPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *FileStore) SaveSessionReport(_ context.Context, report model.SessionReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	if report.ID == "" || strings.ContainsAny(report.ID, `/\`) {
		return fmt.Errorf("invalid session report id: %q", report.ID)
	}
	payload, err := EncodeSessionReport(report)
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(s.reportsDir(), report.ID+fileExt), Compress(payload))
}

func (s *FileStore) GetSessionReport(_ context.Context, id string) (model.SessionReport, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok, err := readCompressed(filepath.Join(s.reportsDir(), id+fileExt))
	if err != nil || !ok {
		return model.SessionReport{}, false, err
	}
	report, err := DecodeSessionReport(payload)
	if err != nil {
		return model.SessionReport{}, false, fmt.Errorf("decode session report %s: %w", id, err)
	}
	return report, true, nil
}

func (s *FileStore) ListSessionReports(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return listNames(s.reportsDir())
}

func (s *FileStore) weightsDir() string { return filepath.Join(s.root, "weights") }
func (s *FileStore) reportsDir() string { return filepath.Join(s.root, "reports") }

func (s *FileStore) weightsPath(key model.WeightKey) string {
	return filepath.Join(s.weightsDir(), string(key.Role)+"-"+strings.ToLower(key.Race.String())+fileExt)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func readCompressed(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	payload, err := Decompress(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return payload, true, nil
}

func listNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(names)
	return names, nil
}
