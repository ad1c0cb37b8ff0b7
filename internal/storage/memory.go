package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"overmind/internal/model"
)

var errNotInitialized = errors.New("store is not initialized")

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	weights     map[model.WeightKey]model.WeightRecord
	reports     map[string]model.SessionReport
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.weights = make(map[model.WeightKey]model.WeightRecord)
	s.reports = make(map[string]model.SessionReport)
	return nil
}

func (s *MemoryStore) SaveWeights(_ context.Context, record model.WeightRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	stamp(&record.VersionedRecord)
	record.Weights = cloneWeights(record.Weights)
	s.weights[record.Key] = record
	return nil
}

func (s *MemoryStore) GetWeights(_ context.Context, key model.WeightKey) (model.WeightRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.weights[key]
	if !ok {
		return model.WeightRecord{}, false, nil
	}
	record.Weights = cloneWeights(record.Weights)
	return record, true, nil
}

func (s *MemoryStore) ListWeights(_ context.Context) ([]model.WeightKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]model.WeightKey, 0, len(s.weights))
	for key := range s.weights {
		keys = append(keys, key)
	}
	sortKeys(keys)
	return keys, nil
}

func (s *MemoryStore) DeleteWeights(_ context.Context, key model.WeightKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.weights, key)
	return nil
}

func (s *MemoryStore) SaveSessionReport(_ context.Context, report model.SessionReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	if report.ID == "" {
		return errors.New("session report id is required")
	}
	stamp(&report.VersionedRecord)
	s.reports[report.ID] = report
	return nil
}

func (s *MemoryStore) GetSessionReport(_ context.Context, id string) (model.SessionReport, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	return report, ok, nil
}

func (s *MemoryStore) ListSessionReports(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.reports))
	for id := range s.reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func cloneWeights(in [][][]float64) [][][]float64 {
	if in == nil {
		return nil
	}
	out := make([][][]float64, len(in))
	for l := range in {
		out[l] = make([][]float64, len(in[l]))
		for j := range in[l] {
			out[l][j] = append([]float64(nil), in[l][j]...)
		}
	}
	return out
}
