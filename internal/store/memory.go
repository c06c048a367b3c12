package store

import (
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AngelCh415/socialreport/internal/ingest"
	"github.com/AngelCh415/socialreport/internal/metrics"
	"github.com/AngelCh415/socialreport/internal/models"
)

var ErrNotFound = errors.New("dataset not found")

// Snapshot is an immutable view of one dataset. Adding files produces a new
// snapshot; readers holding an old one are unaffected.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Files     []models.FileResult
	Tables    []ingest.Table
	Dataset   models.Dataset
	Range     *models.DateRange
}

func (s Snapshot) HasRequiredData() bool { return s.Dataset.HasPosts() }

type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string]*Snapshot
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sets: make(map[string]*Snapshot),
		now:  time.Now,
	}
}

// Create stores a new dataset built from b.
func (s *MemoryStore) Create(b ingest.Batch) Snapshot {
	now := s.now().UTC()
	snap := build(uuid.NewString(), now, now, b.Files, b.Tables)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[snap.ID] = snap
	return *snap
}

// Append re-merges the dataset with b's tables added after the existing ones.
func (s *MemoryStore) Append(id string, b ingest.Batch) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sets[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	files := append(slices.Clone(cur.Files), b.Files...)
	tables := append(slices.Clone(cur.Tables), b.Tables...)
	snap := build(id, cur.CreatedAt, s.now().UTC(), files, tables)
	s.sets[id] = snap
	return *snap, nil
}

func (s *MemoryStore) Get(id string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.sets[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return *snap, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[id]; !ok {
		return ErrNotFound
	}
	delete(s.sets, id)
	return nil
}

// List returns every snapshot, newest first.
func (s *MemoryStore) List() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Snapshot, 0, len(s.sets))
	for _, v := range s.sets {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func build(id string, created, updated time.Time, files []models.FileResult, tables []ingest.Table) *Snapshot {
	snap := &Snapshot{
		ID:        id,
		CreatedAt: created,
		UpdatedAt: updated,
		Files:     files,
		Tables:    tables,
		Dataset:   ingest.Merge(tables),
	}
	if r, ok := metrics.DetectRange(snap.Dataset); ok {
		snap.Range = &r
	}
	return snap
}
