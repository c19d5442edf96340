package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/retirewise/planner/internal/domain"
)

// Snapshot is one saved simulation run: the inputs and the result, pinned
// together so a run can be re-inspected or re-executed later.
type Snapshot struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	CreatedAt time.Time                `json:"created_at"`
	Profile   *domain.HouseholdProfile `json:"profile"`
	Result    *domain.SimulationResult `json:"result"`
}

// ScenarioRepository persists snapshots. Implementations must be safe for
// sequential CLI use; concurrent writers are out of scope.
type ScenarioRepository interface {
	Save(name string, profile *domain.HouseholdProfile, result *domain.SimulationResult) (*Snapshot, error)
	Load(id uuid.UUID) (*Snapshot, error)
	List() ([]Snapshot, error)
}

// FileScenarioRepository stores one JSON file per snapshot under a directory.
type FileScenarioRepository struct {
	dir string
}

// NewFileScenarioRepository creates the backing directory if needed.
func NewFileScenarioRepository(dir string) (*FileScenarioRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scenario directory %s: %w", dir, err)
	}
	return &FileScenarioRepository{dir: dir}, nil
}

// Save assigns a fresh ID and writes the snapshot.
func (r *FileScenarioRepository) Save(name string, profile *domain.HouseholdProfile, result *domain.SimulationResult) (*Snapshot, error) {
	snapshot := &Snapshot{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Profile:   profile,
		Result:    result,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(r.path(snapshot.ID), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return snapshot, nil
}

// Load reads one snapshot by ID.
func (r *FileScenarioRepository) Load(id uuid.UUID) (*Snapshot, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", id, err)
	}
	return &snapshot, nil
}

// List returns all snapshots, newest first.
func (r *FileScenarioRepository) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario directory: %w", err)
	}
	var snapshots []Snapshot
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		snapshot, err := r.Load(id)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	return snapshots, nil
}

func (r *FileScenarioRepository) path(id uuid.UUID) string {
	return filepath.Join(r.dir, id.String()+".json")
}
