package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"darman-data/internal/domain"

	"github.com/google/uuid"
)

type MemoryWardCasesRepo struct {
	mu    sync.RWMutex
	cases map[string][]*domain.WardCase
}

func NewMemoryWardCasesRepo() *MemoryWardCasesRepo {
	return &MemoryWardCasesRepo{cases: map[string][]*domain.WardCase{}}
}

var _ WardCasesRepo = (*MemoryWardCasesRepo)(nil)

func (r *MemoryWardCasesRepo) Create(_ context.Context, c *domain.WardCase) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.CaseID == "" {
		c.CaseID = uuid.NewString()
	}
	r.cases[c.TenantID] = append(r.cases[c.TenantID], c)
	return c.CaseID, nil
}

func (r *MemoryWardCasesRepo) Filter(_ context.Context, tenantID string, f WardCaseFilter) ([]*domain.WardCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.WardCase
	for _, c := range r.cases[tenantID] {
		if f.WardID != "" && c.WardID.String != f.WardID {
			continue
		}
		if f.DoctorID != "" && c.DoctorID.String != f.DoctorID {
			continue
		}
		if f.PatientID != "" && c.PatientID.String != f.PatientID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryWardCasesRepo) Count(_ context.Context, tenantID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cases[tenantID]), nil
}

type MemoryOperationCasesRepo struct {
	mu    sync.RWMutex
	cases map[string][]*domain.OperationCase
}

func NewMemoryOperationCasesRepo() *MemoryOperationCasesRepo {
	return &MemoryOperationCasesRepo{cases: map[string][]*domain.OperationCase{}}
}

var _ OperationCasesRepo = (*MemoryOperationCasesRepo)(nil)

func (r *MemoryOperationCasesRepo) Create(_ context.Context, c *domain.OperationCase) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.CaseID == "" {
		c.CaseID = uuid.NewString()
	}
	r.cases[c.TenantID] = append(r.cases[c.TenantID], c)
	return c.CaseID, nil
}

func (r *MemoryOperationCasesRepo) Filter(_ context.Context, tenantID string, f OperationCaseFilter) ([]*domain.OperationCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.OperationCase
	for _, c := range r.cases[tenantID] {
		if f.RoomID != "" && c.RoomID.String != f.RoomID {
			continue
		}
		if f.DoctorID != "" && c.DoctorID.String != f.DoctorID {
			continue
		}
		if f.PatientID != "" && c.PatientID.String != f.PatientID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryOperationCasesRepo) Count(_ context.Context, tenantID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cases[tenantID]), nil
}

type MemoryDeathCasesRepo struct {
	mu    sync.RWMutex
	cases map[string][]*domain.DeathCase
}

func NewMemoryDeathCasesRepo() *MemoryDeathCasesRepo {
	return &MemoryDeathCasesRepo{cases: map[string][]*domain.DeathCase{}}
}

var _ DeathCasesRepo = (*MemoryDeathCasesRepo)(nil)

func (r *MemoryDeathCasesRepo) Create(_ context.Context, c *domain.DeathCase) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.CaseID == "" {
		c.CaseID = uuid.NewString()
	}
	r.cases[c.TenantID] = append(r.cases[c.TenantID], c)
	return c.CaseID, nil
}

func (r *MemoryDeathCasesRepo) Filter(_ context.Context, tenantID string, f DeathCaseFilter) ([]*domain.DeathCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.DeathCase
	for _, c := range r.cases[tenantID] {
		if f.WardID != "" && c.WardID.String != f.WardID {
			continue
		}
		if f.DoctorID != "" && c.DoctorID.String != f.DoctorID {
			continue
		}
		if f.PatientID != "" && c.PatientID.String != f.PatientID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryDeathCasesRepo) Count(_ context.Context, tenantID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cases[tenantID]), nil
}

type MemoryImportsRepo struct {
	mu      sync.RWMutex
	imports map[string][]*domain.ImportFile
}

func NewMemoryImportsRepo() *MemoryImportsRepo {
	return &MemoryImportsRepo{imports: map[string][]*domain.ImportFile{}}
}

var _ ImportsRepo = (*MemoryImportsRepo)(nil)

func (r *MemoryImportsRepo) Create(_ context.Context, rec *domain.ImportFile) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ImportID == "" {
		rec.ImportID = uuid.NewString()
	}
	if rec.ImportedAt.IsZero() {
		rec.ImportedAt = time.Now()
	}
	r.imports[rec.TenantID] = append(r.imports[rec.TenantID], rec)
	return rec.ImportID, nil
}

// List returns newest first, like the imported_at index.
func (r *MemoryImportsRepo) List(_ context.Context, tenantID string, limit int) ([]*domain.ImportFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := r.imports[tenantID]
	out := make([]*domain.ImportFile, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ImportedAt.After(out[j].ImportedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// NewMemoryRepos wires a full in-memory repository set (dev mode and tests).
func NewMemoryRepos() *Repos {
	return &Repos{
		Wards:          NewMemoryWardsRepo(),
		Rooms:          NewMemoryRoomsRepo(),
		Doctors:        NewMemoryDoctorsRepo(),
		Patients:       NewMemoryPatientsRepo(),
		WardCases:      NewMemoryWardCasesRepo(),
		OperationCases: NewMemoryOperationCasesRepo(),
		DeathCases:     NewMemoryDeathCasesRepo(),
		Imports:        NewMemoryImportsRepo(),
	}
}
