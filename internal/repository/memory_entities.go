package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"darman-data/internal/domain"

	"github.com/google/uuid"
)

// Memory repositories back unit tests and the DB-less dev mode. They are
// tenant-isolated and keep insertion order for deterministic listings, but
// enforce no uniqueness beyond the same get-or-create check the Postgres
// versions do.

type MemoryWardsRepo struct {
	mu    sync.RWMutex
	wards map[string][]*domain.Ward // tenantID -> wards, insertion order
}

func NewMemoryWardsRepo() *MemoryWardsRepo {
	return &MemoryWardsRepo{wards: map[string][]*domain.Ward{}}
}

var _ WardsRepo = (*MemoryWardsRepo)(nil)

func (r *MemoryWardsRepo) GetOrCreate(_ context.Context, tenantID, name string) (*domain.Ward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wards[tenantID] {
		if w.Name == name {
			return w, nil
		}
	}
	w := &domain.Ward{WardID: uuid.NewString(), TenantID: tenantID, Name: name}
	r.wards[tenantID] = append(r.wards[tenantID], w)
	return w, nil
}

func (r *MemoryWardsRepo) FindByName(_ context.Context, tenantID, name string) (*domain.Ward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wards[tenantID] {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, nil
}

func (r *MemoryWardsRepo) Get(_ context.Context, tenantID, wardID string) (*domain.Ward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wards[tenantID] {
		if w.WardID == wardID {
			return w, nil
		}
	}
	return nil, nil
}

func (r *MemoryWardsRepo) List(_ context.Context, tenantID, search string, limit int) ([]*domain.Ward, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Ward
	for _, w := range r.wards[tenantID] {
		if search != "" && !strings.Contains(w.Name, search) {
			continue
		}
		out = append(out, w)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryWardsRepo) Count(_ context.Context, tenantID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.wards[tenantID]), nil
}

type MemoryRoomsRepo struct {
	mu    sync.RWMutex
	rooms map[string][]*domain.OperatingRoom
}

func NewMemoryRoomsRepo() *MemoryRoomsRepo {
	return &MemoryRoomsRepo{rooms: map[string][]*domain.OperatingRoom{}}
}

var _ RoomsRepo = (*MemoryRoomsRepo)(nil)

func (r *MemoryRoomsRepo) GetOrCreate(_ context.Context, tenantID, name string) (*domain.OperatingRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms[tenantID] {
		if room.Name == name {
			return room, nil
		}
	}
	room := &domain.OperatingRoom{RoomID: uuid.NewString(), TenantID: tenantID, Name: name}
	r.rooms[tenantID] = append(r.rooms[tenantID], room)
	return room, nil
}

func (r *MemoryRoomsRepo) FindByName(_ context.Context, tenantID, name string) (*domain.OperatingRoom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, room := range r.rooms[tenantID] {
		if room.Name == name {
			return room, nil
		}
	}
	return nil, nil
}

func (r *MemoryRoomsRepo) Get(_ context.Context, tenantID, roomID string) (*domain.OperatingRoom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, room := range r.rooms[tenantID] {
		if room.RoomID == roomID {
			return room, nil
		}
	}
	return nil, nil
}

func (r *MemoryRoomsRepo) List(_ context.Context, tenantID, search string, limit int) ([]*domain.OperatingRoom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.OperatingRoom
	for _, room := range r.rooms[tenantID] {
		if search != "" && !strings.Contains(room.Name, search) {
			continue
		}
		out = append(out, room)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRoomsRepo) Count(_ context.Context, tenantID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[tenantID]), nil
}

type MemoryDoctorsRepo struct {
	mu      sync.RWMutex
	doctors map[string][]*domain.Doctor
	wards   map[string]map[string]bool // doctorID -> wardID set
	rooms   map[string]map[string]bool // doctorID -> roomID set
}

func NewMemoryDoctorsRepo() *MemoryDoctorsRepo {
	return &MemoryDoctorsRepo{
		doctors: map[string][]*domain.Doctor{},
		wards:   map[string]map[string]bool{},
		rooms:   map[string]map[string]bool{},
	}
}

var _ DoctorsRepo = (*MemoryDoctorsRepo)(nil)

func (r *MemoryDoctorsRepo) GetOrCreate(_ context.Context, tenantID, fullName string) (*domain.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors[tenantID] {
		if d.FullName == fullName {
			return d, nil
		}
	}
	d := &domain.Doctor{DoctorID: uuid.NewString(), TenantID: tenantID, FullName: fullName}
	r.doctors[tenantID] = append(r.doctors[tenantID], d)
	return d, nil
}

func (r *MemoryDoctorsRepo) FindByName(_ context.Context, tenantID, fullName string) (*domain.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.doctors[tenantID] {
		if d.FullName == fullName {
			return d, nil
		}
	}
	return nil, nil
}

func (r *MemoryDoctorsRepo) Get(_ context.Context, tenantID, doctorID string) (*domain.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.doctors[tenantID] {
		if d.DoctorID == doctorID {
			return d, nil
		}
	}
	return nil, nil
}

func (r *MemoryDoctorsRepo) List(_ context.Context, tenantID, search string, limit int) ([]*domain.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Doctor
	for _, d := range r.doctors[tenantID] {
		if search != "" && !strings.Contains(d.FullName, search) {
			continue
		}
		out = append(out, d)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryDoctorsRepo) Count(_ context.Context, tenantID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.doctors[tenantID]), nil
}

func (r *MemoryDoctorsRepo) AddWard(_ context.Context, doctorID, wardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.wards[doctorID] == nil {
		r.wards[doctorID] = map[string]bool{}
	}
	r.wards[doctorID][wardID] = true
	return nil
}

func (r *MemoryDoctorsRepo) AddRoom(_ context.Context, doctorID, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[doctorID] == nil {
		r.rooms[doctorID] = map[string]bool{}
	}
	r.rooms[doctorID][roomID] = true
	return nil
}

func (r *MemoryDoctorsRepo) ListByWard(_ context.Context, tenantID, wardID string) ([]*domain.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Doctor
	for _, d := range r.doctors[tenantID] {
		if r.wards[d.DoctorID][wardID] {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *MemoryDoctorsRepo) ListByRoom(_ context.Context, tenantID, roomID string) ([]*domain.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Doctor
	for _, d := range r.doctors[tenantID] {
		if r.rooms[d.DoctorID][roomID] {
			out = append(out, d)
		}
	}
	return out, nil
}

// WardIDs returns the ward associations of one doctor, sorted. Test helper.
func (r *MemoryDoctorsRepo) WardIDs(doctorID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for id := range r.wards[doctorID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

type MemoryPatientsRepo struct {
	mu       sync.RWMutex
	patients map[string][]*domain.Patient
	wards    map[string]map[string]bool
	rooms    map[string]map[string]bool
}

func NewMemoryPatientsRepo() *MemoryPatientsRepo {
	return &MemoryPatientsRepo{
		patients: map[string][]*domain.Patient{},
		wards:    map[string]map[string]bool{},
		rooms:    map[string]map[string]bool{},
	}
}

var _ PatientsRepo = (*MemoryPatientsRepo)(nil)

func (r *MemoryPatientsRepo) GetOrCreate(_ context.Context, tenantID, fullName string) (*domain.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients[tenantID] {
		if p.FullName == fullName {
			return p, nil
		}
	}
	p := &domain.Patient{PatientID: uuid.NewString(), TenantID: tenantID, FullName: fullName}
	r.patients[tenantID] = append(r.patients[tenantID], p)
	return p, nil
}

func (r *MemoryPatientsRepo) FindByName(_ context.Context, tenantID, fullName string) (*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients[tenantID] {
		if p.FullName == fullName {
			return p, nil
		}
	}
	return nil, nil
}

func (r *MemoryPatientsRepo) FindByNameContains(_ context.Context, tenantID, fragment string) (*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients[tenantID] {
		if strings.Contains(p.FullName, fragment) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *MemoryPatientsRepo) Get(_ context.Context, tenantID, patientID string) (*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients[tenantID] {
		if p.PatientID == patientID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *MemoryPatientsRepo) List(_ context.Context, tenantID, search string, limit int) ([]*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Patient
	for _, p := range r.patients[tenantID] {
		if search != "" && !strings.Contains(p.FullName, search) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryPatientsRepo) Count(_ context.Context, tenantID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients[tenantID]), nil
}

func (r *MemoryPatientsRepo) AddWard(_ context.Context, patientID, wardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.wards[patientID] == nil {
		r.wards[patientID] = map[string]bool{}
	}
	r.wards[patientID][wardID] = true
	return nil
}

func (r *MemoryPatientsRepo) AddRoom(_ context.Context, patientID, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[patientID] == nil {
		r.rooms[patientID] = map[string]bool{}
	}
	r.rooms[patientID][roomID] = true
	return nil
}

func (r *MemoryPatientsRepo) CountByWard(_ context.Context, tenantID, wardID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.patients[tenantID] {
		if r.wards[p.PatientID][wardID] {
			n++
		}
	}
	return n, nil
}

func (r *MemoryPatientsRepo) CountByRoom(_ context.Context, tenantID, roomID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.patients[tenantID] {
		if r.rooms[p.PatientID][roomID] {
			n++
		}
	}
	return n, nil
}
