package repository

import (
	"context"

	"darman-data/internal/domain"
)

// Entity repositories. Lookups are always tenant-scoped; FindByName returns
// (nil, nil) when no row matches so callers can treat "absent" as a normal
// outcome. GetOrCreate is idempotent per (tenant, name) but carries a
// check-then-create race window: there is no uniqueness constraint backing
// it, so two concurrent imports can create duplicate rows.

type WardsRepo interface {
	GetOrCreate(ctx context.Context, tenantID, name string) (*domain.Ward, error)
	FindByName(ctx context.Context, tenantID, name string) (*domain.Ward, error)
	Get(ctx context.Context, tenantID, wardID string) (*domain.Ward, error)
	List(ctx context.Context, tenantID, search string, limit int) ([]*domain.Ward, error)
	Count(ctx context.Context, tenantID string) (int, error)
}

type RoomsRepo interface {
	GetOrCreate(ctx context.Context, tenantID, name string) (*domain.OperatingRoom, error)
	FindByName(ctx context.Context, tenantID, name string) (*domain.OperatingRoom, error)
	Get(ctx context.Context, tenantID, roomID string) (*domain.OperatingRoom, error)
	List(ctx context.Context, tenantID, search string, limit int) ([]*domain.OperatingRoom, error)
	Count(ctx context.Context, tenantID string) (int, error)
}

type DoctorsRepo interface {
	GetOrCreate(ctx context.Context, tenantID, fullName string) (*domain.Doctor, error)
	FindByName(ctx context.Context, tenantID, fullName string) (*domain.Doctor, error)
	Get(ctx context.Context, tenantID, doctorID string) (*domain.Doctor, error)
	List(ctx context.Context, tenantID, search string, limit int) ([]*domain.Doctor, error)
	Count(ctx context.Context, tenantID string) (int, error)

	// Associations are additive and idempotent; ingestion never removes one.
	AddWard(ctx context.Context, doctorID, wardID string) error
	AddRoom(ctx context.Context, doctorID, roomID string) error
	ListByWard(ctx context.Context, tenantID, wardID string) ([]*domain.Doctor, error)
	ListByRoom(ctx context.Context, tenantID, roomID string) ([]*domain.Doctor, error)
}

type PatientsRepo interface {
	GetOrCreate(ctx context.Context, tenantID, fullName string) (*domain.Patient, error)
	FindByName(ctx context.Context, tenantID, fullName string) (*domain.Patient, error)
	// FindByNameContains is the lax lookup used for operating-room cases:
	// room sheets key patients as "<id> <name>", so an exact match on the
	// bare name would always miss.
	FindByNameContains(ctx context.Context, tenantID, fragment string) (*domain.Patient, error)
	Get(ctx context.Context, tenantID, patientID string) (*domain.Patient, error)
	List(ctx context.Context, tenantID, search string, limit int) ([]*domain.Patient, error)
	Count(ctx context.Context, tenantID string) (int, error)

	AddWard(ctx context.Context, patientID, wardID string) error
	AddRoom(ctx context.Context, patientID, roomID string) error
	CountByWard(ctx context.Context, tenantID, wardID string) (int, error)
	CountByRoom(ctx context.Context, tenantID, roomID string) (int, error)
}

// Case repositories. Filter fields are ANDed; the zero filter returns every
// case of the tenant.

type WardCaseFilter struct {
	WardID    string
	DoctorID  string
	PatientID string
}

type WardCasesRepo interface {
	Create(ctx context.Context, c *domain.WardCase) (string, error)
	Filter(ctx context.Context, tenantID string, f WardCaseFilter) ([]*domain.WardCase, error)
	Count(ctx context.Context, tenantID string) (int, error)
}

type OperationCaseFilter struct {
	RoomID    string
	DoctorID  string
	PatientID string
}

type OperationCasesRepo interface {
	Create(ctx context.Context, c *domain.OperationCase) (string, error)
	Filter(ctx context.Context, tenantID string, f OperationCaseFilter) ([]*domain.OperationCase, error)
	Count(ctx context.Context, tenantID string) (int, error)
}

type DeathCaseFilter struct {
	WardID    string
	DoctorID  string
	PatientID string
}

type DeathCasesRepo interface {
	Create(ctx context.Context, c *domain.DeathCase) (string, error)
	Filter(ctx context.Context, tenantID string, f DeathCaseFilter) ([]*domain.DeathCase, error)
	Count(ctx context.Context, tenantID string) (int, error)
}

type ImportsRepo interface {
	Create(ctx context.Context, rec *domain.ImportFile) (string, error)
	List(ctx context.Context, tenantID string, limit int) ([]*domain.ImportFile, error)
}

// Repos bundles every repository an import or a statistics request touches.
type Repos struct {
	Wards          WardsRepo
	Rooms          RoomsRepo
	Doctors        DoctorsRepo
	Patients       PatientsRepo
	WardCases      WardCasesRepo
	OperationCases OperationCasesRepo
	DeathCases     DeathCasesRepo
	Imports        ImportsRepo
}
