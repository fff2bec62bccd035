package repository

import (
	"context"
	"database/sql"
	"fmt"

	"darman-data/internal/domain"
)

type PostgresPatientsRepo struct {
	db *sql.DB
}

func NewPostgresPatientsRepo(db *sql.DB) *PostgresPatientsRepo {
	return &PostgresPatientsRepo{db: db}
}

var _ PatientsRepo = (*PostgresPatientsRepo)(nil)

const patientColumns = `patient_id::text, tenant_id::text, full_name`

func scanPatient(row interface{ Scan(...any) error }) (*domain.Patient, error) {
	var p domain.Patient
	if err := row.Scan(&p.PatientID, &p.TenantID, &p.FullName); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPatientsRepo) GetOrCreate(ctx context.Context, tenantID, fullName string) (*domain.Patient, error) {
	if tenantID == "" || fullName == "" {
		return nil, fmt.Errorf("tenant_id and full_name are required")
	}

	p, err := r.FindByName(ctx, tenantID, fullName)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO patients (tenant_id, full_name)
		 VALUES ($1::uuid, $2)
		 RETURNING `+patientColumns,
		tenantID, fullName,
	)
	p, err = scanPatient(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return p, nil
}

func (r *PostgresPatientsRepo) FindByName(ctx context.Context, tenantID, fullName string) (*domain.Patient, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE tenant_id = $1::uuid AND full_name = $2 LIMIT 1`,
		tenantID, fullName,
	)
	p, err := scanPatient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find patient by name: %w", err)
	}
	return p, nil
}

// FindByNameContains matches patients whose stored name contains the given
// fragment. Room sheets carry "<id> <name>" in the patient cell, so an exact
// match against the stored name would never hit.
func (r *PostgresPatientsRepo) FindByNameContains(ctx context.Context, tenantID, fragment string) (*domain.Patient, error) {
	if fragment == "" {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+patientColumns+` FROM patients
		 WHERE tenant_id = $1::uuid AND full_name LIKE '%' || $2 || '%'
		 ORDER BY patient_id
		 LIMIT 1`,
		tenantID, fragment,
	)
	p, err := scanPatient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find patient by fragment: %w", err)
	}
	return p, nil
}

func (r *PostgresPatientsRepo) Get(ctx context.Context, tenantID, patientID string) (*domain.Patient, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE tenant_id = $1::uuid AND patient_id = $2::uuid`,
		tenantID, patientID,
	)
	p, err := scanPatient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return p, nil
}

func (r *PostgresPatientsRepo) AddWard(ctx context.Context, patientID, wardID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO patient_wards (patient_id, ward_id)
		 VALUES ($1::uuid, $2::uuid)
		 ON CONFLICT (patient_id, ward_id) DO NOTHING`,
		patientID, wardID,
	)
	if err != nil {
		return fmt.Errorf("failed to link patient to ward: %w", err)
	}
	return nil
}

func (r *PostgresPatientsRepo) AddRoom(ctx context.Context, patientID, roomID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO patient_rooms (patient_id, room_id)
		 VALUES ($1::uuid, $2::uuid)
		 ON CONFLICT (patient_id, room_id) DO NOTHING`,
		patientID, roomID,
	)
	if err != nil {
		return fmt.Errorf("failed to link patient to operating room: %w", err)
	}
	return nil
}

func (r *PostgresPatientsRepo) CountByWard(ctx context.Context, tenantID, wardID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM patients p
		 JOIN patient_wards pw ON pw.patient_id = p.patient_id
		 WHERE p.tenant_id = $1::uuid AND pw.ward_id = $2::uuid`,
		tenantID, wardID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count patients by ward: %w", err)
	}
	return n, nil
}

func (r *PostgresPatientsRepo) CountByRoom(ctx context.Context, tenantID, roomID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM patients p
		 JOIN patient_rooms pr ON pr.patient_id = p.patient_id
		 WHERE p.tenant_id = $1::uuid AND pr.room_id = $2::uuid`,
		tenantID, roomID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count patients by room: %w", err)
	}
	return n, nil
}

func (r *PostgresPatientsRepo) List(ctx context.Context, tenantID, search string, limit int) ([]*domain.Patient, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+patientColumns+` FROM patients
		 WHERE tenant_id = $1::uuid AND ($2 = '' OR full_name ILIKE '%' || $2 || '%')
		 ORDER BY full_name
		 LIMIT $3`,
		tenantID, search, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	patients := []*domain.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patients: %w", err)
	}
	return patients, nil
}

func (r *PostgresPatientsRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM patients WHERE tenant_id = $1::uuid`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return n, nil
}
