package repository

import (
	"context"
	"database/sql"
	"fmt"

	"darman-data/internal/domain"
)

type PostgresDoctorsRepo struct {
	db *sql.DB
}

func NewPostgresDoctorsRepo(db *sql.DB) *PostgresDoctorsRepo {
	return &PostgresDoctorsRepo{db: db}
}

var _ DoctorsRepo = (*PostgresDoctorsRepo)(nil)

const doctorColumns = `doctor_id::text, tenant_id::text, full_name`

func scanDoctor(row interface{ Scan(...any) error }) (*domain.Doctor, error) {
	var d domain.Doctor
	if err := row.Scan(&d.DoctorID, &d.TenantID, &d.FullName); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresDoctorsRepo) GetOrCreate(ctx context.Context, tenantID, fullName string) (*domain.Doctor, error) {
	if tenantID == "" || fullName == "" {
		return nil, fmt.Errorf("tenant_id and full_name are required")
	}

	d, err := r.FindByName(ctx, tenantID, fullName)
	if err != nil {
		return nil, err
	}
	if d != nil {
		return d, nil
	}

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO doctors (tenant_id, full_name)
		 VALUES ($1::uuid, $2)
		 RETURNING `+doctorColumns,
		tenantID, fullName,
	)
	d, err = scanDoctor(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return d, nil
}

func (r *PostgresDoctorsRepo) FindByName(ctx context.Context, tenantID, fullName string) (*domain.Doctor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE tenant_id = $1::uuid AND full_name = $2 LIMIT 1`,
		tenantID, fullName,
	)
	d, err := scanDoctor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find doctor by name: %w", err)
	}
	return d, nil
}

func (r *PostgresDoctorsRepo) Get(ctx context.Context, tenantID, doctorID string) (*domain.Doctor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE tenant_id = $1::uuid AND doctor_id = $2::uuid`,
		tenantID, doctorID,
	)
	d, err := scanDoctor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return d, nil
}

func (r *PostgresDoctorsRepo) AddWard(ctx context.Context, doctorID, wardID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO doctor_wards (doctor_id, ward_id)
		 VALUES ($1::uuid, $2::uuid)
		 ON CONFLICT (doctor_id, ward_id) DO NOTHING`,
		doctorID, wardID,
	)
	if err != nil {
		return fmt.Errorf("failed to link doctor to ward: %w", err)
	}
	return nil
}

func (r *PostgresDoctorsRepo) AddRoom(ctx context.Context, doctorID, roomID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO doctor_rooms (doctor_id, room_id)
		 VALUES ($1::uuid, $2::uuid)
		 ON CONFLICT (doctor_id, room_id) DO NOTHING`,
		doctorID, roomID,
	)
	if err != nil {
		return fmt.Errorf("failed to link doctor to operating room: %w", err)
	}
	return nil
}

func (r *PostgresDoctorsRepo) ListByWard(ctx context.Context, tenantID, wardID string) ([]*domain.Doctor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT d.doctor_id::text, d.tenant_id::text, d.full_name
		 FROM doctors d
		 JOIN doctor_wards dw ON dw.doctor_id = d.doctor_id
		 WHERE d.tenant_id = $1::uuid AND dw.ward_id = $2::uuid
		 ORDER BY d.full_name`,
		tenantID, wardID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors by ward: %w", err)
	}
	defer rows.Close()
	return collectDoctors(rows)
}

func (r *PostgresDoctorsRepo) ListByRoom(ctx context.Context, tenantID, roomID string) ([]*domain.Doctor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT d.doctor_id::text, d.tenant_id::text, d.full_name
		 FROM doctors d
		 JOIN doctor_rooms dr ON dr.doctor_id = d.doctor_id
		 WHERE d.tenant_id = $1::uuid AND dr.room_id = $2::uuid
		 ORDER BY d.full_name`,
		tenantID, roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors by room: %w", err)
	}
	defer rows.Close()
	return collectDoctors(rows)
}

func (r *PostgresDoctorsRepo) List(ctx context.Context, tenantID, search string, limit int) ([]*domain.Doctor, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors
		 WHERE tenant_id = $1::uuid AND ($2 = '' OR full_name ILIKE '%' || $2 || '%')
		 ORDER BY full_name
		 LIMIT $3`,
		tenantID, search, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()
	return collectDoctors(rows)
}

func (r *PostgresDoctorsRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM doctors WHERE tenant_id = $1::uuid`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return n, nil
}

func collectDoctors(rows *sql.Rows) ([]*domain.Doctor, error) {
	doctors := []*domain.Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate doctors: %w", err)
	}
	return doctors, nil
}
