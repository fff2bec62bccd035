package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"darman-data/internal/domain"
)

type PostgresWardCasesRepo struct {
	db *sql.DB
}

func NewPostgresWardCasesRepo(db *sql.DB) *PostgresWardCasesRepo {
	return &PostgresWardCasesRepo{db: db}
}

var _ WardCasesRepo = (*PostgresWardCasesRepo)(nil)

const wardCaseColumns = `case_id::text, tenant_id::text, number, insurance,
	admission_date, discharge_date, delivery_date,
	ward_id::text, doctor_id::text, referring_doctor_id::text, patient_id::text, defects`

func scanWardCase(row interface{ Scan(...any) error }) (*domain.WardCase, error) {
	var c domain.WardCase
	err := row.Scan(
		&c.CaseID, &c.TenantID, &c.Number, &c.Insurance,
		&c.AdmissionDate, &c.DischargeDate, &c.DeliveryDate,
		&c.WardID, &c.DoctorID, &c.ReferringDoctorID, &c.PatientID, &c.Defects,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresWardCasesRepo) Create(ctx context.Context, c *domain.WardCase) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO ward_cases (
			tenant_id, number, insurance,
			admission_date, discharge_date, delivery_date,
			ward_id, doctor_id, referring_doctor_id, patient_id, defects
		) VALUES (
			$1::uuid, $2, $3, $4, $5, $6,
			NULLIF($7, '')::uuid, NULLIF($8, '')::uuid, NULLIF($9, '')::uuid, NULLIF($10, '')::uuid,
			$11::jsonb
		) RETURNING case_id::text`,
		c.TenantID, c.Number, c.Insurance,
		c.AdmissionDate, c.DischargeDate, c.DeliveryDate,
		c.WardID.String, c.DoctorID.String, c.ReferringDoctorID.String, c.PatientID.String,
		c.Defects,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create ward case: %w", err)
	}
	return id, nil
}

func (r *PostgresWardCasesRepo) Filter(ctx context.Context, tenantID string, f WardCaseFilter) ([]*domain.WardCase, error) {
	where := []string{`tenant_id = $1::uuid`}
	args := []any{tenantID}
	if f.WardID != "" {
		args = append(args, f.WardID)
		where = append(where, fmt.Sprintf(`ward_id = $%d::uuid`, len(args)))
	}
	if f.DoctorID != "" {
		// Attending doctor only; a referring doctor does not own the case.
		args = append(args, f.DoctorID)
		where = append(where, fmt.Sprintf(`doctor_id = $%d::uuid`, len(args)))
	}
	if f.PatientID != "" {
		args = append(args, f.PatientID)
		where = append(where, fmt.Sprintf(`patient_id = $%d::uuid`, len(args)))
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+wardCaseColumns+` FROM ward_cases WHERE `+strings.Join(where, " AND ")+` ORDER BY case_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to filter ward cases: %w", err)
	}
	defer rows.Close()

	cases := []*domain.WardCase{}
	for rows.Next() {
		c, err := scanWardCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ward case: %w", err)
		}
		cases = append(cases, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ward cases: %w", err)
	}
	return cases, nil
}

func (r *PostgresWardCasesRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ward_cases WHERE tenant_id = $1::uuid`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count ward cases: %w", err)
	}
	return n, nil
}
