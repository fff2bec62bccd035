package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"darman-data/internal/domain"
)

type PostgresDeathCasesRepo struct {
	db *sql.DB
}

func NewPostgresDeathCasesRepo(db *sql.DB) *PostgresDeathCasesRepo {
	return &PostgresDeathCasesRepo{db: db}
}

var _ DeathCasesRepo = (*PostgresDeathCasesRepo)(nil)

const deathCaseColumns = `case_id::text, tenant_id::text, number, doctor_id::text,
	cause_of_death, location_of_death, ward_id::text,
	death_date, admission_date, age, gender, patient_id::text, delivery_date`

func scanDeathCase(row interface{ Scan(...any) error }) (*domain.DeathCase, error) {
	var c domain.DeathCase
	err := row.Scan(
		&c.CaseID, &c.TenantID, &c.Number, &c.DoctorID,
		&c.CauseOfDeath, &c.LocationOfDeath, &c.WardID,
		&c.DeathDate, &c.AdmissionDate, &c.Age, &c.GenderCode, &c.PatientID, &c.DeliveryDate,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresDeathCasesRepo) Create(ctx context.Context, c *domain.DeathCase) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO death_cases (
			tenant_id, number, doctor_id,
			cause_of_death, location_of_death, ward_id,
			death_date, admission_date, age, gender, patient_id, delivery_date
		) VALUES (
			$1::uuid, $2, NULLIF($3, '')::uuid,
			$4, $5, NULLIF($6, '')::uuid,
			$7, $8, $9, $10, NULLIF($11, '')::uuid, $12
		) RETURNING case_id::text`,
		c.TenantID, c.Number, c.DoctorID.String,
		c.CauseOfDeath, c.LocationOfDeath, c.WardID.String,
		c.DeathDate, c.AdmissionDate, c.Age, c.GenderCode, c.PatientID.String, c.DeliveryDate,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create death case: %w", err)
	}
	return id, nil
}

func (r *PostgresDeathCasesRepo) Filter(ctx context.Context, tenantID string, f DeathCaseFilter) ([]*domain.DeathCase, error) {
	where := []string{`tenant_id = $1::uuid`}
	args := []any{tenantID}
	if f.WardID != "" {
		args = append(args, f.WardID)
		where = append(where, fmt.Sprintf(`ward_id = $%d::uuid`, len(args)))
	}
	if f.DoctorID != "" {
		args = append(args, f.DoctorID)
		where = append(where, fmt.Sprintf(`doctor_id = $%d::uuid`, len(args)))
	}
	if f.PatientID != "" {
		args = append(args, f.PatientID)
		where = append(where, fmt.Sprintf(`patient_id = $%d::uuid`, len(args)))
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+deathCaseColumns+` FROM death_cases WHERE `+strings.Join(where, " AND ")+` ORDER BY case_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to filter death cases: %w", err)
	}
	defer rows.Close()

	cases := []*domain.DeathCase{}
	for rows.Next() {
		c, err := scanDeathCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan death case: %w", err)
		}
		cases = append(cases, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate death cases: %w", err)
	}
	return cases, nil
}

func (r *PostgresDeathCasesRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM death_cases WHERE tenant_id = $1::uuid`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count death cases: %w", err)
	}
	return n, nil
}
