package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"darman-data/internal/domain"
)

type PostgresOperationCasesRepo struct {
	db *sql.DB
}

func NewPostgresOperationCasesRepo(db *sql.DB) *PostgresOperationCasesRepo {
	return &PostgresOperationCasesRepo{db: db}
}

var _ OperationCasesRepo = (*PostgresOperationCasesRepo)(nil)

const operationCaseColumns = `case_id::text, tenant_id::text, number,
	hospitalization_date, discharge_date, operation_date,
	room_id::text, doctor_id::text, patient_id::text,
	operation_size, anesthesia, k`

func scanOperationCase(row interface{ Scan(...any) error }) (*domain.OperationCase, error) {
	var c domain.OperationCase
	err := row.Scan(
		&c.CaseID, &c.TenantID, &c.Number,
		&c.HospitalizationDate, &c.DischargeDate, &c.OperationDate,
		&c.RoomID, &c.DoctorID, &c.PatientID,
		&c.OperationSize, &c.Anesthesia, &c.K,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresOperationCasesRepo) Create(ctx context.Context, c *domain.OperationCase) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO operation_cases (
			tenant_id, number,
			hospitalization_date, discharge_date, operation_date,
			room_id, doctor_id, patient_id,
			operation_size, anesthesia, k
		) VALUES (
			$1::uuid, $2, $3, $4, $5,
			NULLIF($6, '')::uuid, NULLIF($7, '')::uuid, NULLIF($8, '')::uuid,
			$9, $10, $11
		) RETURNING case_id::text`,
		c.TenantID, c.Number,
		c.HospitalizationDate, c.DischargeDate, c.OperationDate,
		c.RoomID.String, c.DoctorID.String, c.PatientID.String,
		c.OperationSize, c.Anesthesia, c.K,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create operation case: %w", err)
	}
	return id, nil
}

func (r *PostgresOperationCasesRepo) Filter(ctx context.Context, tenantID string, f OperationCaseFilter) ([]*domain.OperationCase, error) {
	where := []string{`tenant_id = $1::uuid`}
	args := []any{tenantID}
	if f.RoomID != "" {
		args = append(args, f.RoomID)
		where = append(where, fmt.Sprintf(`room_id = $%d::uuid`, len(args)))
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
		`SELECT `+operationCaseColumns+` FROM operation_cases WHERE `+strings.Join(where, " AND ")+` ORDER BY case_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to filter operation cases: %w", err)
	}
	defer rows.Close()

	cases := []*domain.OperationCase{}
	for rows.Next() {
		c, err := scanOperationCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation case: %w", err)
		}
		cases = append(cases, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate operation cases: %w", err)
	}
	return cases, nil
}

func (r *PostgresOperationCasesRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM operation_cases WHERE tenant_id = $1::uuid`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count operation cases: %w", err)
	}
	return n, nil
}
