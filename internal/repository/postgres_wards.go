package repository

import (
	"context"
	"database/sql"
	"fmt"

	"darman-data/internal/domain"
)

type PostgresWardsRepo struct {
	db *sql.DB
}

func NewPostgresWardsRepo(db *sql.DB) *PostgresWardsRepo {
	return &PostgresWardsRepo{db: db}
}

var _ WardsRepo = (*PostgresWardsRepo)(nil)

const wardColumns = `ward_id::text, tenant_id::text, name, sheet`

func scanWard(row interface{ Scan(...any) error }) (*domain.Ward, error) {
	var w domain.Ward
	if err := row.Scan(&w.WardID, &w.TenantID, &w.Name, &w.Sheet); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *PostgresWardsRepo) GetOrCreate(ctx context.Context, tenantID, name string) (*domain.Ward, error) {
	if tenantID == "" || name == "" {
		return nil, fmt.Errorf("tenant_id and name are required")
	}

	w, err := r.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}

	// No uniqueness constraint backs this: a concurrent import may insert
	// the same name between the lookup above and this insert.
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO wards (tenant_id, name, sheet)
		 VALUES ($1::uuid, $2, '')
		 RETURNING `+wardColumns,
		tenantID, name,
	)
	w, err = scanWard(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create ward: %w", err)
	}
	return w, nil
}

func (r *PostgresWardsRepo) FindByName(ctx context.Context, tenantID, name string) (*domain.Ward, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+wardColumns+` FROM wards WHERE tenant_id = $1::uuid AND name = $2 LIMIT 1`,
		tenantID, name,
	)
	w, err := scanWard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ward by name: %w", err)
	}
	return w, nil
}

func (r *PostgresWardsRepo) Get(ctx context.Context, tenantID, wardID string) (*domain.Ward, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+wardColumns+` FROM wards WHERE tenant_id = $1::uuid AND ward_id = $2::uuid`,
		tenantID, wardID,
	)
	w, err := scanWard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ward: %w", err)
	}
	return w, nil
}

func (r *PostgresWardsRepo) List(ctx context.Context, tenantID, search string, limit int) ([]*domain.Ward, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+wardColumns+` FROM wards
		 WHERE tenant_id = $1::uuid AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		 ORDER BY name
		 LIMIT $3`,
		tenantID, search, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wards: %w", err)
	}
	defer rows.Close()

	wards := []*domain.Ward{}
	for rows.Next() {
		w, err := scanWard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ward: %w", err)
		}
		wards = append(wards, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wards: %w", err)
	}
	return wards, nil
}

func (r *PostgresWardsRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wards WHERE tenant_id = $1::uuid`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count wards: %w", err)
	}
	return n, nil
}
