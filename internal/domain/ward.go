package domain

import (
	"database/sql"
)

// Ward is a hospital department (بخش). Created by entity reconciliation on
// first sighting of a name in a ward or death-certificate sheet; never
// auto-deleted.
type Ward struct {
	WardID   string         `db:"ward_id" json:"ward_id"`
	TenantID string         `db:"tenant_id" json:"tenant_id"`
	Name     string         `db:"name" json:"name"`
	Sheet    sql.NullString `db:"sheet" json:"sheet"` // source-sheet label, optional
}
