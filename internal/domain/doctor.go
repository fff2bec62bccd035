package domain

// Doctor is identified within a tenant by exact full-name match. Ward and
// operating-room associations are accumulated across imports (additive only,
// never removed by ingestion).
type Doctor struct {
	DoctorID string `db:"doctor_id" json:"doctor_id"`
	TenantID string `db:"tenant_id" json:"tenant_id"`
	FullName string `db:"full_name" json:"full_name"`
}
