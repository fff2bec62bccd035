package domain

// Patient. Room-sheet imports may key patients by "<patient id> <name>"
// when both header columns are present, so FullName can carry an identifier
// prefix; room-case lookup therefore uses a contains match.
type Patient struct {
	PatientID string `db:"patient_id" json:"patient_id"`
	TenantID  string `db:"tenant_id" json:"tenant_id"`
	FullName  string `db:"full_name" json:"full_name"`
}
