package ingest

// The workbooks have no negotiated layout; every position below is fixed by
// convention with the hospital export. Columns are 0-based.

// MarkerRule identifies record rows: a row counts only when the cell at Col
// contains Substr. A class without a rule keeps every row.
type MarkerRule struct {
	Col    int
	Substr string
}

// ClassSchema is the column layout of one sheet class.
type ClassSchema struct {
	Marker *MarkerRule

	// Entity-extraction positions.
	GroupCol   int   // ward or room name
	DoctorCols []int // every column carrying a doctor name
	PatientCol int   // -1 when patients come from header-named columns

	// Room sheets key patients by two header-addressed columns joined with
	// a space instead of a fixed position.
	PatientIDHeader   string
	PatientNameHeader string

	// MinCaseCols is the narrowest sheet the case builder accepts.
	MinCaseCols int
}

var (
	WardSchema = ClassSchema{
		Marker:      &MarkerRule{Col: 8, Substr: "P"},
		GroupCol:    2,
		DoctorCols:  []int{3, 7},
		PatientCol:  8,
		MinCaseCols: 14,
	}

	RoomSchema = ClassSchema{
		GroupCol:          6,
		DoctorCols:        []int{9},
		PatientCol:        -1,
		PatientIDHeader:   "شناسه بیمار",
		PatientNameHeader: "نام بیمار",
		MinCaseCols:       11,
	}

	DeathSchema = ClassSchema{
		Marker:      &MarkerRule{Col: 0, Substr: "U"},
		GroupCol:    4,
		DoctorCols:  []int{1},
		PatientCol:  11,
		MinCaseCols: 14,
	}
)

// SchemaFor returns the layout of a class, nil for ClassUnknown.
func SchemaFor(class SheetClass) *ClassSchema {
	switch class {
	case ClassWard:
		return &WardSchema
	case ClassRoom:
		return &RoomSchema
	case ClassDeath:
		return &DeathSchema
	default:
		return nil
	}
}

// Ward-case column positions.
const (
	wardColInsurance  = 0
	wardColDischarge  = 1
	wardColWardName   = 2
	wardColDoctor     = 3
	wardColAdmission  = 4
	wardColNumber     = 6
	wardColRefDoctor  = 7
	wardColPatient    = 8
	wardColDelivery   = 9
	wardColDefectBase = 10 // alternating sheet/type pairs from here on
)

// Operation-case column positions.
const (
	roomColHospitalization = 0
	roomColDischarge       = 1
	roomColOperationDate   = 2
	roomColPatient         = 3
	roomColNumber          = 5
	roomColRoomName        = 6
	roomColOperationSize   = 7
	roomColK               = 8
	roomColDoctor          = 9
	roomColAnesthesia      = 10
)

// Death-case column positions.
const (
	deathColNumber    = 0
	deathColDoctor    = 1
	deathColCause     = 2
	deathColLocation  = 3
	deathColWardName  = 4
	deathColDeathDate = 5
	deathColAdmission = 6
	deathColAge       = 9
	deathColGender    = 10
	deathColPatient   = 11
	deathColDelivery  = 13
)
