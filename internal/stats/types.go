package stats

// DayAverage is a day-count mean. Valid is false when no case yielded a
// convertible date pair, which is different from a true average of zero.
type DayAverage struct {
	Days  int  `json:"days"`
	Valid bool `json:"valid"`
}

// CodeCount is one row of a coded-field distribution.
type CodeCount struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// NameCount pairs an entity name with an occurrence count.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AgeBuckets are the five death-case age bands.
type AgeBuckets struct {
	Under20   int `json:"under_20"`
	Age20to39 int `json:"age_20_39"`
	Age40to59 int `json:"age_40_59"`
	Age60to79 int `json:"age_60_79"`
	Over80    int `json:"age_80_up"`
}

// GenderBuckets are the two death-case gender bands; cases with an
// unrecognized code fall in neither.
type GenderBuckets struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// Overview is the whole-tenant bundle.
type Overview struct {
	Wards        int `json:"wards"`
	Rooms        int `json:"rooms"`
	Doctors      int `json:"doctors"`
	Patients     int `json:"patients"`
	WardCases    int `json:"ward_cases"`
	RoomCases    int `json:"room_cases"`
	Cases        int `json:"cases"`
	DefectCases  int `json:"defect_cases"`
	LargeOps     int `json:"large_operations"`
	MediumOps    int `json:"medium_operations"`
	SmallOps     int `json:"small_operations"`

	DefectSheets []CodeCount `json:"defect_sheets"`
	DefectTypes  []CodeCount `json:"defect_types"`

	TopSurgeon       *NameCount `json:"top_surgeon,omitempty"`
	TopLargeSurgeon  *NameCount `json:"top_large_surgeon,omitempty"`
	TopMediumSurgeon *NameCount `json:"top_medium_surgeon,omitempty"`
	TopSmallSurgeon  *NameCount `json:"top_small_surgeon,omitempty"`
}

// WardStats is the one-ward bundle over an optional window.
type WardStats struct {
	WardID   string `json:"ward_id"`
	Name     string `json:"name"`
	Doctors  int    `json:"doctors"`
	Patients int    `json:"patients"`

	Cases          int `json:"cases"`
	DeathCases     int `json:"death_cases"`
	NotArrived     int `json:"not_arrived"`
	DefectCases    int `json:"defect_cases"`
	SocialSecurity int `json:"social_security"`

	AverageArriveDays DayAverage `json:"average_arrive_days"`
	AverageStayDays   DayAverage `json:"average_stay_days"`

	DefectSheets []CodeCount `json:"defect_sheets"`
	DefectTypes  []CodeCount `json:"defect_types"`

	DoctorCases   []NameCount `json:"doctor_cases"`
	DoctorDefects []NameCount `json:"doctor_defects"`
}

// RoomStats is the one-operating-room bundle.
type RoomStats struct {
	RoomID   string `json:"room_id"`
	Name     string `json:"name"`
	Doctors  int    `json:"doctors"`
	Patients int    `json:"patients"`

	Cases     int `json:"cases"`
	LargeOps  int `json:"large_operations"`
	MediumOps int `json:"medium_operations"`
	SmallOps  int `json:"small_operations"`

	DoctorCases []NameCount `json:"doctor_cases"`
}

// DoctorStats is the one-doctor bundle across every case class.
type DoctorStats struct {
	DoctorID string `json:"doctor_id"`
	FullName string `json:"full_name"`
	Patients int    `json:"patients"`

	WardCases      int `json:"ward_cases"`
	DeathCases     int `json:"death_cases"`
	NotArrived     int `json:"not_arrived"`
	DefectCases    int `json:"defect_cases"`
	SocialSecurity int `json:"social_security"`
	RoomCases      int `json:"room_cases"`
	LargeOps       int `json:"large_operations"`
	MediumOps      int `json:"medium_operations"`
	SmallOps       int `json:"small_operations"`

	// DefectPercent is the doctor's share of every defective case in the
	// tenant, integer division, 0 when the tenant has none.
	DefectPercent int `json:"defect_percent"`

	AverageArriveDays DayAverage `json:"average_arrive_days"`
	AverageStayDays   DayAverage `json:"average_stay_days"`

	DefectSheets []CodeCount `json:"defect_sheets"`
	DefectTypes  []CodeCount `json:"defect_types"`
}

// PatientStats is the one-patient bundle: raw case counts plus the distinct
// doctors seen, first-seen order.
type PatientStats struct {
	PatientID string `json:"patient_id"`
	FullName  string `json:"full_name"`

	WardCases  int `json:"ward_cases"`
	RoomCases  int `json:"room_cases"`
	DeathCases int `json:"death_cases"`

	Doctors []string `json:"doctors"`
}

// Demographics is the death-case breakdown.
type Demographics struct {
	Cases  int           `json:"cases"`
	Ages   AgeBuckets    `json:"ages"`
	Gender GenderBuckets `json:"gender"`
}
