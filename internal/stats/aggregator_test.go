package stats

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darman-data/internal/domain"
	"darman-data/internal/repository"
)

const testTenant = "11111111-1111-1111-1111-111111111111"

func ref(id string) sql.NullString {
	return sql.NullString{String: id, Valid: true}
}

type fixture struct {
	repos   *repository.Repos
	ward    *domain.Ward
	room    *domain.OperatingRoom
	doctorA *domain.Doctor
	doctorB *domain.Doctor
	patient *domain.Patient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := repository.NewMemoryRepos()

	ward, err := repos.Wards.GetOrCreate(ctx, testTenant, "داخلی")
	require.NoError(t, err)
	room, err := repos.Rooms.GetOrCreate(ctx, testTenant, "اتاق عمل یک")
	require.NoError(t, err)
	doctorA, err := repos.Doctors.GetOrCreate(ctx, testTenant, "دکتر احمدی")
	require.NoError(t, err)
	doctorB, err := repos.Doctors.GetOrCreate(ctx, testTenant, "دکتر موسوی")
	require.NoError(t, err)
	patient, err := repos.Patients.GetOrCreate(ctx, testTenant, "P-123 علی رضایی")
	require.NoError(t, err)

	require.NoError(t, repos.Doctors.AddWard(ctx, doctorA.DoctorID, ward.WardID))
	require.NoError(t, repos.Doctors.AddRoom(ctx, doctorB.DoctorID, room.RoomID))
	require.NoError(t, repos.Patients.AddWard(ctx, patient.PatientID, ward.WardID))
	require.NoError(t, repos.Patients.AddRoom(ctx, patient.PatientID, room.RoomID))

	return &fixture{repos: repos, ward: ward, room: room, doctorA: doctorA, doctorB: doctorB, patient: patient}
}

func (f *fixture) addWardCase(t *testing.T, admission, discharge, delivery, insurance string, defects domain.DefectList) {
	t.Helper()
	_, err := f.repos.WardCases.Create(context.Background(), &domain.WardCase{
		TenantID:      testTenant,
		Number:        "100",
		Insurance:     insurance,
		AdmissionDate: admission,
		DischargeDate: discharge,
		DeliveryDate:  delivery,
		WardID:        ref(f.ward.WardID),
		DoctorID:      ref(f.doctorA.DoctorID),
		PatientID:     ref(f.patient.PatientID),
		Defects:       defects,
	})
	require.NoError(t, err)
}

func (f *fixture) addOperationCase(t *testing.T, opDate, size string) {
	t.Helper()
	_, err := f.repos.OperationCases.Create(context.Background(), &domain.OperationCase{
		TenantID:      testTenant,
		Number:        "200",
		OperationDate: opDate,
		RoomID:        ref(f.room.RoomID),
		DoctorID:      ref(f.doctorB.DoctorID),
		PatientID:     ref(f.patient.PatientID),
		OperationSize: size,
		K:             10,
	})
	require.NoError(t, err)
}

func (f *fixture) addDeathCase(t *testing.T, admission, age, gender string) {
	t.Helper()
	_, err := f.repos.DeathCases.Create(context.Background(), &domain.DeathCase{
		TenantID:      testTenant,
		Number:        "U-300",
		DoctorID:      ref(f.doctorA.DoctorID),
		WardID:        ref(f.ward.WardID),
		AdmissionDate: admission,
		DeathDate:     admission,
		Age:           age,
		GenderCode:    gender,
		PatientID:     ref(f.patient.PatientID),
	})
	require.NoError(t, err)
}

func TestAggregatorOverview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addWardCase(t, "1402/01/01", "1402/01/05", "1402/01/07", "آزاد", domain.DefectList{{SheetCode: "2"}})
	f.addWardCase(t, "1402/02/01", "1402/02/03", "", "تامین اجتماعی", nil)
	f.addOperationCase(t, "1402/01/02", domain.OperationLarge)
	f.addOperationCase(t, "1402/01/03", domain.OperationLarge)
	f.addOperationCase(t, "1402/01/04", domain.OperationSmall)

	o, err := NewAggregator(f.repos).Overview(ctx, testTenant)
	require.NoError(t, err)

	assert.Equal(t, 1, o.Wards)
	assert.Equal(t, 1, o.Rooms)
	assert.Equal(t, 2, o.Doctors)
	assert.Equal(t, 1, o.Patients)
	assert.Equal(t, 2, o.WardCases)
	assert.Equal(t, 3, o.RoomCases)
	assert.Equal(t, 5, o.Cases)
	assert.Equal(t, 1, o.DefectCases)
	assert.Equal(t, 2, o.LargeOps)
	assert.Equal(t, 1, o.SmallOps)

	require.NotNil(t, o.TopSurgeon)
	assert.Equal(t, "دکتر موسوی", o.TopSurgeon.Name)
	assert.Equal(t, 3, o.TopSurgeon.Count)
	require.NotNil(t, o.TopLargeSurgeon)
	assert.Equal(t, 2, o.TopLargeSurgeon.Count)
	assert.Nil(t, o.TopMediumSurgeon)
}

func TestAggregatorWardWindowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addWardCase(t, "1402/01/10", "1402/01/15", "1402/01/20", "تامین اجتماعی", domain.DefectList{{SheetCode: "2", TypeCodes: []string{"4"}}})
	f.addWardCase(t, "1402/05/10", "1402/05/12", "", "آزاد", nil)
	f.addWardCase(t, "bad-date", "", "", "آزاد", nil)
	f.addDeathCase(t, "1402/01/12", "۷۵ سال", domain.GenderMale)
	f.addDeathCase(t, "1402/07/01", "30", domain.GenderFemale)

	w, err := NewWindow("1402/01/01", "1402/02/01")
	require.NoError(t, err)

	s, err := NewAggregator(f.repos).Ward(ctx, testTenant, f.ward.WardID, w)
	require.NoError(t, err)

	assert.Equal(t, "داخلی", s.Name)
	assert.Equal(t, 1, s.Doctors)
	assert.Equal(t, 1, s.Patients)
	assert.Equal(t, 1, s.Cases) // the bad date and the out-of-window case drop out
	assert.Equal(t, 1, s.DeathCases)
	assert.Zero(t, s.NotArrived)
	assert.Equal(t, 1, s.DefectCases)
	assert.Equal(t, 1, s.SocialSecurity)

	require.True(t, s.AverageStayDays.Valid)
	assert.Equal(t, 5, s.AverageStayDays.Days)
	require.True(t, s.AverageArriveDays.Valid)
	assert.Equal(t, 5, s.AverageArriveDays.Days)

	require.Len(t, s.DoctorCases, 1)
	assert.Equal(t, "دکتر احمدی", s.DoctorCases[0].Name)
	assert.Equal(t, 1, s.DoctorCases[0].Count)
	assert.Equal(t, 1, s.DoctorDefects[0].Count)
}

func TestAggregatorWardUnwindowedKeepsBadDates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addWardCase(t, "bad-date", "", "", "آزاد", nil)
	f.addWardCase(t, "1402/01/01", "", "", "آزاد", nil)

	s, err := NewAggregator(f.repos).Ward(ctx, testTenant, f.ward.WardID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Cases)
	assert.Equal(t, 2, s.NotArrived)
	assert.False(t, s.AverageStayDays.Valid)
}

func TestAggregatorRoom(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addOperationCase(t, "1402/01/02", domain.OperationLarge)
	f.addOperationCase(t, "1402/04/02", domain.OperationMedium)

	w, err := NewWindow("1402/01/01", "1402/02/01")
	require.NoError(t, err)

	s, err := NewAggregator(f.repos).Room(ctx, testTenant, f.room.RoomID, w)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cases)
	assert.Equal(t, 1, s.LargeOps)
	assert.Zero(t, s.MediumOps)
	require.Len(t, s.DoctorCases, 1)
	assert.Equal(t, "دکتر موسوی", s.DoctorCases[0].Name)
}

func TestAggregatorDoctor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addWardCase(t, "1402/01/10", "1402/01/15", "1402/01/20", "تامین اجتماعی", domain.DefectList{{SheetCode: "2"}})
	f.addWardCase(t, "1402/01/11", "1402/01/12", "", "آزاد", nil)
	f.addDeathCase(t, "1402/01/12", "80", domain.GenderMale)

	// a defective case by another doctor widens the tenant denominator
	_, err := f.repos.WardCases.Create(ctx, &domain.WardCase{
		TenantID:      testTenant,
		Number:        "102",
		AdmissionDate: "1402/01/13",
		WardID:        ref(f.ward.WardID),
		DoctorID:      ref(f.doctorB.DoctorID),
		Defects:       domain.DefectList{{SheetCode: "7"}},
	})
	require.NoError(t, err)

	s, err := NewAggregator(f.repos).Doctor(ctx, testTenant, f.doctorA.DoctorID, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, s.WardCases)
	assert.Equal(t, 1, s.DeathCases)
	assert.Equal(t, 1, s.NotArrived)
	assert.Equal(t, 1, s.SocialSecurity)
	assert.Equal(t, 1, s.DefectCases)
	assert.Equal(t, 50, s.DefectPercent) // 1 of 2 defective cases tenant-wide
	assert.Equal(t, 1, s.Patients)
}

func TestAggregatorPatient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addWardCase(t, "1402/01/10", "", "", "آزاد", nil)
	f.addOperationCase(t, "1402/01/12", domain.OperationSmall)
	f.addDeathCase(t, "1402/01/14", "70", domain.GenderMale)

	s, err := NewAggregator(f.repos).Patient(ctx, testTenant, f.patient.PatientID)
	require.NoError(t, err)

	assert.Equal(t, 1, s.WardCases)
	assert.Equal(t, 1, s.RoomCases)
	assert.Equal(t, 1, s.DeathCases)
	// ward doctor first, then the surgeon; the death doctor repeats and
	// is not listed twice
	assert.Equal(t, []string{"دکتر احمدی", "دکتر موسوی"}, s.Doctors)
}

func TestAggregatorDeathStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addDeathCase(t, "1402/01/14", "۷۵ سال", domain.GenderMale)
	f.addDeathCase(t, "1402/08/14", "N/A", domain.GenderFemale)

	w, err := NewWindow("1402/01/01", "1402/02/01")
	require.NoError(t, err)

	d, err := NewAggregator(f.repos).DeathStats(ctx, testTenant, w)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Cases)
	assert.Equal(t, 1, d.Ages.Age60to79)
	assert.Equal(t, 1, d.Gender.Male)

	all, err := NewAggregator(f.repos).DeathStats(ctx, testTenant, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Cases)
	assert.Equal(t, 1, all.Ages.Under20)
}

func TestAggregatorUnknownScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	agg := NewAggregator(f.repos)

	_, err := agg.Ward(ctx, testTenant, "33333333-3333-3333-3333-333333333333", nil)
	assert.Error(t, err)
	_, err = agg.Doctor(ctx, testTenant, "33333333-3333-3333-3333-333333333333", nil)
	assert.Error(t, err)
}
