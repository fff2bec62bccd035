package ingest

// StringSet is a plain membership set.
type StringSet map[string]struct{}

func (s StringSet) Add(v string) { s[v] = struct{}{} }

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Extraction accumulates entity identities across every sheet of a workbook
// before anything is persisted. Wards and Rooms map a name to the sheets it
// appeared on; Doctors and Patients map a name to the ward/room names seen
// alongside it, which later become associations.
type Extraction struct {
	Wards    map[string]StringSet
	Rooms    map[string]StringSet
	Doctors  map[string]StringSet
	Patients map[string]StringSet
}

func NewExtraction() *Extraction {
	return &Extraction{
		Wards:    map[string]StringSet{},
		Rooms:    map[string]StringSet{},
		Doctors:  map[string]StringSet{},
		Patients: map[string]StringSet{},
	}
}

func addTo(m map[string]StringSet, key, value string) {
	if key == "" {
		return
	}
	set, ok := m[key]
	if !ok {
		set = StringSet{}
		m[key] = set
	}
	if value != "" {
		set.Add(value)
	}
}

// Merge folds another extraction into this one.
func (e *Extraction) Merge(other *Extraction) {
	mergeSets(e.Wards, other.Wards)
	mergeSets(e.Rooms, other.Rooms)
	mergeSets(e.Doctors, other.Doctors)
	mergeSets(e.Patients, other.Patients)
}

func mergeSets(dst, src map[string]StringSet) {
	for key, set := range src {
		for v := range set {
			addTo(dst, key, v)
		}
		if len(set) == 0 {
			addTo(dst, key, "")
		}
	}
}

// ExtractSheet pulls entity identities out of one classified sheet. Rows are
// pre-filtered by the class marker; columns beyond the sheet's width read as
// empty, so a narrow sheet simply contributes nothing from the missing
// columns.
func ExtractSheet(s *Sheet, class SheetClass) *Extraction {
	e := NewExtraction()
	schema := SchemaFor(class)
	if schema == nil {
		return e
	}

	groups := e.Wards
	if class == ClassRoom {
		groups = e.Rooms
	}

	rows := RecordRows(s, schema)
	for _, row := range rows {
		group := Cell(row, schema.GroupCol)
		addTo(groups, group, s.Name)

		for _, col := range schema.DoctorCols {
			addTo(e.Doctors, Cell(row, col), group)
		}
		if schema.PatientCol >= 0 {
			addTo(e.Patients, Cell(row, schema.PatientCol), group)
		}
	}

	if schema.PatientIDHeader != "" {
		extractHeaderPatients(s, schema, rows, e)
	}
	return e
}

// extractHeaderPatients handles room sheets, where the patient identity is
// "<id> <name>" built from two header-addressed columns.
func extractHeaderPatients(s *Sheet, schema *ClassSchema, rows [][]string, e *Extraction) {
	idCol, nameCol := -1, -1
	for i, h := range s.Header {
		switch h {
		case schema.PatientIDHeader:
			idCol = i
		case schema.PatientNameHeader:
			nameCol = i
		}
	}
	if idCol < 0 || nameCol < 0 {
		return
	}
	for _, row := range rows {
		id := Cell(row, idCol)
		name := Cell(row, nameCol)
		group := Cell(row, schema.GroupCol)
		if id == "" || name == "" || group == "" {
			continue
		}
		addTo(e.Patients, id+" "+name, group)
	}
}
