package domain

// Code tables translating the numeric codes found in workbook cells to their
// display labels. Unknown codes translate to "" (absent), never an error.

// CodeLabel is one entry of an ordered code table. Order matters: statistic
// distributions report codes in table order.
type CodeLabel struct {
	Code  string
	Label string
}

// DefectSheetCodes: which paperwork sheet is missing/flawed (برگ نقص).
var DefectSheetCodes = []CodeLabel{
	{"1", "برگ پذیرش خلاصه ترخیص"},
	{"2", "برگ خلاصه پرونده"},
	{"3", "برگ شرح حال"},
	{"4", "برگ سیربیماری"},
	{"5", "برگ مشاوره"},
	{"6", "برگ مراقبت قبل از عمل"},
	{"7", "برگ بیهوشی"},
	{"8", "برگ شرح عمل"},
	{"9", "برگ مراقبت بعد از عمل"},
	{"10", "دستورات پزشک"},
	{"11", "گزارش پرستار"},
	{"12", "نمودار علائم حیاتی"},
	{"13", "رضایت آگاهانه"},
	{"14", "صورتحساب"},
	{"15", "چک لیست"},
}

// DefectTypeCodes: what kind of deficiency (نوع نقص).
var DefectTypeCodes = []CodeLabel{
	{"1", "عدم درج مهر پزشک"},
	{"2", "مهر مشاوره"},
	{"3", "مهر tellorder"},
	{"4", "فقدان برگ"},
	{"5", "عدم تکمیل گزارش"},
	{"6", "خط خوردگی"},
	{"7", "عدم تکمیل سربرگ"},
	{"8", "عدم تشخیص نویسی"},
	{"9", "عدم اخذ رضایت"},
	{"10", "عدم اثر انگشت و امضا"},
	{"11", "عدم ثبت دقیق آدرس و تلفن بیمار"},
}

// Operation size classes.
const (
	OperationSmall  = "1"
	OperationMedium = "2"
	OperationLarge  = "3"
)

var OperationSizeCodes = []CodeLabel{
	{OperationSmall, "عمل کوچک"},
	{OperationMedium, "عمل متوسط"},
	{OperationLarge, "عمل بزرگ"},
}

var AnesthesiaCodes = []CodeLabel{
	{"1", "موضعی"},
	{"2", "غیر موضعی"},
}

const (
	GenderMale   = "1"
	GenderFemale = "2"
)

var GenderCodes = []CodeLabel{
	{GenderMale, "مرد"},
	{GenderFemale, "زن"},
}

func labelFor(table []CodeLabel, code string) (string, bool) {
	for _, cl := range table {
		if cl.Code == code {
			return cl.Label, true
		}
	}
	return "", false
}

// DefectSheetLabel returns the label for a defect-sheet code, or "" for an
// unrecognized code.
func DefectSheetLabel(code string) (string, bool) { return labelFor(DefectSheetCodes, code) }

// DefectTypeLabel returns the label for a defect-type code, or "".
func DefectTypeLabel(code string) (string, bool) { return labelFor(DefectTypeCodes, code) }

// OperationSizeLabel returns the label for an operation size code, or "".
func OperationSizeLabel(code string) (string, bool) { return labelFor(OperationSizeCodes, code) }

// AnesthesiaLabel returns the label for an anesthesia code, or "".
func AnesthesiaLabel(code string) (string, bool) { return labelFor(AnesthesiaCodes, code) }

// GenderLabel returns the label for a gender code, or "".
func GenderLabel(code string) (string, bool) { return labelFor(GenderCodes, code) }
