package httpapi

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WardTemplateHeader 病区工作表表头（列位置固定，不按表头解析）
var WardTemplateHeader = []string{
	"بیمه",
	"تاریخ ترخیص",
	"بخش",
	"پزشک",
	"تاریخ پذیرش",
	"",
	"شماره پرونده",
	"پزشک معالج",
	"بیمار",
	"تاریخ تحویل پرونده",
	"برگه نقص ۱",
	"نوع نقص ۱",
	"برگه نقص ۲",
	"نوع نقص ۲",
}

// RoomTemplateHeader 手术室工作表表头
var RoomTemplateHeader = []string{
	"بیمارستان",
	"تاریخ ترخیص",
	"تاریخ عمل",
	"نام بیمار",
	"شناسه بیمار",
	"شماره پرونده",
	"اتاق عمل",
	"نوع عمل",
	"کا",
	"جراح",
	"بیهوشی",
}

// DeathTemplateHeader 死亡证明工作表表头
var DeathTemplateHeader = []string{
	"شماره پرونده",
	"پزشک",
	"علت فوت",
	"محل فوت",
	"بخش",
	"تاریخ فوت",
	"تاریخ پذیرش",
	"",
	"",
	"سن",
	"جنسیت",
	"بیمار",
	"",
	"تاریخ تحویل پرونده",
}

// GenerateImportTemplate 生成导入模板 Excel 文件：三类工作表各一张，只含表头。
// 工作表名必须命中分类规则（section / room / dc）。
func GenerateImportTemplate() ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheets := []struct {
		name    string
		headers []string
	}{
		{"section-1", WardTemplateHeader},
		{"room-1", RoomTemplateHeader},
		{"dc-1", DeathTemplateHeader},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}
		for col, header := range sheet.headers {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet.name, cell, header); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
			}
			if err := f.SetCellStyle(sheet.name, cell, cell, headerStyle); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set header style: %w", err)
			}
		}
		name, err := excelize.ColumnNumberToName(len(sheet.headers))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet.name, "A", name, 18); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}
	return buf.Bytes(), nil
}
