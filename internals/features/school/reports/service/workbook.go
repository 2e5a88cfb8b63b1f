package service

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export: workbook siap kirim sebagai attachment.
type Export struct {
	Filename string
	Body     []byte
}

type column struct {
	Header string
	Width  float64
}

// sheetWriter menulis satu sheet dengan header tetap di baris 1.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func newSheet(name string, cols []column) (*sheetWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "rename sheet")
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#366092"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "header style")
	}

	for i, c := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, c.Header); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "write header")
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, colName, colName, c.Width); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "column width")
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(name, first, last, style); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "apply header style")
	}
	return &sheetWriter{f: f, sheet: name, row: 1}, nil
}

func (w *sheetWriter) append(values ...any) error {
	w.row++
	cell, _ := excelize.CoordinatesToCellName(1, w.row)
	return errors.Wrap(w.f.SetSheetRow(w.sheet, cell, &values), "write row")
}

// finish menutup file dan mengembalikan isi xlsx.
func (w *sheetWriter) finish(filename string) (*Export, error) {
	defer w.f.Close()
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "encode workbook")
	}
	return &Export{Filename: filename, Body: buf.Bytes()}, nil
}

func (w *sheetWriter) close() { w.f.Close() }
