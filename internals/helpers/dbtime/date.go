// file: internals/helpers/dbtime/date.go
package dbtime

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Semua tanggal kalender disimpan sebagai tengah malam UTC supaya
// perbandingan di DB (Postgres DATE maupun SQLite teks) konsisten.
const (
	LayoutDate    = "2006-01-02"
	LayoutMonth   = "2006-01"
	LayoutDisplay = "02/01/2006"
)

// DateOf membuang jam & zona (pakai tanggal di zona t).
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func Today() datatypes.Date { return DateOf(time.Now().UTC()) }

// ParseDate menerima "YYYY-MM-DD".
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(LayoutDate, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("tanggal harus berformat YYYY-MM-DD")
	}
	return DateOf(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).UTC().Format(LayoutDate)
}

// DisplayDate: format laporan "02/01/2006".
func DisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(LayoutDisplay)
}

// Month adalah satu bulan kalender pada tahun tertentu: [Start, End).
type Month struct {
	Start time.Time
	End   time.Time
}

func MonthOf(t time.Time) Month {
	y, m, _ := t.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return Month{Start: start, End: start.AddDate(0, 1, 0)}
}

func CurrentMonth() Month { return MonthOf(time.Now()) }

// ParseMonth menerima "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(LayoutMonth, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("bulan harus berformat YYYY-MM")
	}
	return MonthOf(t), nil
}

func (m Month) String() string { return m.Start.Format(LayoutMonth) }

// Bounds untuk query "col >= ? AND col < ?".
func (m Month) Bounds() (datatypes.Date, datatypes.Date) {
	return datatypes.Date(m.Start), datatypes.Date(m.End)
}
