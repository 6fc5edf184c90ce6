// Package importer mengubah file spreadsheet menjadi N pemanggilan create
// akun dengan isolasi error per baris: satu baris gagal tidak membatalkan
// batch, dan laporan akhir mencerminkan nasib setiap baris.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"belajarku_backend/internals/features/accounts/credcache"
	"belajarku_backend/internals/features/roster/service"
)

// Alias nama kolom per field logis, dicek case-insensitive. Header spreadsheet
// buatan admin tidak seragam; variasi kapitalisasi/penamaan harus diterima.
var headerAliases = map[string][]string{
	"name":     {"nama", "name", "full_name", "fullname", "nama lengkap"},
	"email":    {"email", "akun", "account", "email/akun"},
	"password": {"password", "pass", "kata sandi", "pw"},
	"phone":    {"phone", "telepon", "no hp", "hp", "no_hp"},
	"class":    {"class", "kelas"},
}

// Row: satu baris data spreadsheet. Number = nomor baris di file (header =
// baris 1, jadi baris data pertama bernomor 2) untuk pesan error.
type Row struct {
	Number   int
	FullName string
	Email    string
	Password string
	Phone    string
	Class    string
}

// ParseXLSX membaca sheet pertama file .xlsx/.xls menjadi baris-baris Row.
func ParseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("file tidak bisa dibaca sebagai spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet tidak punya sheet")
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, errors.New("spreadsheet kosong")
	}

	cols := mapColumns(cells[0])

	rows := make([]Row, 0, len(cells)-1)
	for i, rec := range cells[1:] {
		row := Row{Number: i + 2} // header = baris 1
		row.FullName = cellAt(rec, cols["name"])
		row.Email = cellAt(rec, cols["email"])
		row.Password = cellAt(rec, cols["password"])
		row.Phone = cellAt(rec, cols["phone"])
		row.Class = cellAt(rec, cols["class"])
		rows = append(rows, row)
	}
	return rows, nil
}

// mapColumns mencocokkan header ke field logis lewat alias (case-insensitive).
// Field yang headernya tidak ditemukan dipetakan ke -1.
func mapColumns(header []string) map[string]int {
	cols := map[string]int{}
	for field := range headerAliases {
		cols[field] = -1
	}
	for idx, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for field, aliases := range headerAliases {
			if cols[field] != -1 {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[field] = idx
					break
				}
			}
		}
	}
	return cols
}

func cellAt(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// Report: rekap hasil batch.
type Report struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// Creator: satu pemanggilan create akun. Dipisah sebagai interface supaya
// pipeline bisa ditest tanpa server.
type Creator interface {
	Create(ctx context.Context, in service.CreateInput) (id, fullName, email string, err error)
}

// CreatorFunc adapter.
type CreatorFunc func(ctx context.Context, in service.CreateInput) (string, string, string, error)

func (f CreatorFunc) Create(ctx context.Context, in service.CreateInput) (string, string, string, error) {
	return f(ctx, in)
}

// Runner menjalankan pipeline untuk satu roster type.
type Runner struct {
	Role    string
	Creator Creator
	Cache   *credcache.Store
	// OnProgress dipanggil setelah tiap baris dengan persen bulat; murni
	// untuk tampilan, bukan checkpoint resume.
	OnProgress func(percent int)
}

// Run memproses baris SECARA BERURUTAN: progress jadi monotonic dan API
// create tidak dibanjiri. Validasi gagal → error baris, tanpa panggilan API.
// Sukses diakumulasi lalu dimasukkan ke credential cache sekali di akhir.
func (r *Runner) Run(ctx context.Context, rows []Row) Report {
	report := Report{Errors: []string{}}
	var pending []credcache.Record

	total := len(rows)
	for i, row := range rows {
		if msg, ok := validateRow(row); !ok {
			report.Failed++
			report.Errors = append(report.Errors, msg)
			r.progress(i+1, total)
			continue
		}

		id, fullName, email, err := r.Creator.Create(ctx, service.CreateInput{
			Role:     r.Role,
			FullName: row.FullName,
			Email:    row.Email,
			Password: row.Password,
			Profile:  rowProfile(row),
		})
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, classifyCreateError(row.Number, err))
			r.progress(i+1, total)
			continue
		}

		report.Success++
		pending = append(pending, credcache.Record{
			ID:                id,
			FullName:          fullName,
			Email:             email,
			TemporaryPassword: row.Password,
		})
		r.progress(i+1, total)
	}

	if len(pending) > 0 && r.Cache != nil {
		r.Cache.Append(pending)
	}
	return report
}

func (r *Runner) progress(done, total int) {
	if r.OnProgress == nil || total == 0 {
		return
	}
	r.OnProgress(int(math.Round(float64(done) / float64(total) * 100)))
}

func validateRow(row Row) (string, bool) {
	switch {
	case strings.TrimSpace(row.FullName) == "":
		return fmt.Sprintf("Baris %d: Nama wajib diisi", row.Number), false
	case strings.TrimSpace(row.Email) == "":
		return fmt.Sprintf("Baris %d: Email wajib diisi", row.Number), false
	case strings.TrimSpace(row.Password) == "":
		return fmt.Sprintf("Baris %d: Password wajib diisi", row.Number), false
	}
	return "", true
}

func classifyCreateError(rowNumber int, err error) string {
	if errors.Is(err, service.ErrEmailExists) {
		return fmt.Sprintf("Baris %d: Email sudah terdaftar", rowNumber)
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "Gagal membuat akun"
	}
	return fmt.Sprintf("Baris %d: %s", rowNumber, msg)
}

func rowProfile(row Row) map[string]string {
	p := map[string]string{}
	if row.Phone != "" {
		p["phone"] = row.Phone
	}
	if row.Class != "" {
		p["class"] = row.Class
	}
	return p
}
