package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"belajarku_backend/internals/features/accounts/credcache"
	"belajarku_backend/internals/features/roster/service"
)

func buildSheet(t *testing.T, header []string, rows [][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestParseXLSXHeaderAliasesCaseInsensitive(t *testing.T) {
	r := buildSheet(t,
		[]string{"NAMA", "Email/Akun", "Kata Sandi", "No HP", "KELAS"},
		[][]string{{"Budi Santoso", "budi@sekolah.id", "rahasia1", "0812", "7A"}},
	)

	rows, err := ParseXLSX(r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Number, "baris data pertama = baris spreadsheet 2")
	assert.Equal(t, "Budi Santoso", rows[0].FullName)
	assert.Equal(t, "budi@sekolah.id", rows[0].Email)
	assert.Equal(t, "rahasia1", rows[0].Password)
	assert.Equal(t, "0812", rows[0].Phone)
	assert.Equal(t, "7A", rows[0].Class)
}

func TestParseXLSXRejectsNonSpreadsheet(t *testing.T) {
	_, err := ParseXLSX(bytes.NewReader([]byte("bukan xlsx")))
	assert.Error(t, err)
}

type recordingCreator struct {
	calls  []service.CreateInput
	failOn map[string]error
	nextID int
}

func (rc *recordingCreator) Create(ctx context.Context, in service.CreateInput) (string, string, string, error) {
	rc.calls = append(rc.calls, in)
	if err, ok := rc.failOn[in.Email]; ok {
		return "", "", "", err
	}
	rc.nextID++
	return fmt.Sprintf("id-%d", rc.nextID), in.FullName, in.Email, nil
}

func TestRunRowMissingNameReportedAsSpreadsheetRow(t *testing.T) {
	// skenario: 3 baris, baris data ke-2 (baris spreadsheet 3) tanpa Nama
	rows := []Row{
		{Number: 2, FullName: "Budi", Email: "budi@sekolah.id", Password: "pw1"},
		{Number: 3, FullName: "", Email: "kosong@sekolah.id", Password: "pw2"},
		{Number: 4, FullName: "Sari", Email: "sari@sekolah.id", Password: "pw3"},
	}

	creator := &recordingCreator{}
	cache := credcache.NewStore(t.TempDir(), "student_created_accounts")
	runner := &Runner{Role: "student", Creator: creator, Cache: cache}

	report := runner.Run(context.Background(), rows)

	assert.Equal(t, 2, report.Success)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Baris 3: Nama wajib diisi", report.Errors[0])

	// baris invalid tidak boleh sampai ke API
	assert.Len(t, creator.calls, 2)

	// cache bertambah tepat sebanyak success
	assert.Len(t, cache.Records(), 2)
	assert.Equal(t, "pw1", cache.FindTemporary("", "budi@sekolah.id"))
	assert.Equal(t, "pw3", cache.FindTemporary("", "sari@sekolah.id"))
}

func TestRunClassifiesEmailExists(t *testing.T) {
	rows := []Row{
		{Number: 2, FullName: "Budi", Email: "dupe@sekolah.id", Password: "pw1"},
		{Number: 3, FullName: "Sari", Email: "sari@sekolah.id", Password: "pw2"},
		{Number: 4, FullName: "Tono", Email: "error@sekolah.id", Password: "pw3"},
	}
	creator := &recordingCreator{failOn: map[string]error{
		"dupe@sekolah.id":  service.ErrEmailExists,
		"error@sekolah.id": errors.New("server lagi sibuk"),
	}}
	runner := &Runner{Role: "teacher", Creator: creator, Cache: credcache.NewStore(t.TempDir(), "teacher_created_accounts")}

	report := runner.Run(context.Background(), rows)

	assert.Equal(t, 1, report.Success)
	assert.Equal(t, 2, report.Failed)
	assert.Contains(t, report.Errors, "Baris 2: Email sudah terdaftar")
	assert.Contains(t, report.Errors, "Baris 4: server lagi sibuk")
}

func TestRunProgressIsMonotonicAndEndsAt100(t *testing.T) {
	rows := []Row{
		{Number: 2, FullName: "A", Email: "a@s.id", Password: "p"},
		{Number: 3, FullName: "B", Email: "b@s.id", Password: "p"},
		{Number: 4}, // invalid, tetap dihitung di progress
	}
	var seen []int
	runner := &Runner{
		Role:       "student",
		Creator:    &recordingCreator{},
		Cache:      credcache.NewStore(t.TempDir(), "student_created_accounts"),
		OnProgress: func(p int) { seen = append(seen, p) },
	}

	runner.Run(context.Background(), rows)

	require.Equal(t, []int{33, 67, 100}, seen)
}

func TestRunEmptyBatch(t *testing.T) {
	runner := &Runner{Role: "student", Creator: &recordingCreator{}}
	report := runner.Run(context.Background(), nil)
	assert.Equal(t, 0, report.Success)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, report.Errors)
}
