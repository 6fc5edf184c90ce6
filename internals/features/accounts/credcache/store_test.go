package credcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTemporaryAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"canonical", map[string]any{"temporaryPassword": "x"}, "x"},
		{"snake_case", map[string]any{"temporary_password": "x"}, "x"},
		{"plain password", map[string]any{"password": "x"}, "x"},
		{"pw", map[string]any{"pw": "x"}, "x"},
		{"canonical wins over alias", map[string]any{"pw": "old", "temporaryPassword": "new"}, "new"},
		{"empty string skipped", map[string]any{"temporaryPassword": "  ", "password": "x"}, "x"},
		{"none present", map[string]any{"email": "a@b.com"}, ""},
		{"non-string ignored", map[string]any{"password": 123}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTemporary(tt.raw))
		})
	}
}

func TestAppendThenLoadKeepsPrependOrder(t *testing.T) {
	dir := t.TempDir()

	s := NewStore(dir, "teacher_created_accounts")
	s.Load()
	s.Append([]Record{
		{ID: "1", FullName: "Budi", Email: "budi@sekolah.id", TemporaryPassword: "rahasia1"},
	})
	s.Append([]Record{
		{ID: "2", FullName: "Sari", Email: "sari@sekolah.id", TemporaryPassword: "rahasia2"},
		{ID: "3", FullName: "Tono", Email: "tono@sekolah.id", TemporaryPassword: "rahasia3"},
	})

	// reload dari disk seperti page mount baru
	fresh := NewStore(dir, "teacher_created_accounts")
	fresh.Load()
	got := fresh.Records()
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Equal(t, "1", got[2].ID)
}

func TestFindTemporaryIDBeatsEmail(t *testing.T) {
	s := NewStore(t.TempDir(), "teacher_created_accounts")
	s.Append([]Record{
		{ID: "b", Email: "same@sekolah.id", TemporaryPassword: "milik-b"},
		{ID: "a", Email: "same@sekolah.id", TemporaryPassword: "milik-a"},
	})

	// email sama dua-duanya; id harus menang
	assert.Equal(t, "milik-a", s.FindTemporary("a", "same@sekolah.id"))
	assert.Equal(t, "milik-b", s.FindTemporary("b", "same@sekolah.id"))
	// tanpa id: record terdepan (paling baru) yang menang
	assert.Equal(t, "milik-b", s.FindTemporary("", "same@sekolah.id"))
}

func TestFindTemporaryNormalizesEmail(t *testing.T) {
	s := NewStore(t.TempDir(), "student_created_accounts")
	s.Append([]Record{{Email: "  Aisyah@Sekolah.ID ", TemporaryPassword: "pw1"}})

	assert.Equal(t, "pw1", s.FindTemporary("", "aisyah@sekolah.id"))
	assert.Equal(t, "pw1", s.FindTemporary("", " AISYAH@sekolah.id "))
}

func TestFindTemporaryReadsLegacyAliasRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teacher_created_accounts.json")
	legacy := `[{"id":"x","full_name":"Lama","email":"lama@sekolah.id","pw":"dari-alias"}]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	s := NewStore(dir, "teacher_created_accounts")
	s.Load()
	assert.Equal(t, "dari-alias", s.FindTemporary("x", ""))
	assert.Equal(t, "dari-alias", s.FindTemporary("", "lama@sekolah.id"))
}

func TestLoadMalformedFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "student_created_accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bukan":"array"`), 0o644))

	s := NewStore(dir, "student_created_accounts")
	s.Load()
	assert.Empty(t, s.Records())
	assert.Equal(t, "", s.FindTemporary("x", "x@sekolah.id"))

	// append setelah file korup harus tetap jalan dan menimpa file rusak
	s.Append([]Record{{ID: "y", Email: "y@sekolah.id", TemporaryPassword: "baru"}})
	assert.Equal(t, "baru", s.FindTemporary("y", ""))
}

func TestSessionFallbackWhenPersistFails(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "teacher_created_accounts")
	s.Append([]Record{{ID: "z", Email: "z@sekolah.id", TemporaryPassword: "tetap-ada"}})

	// simulasi storage hilang (mis. dihapus pihak lain): daftar sesi tetap dipercaya
	require.NoError(t, os.Remove(filepath.Join(dir, "teacher_created_accounts.json")))
	assert.Equal(t, "tetap-ada", s.FindTemporary("z", ""))
}

func TestClearEmptiesEverything(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "teacher_created_accounts")
	s.Append([]Record{
		{ID: "1", Email: "a@b.com", TemporaryPassword: "secret1"},
		{ID: "2", Email: "c@d.com", TemporaryPassword: "secret2"},
	})

	s.Clear()

	assert.Equal(t, "", s.FindTemporary("1", "a@b.com"))
	assert.Equal(t, "", s.FindTemporary("2", "c@d.com"))
	assert.Empty(t, s.Records())

	_, err := os.Stat(filepath.Join(dir, "teacher_created_accounts.json"))
	assert.True(t, os.IsNotExist(err))
}
