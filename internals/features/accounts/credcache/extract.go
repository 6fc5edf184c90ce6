package credcache

import "strings"

// tempPasswordAliases: urutan prioritas nama field password sementara.
// Record lama ditulis oleh beberapa jalur kode dengan nama field berbeda;
// pembacaan harus toleran supaya data lama tidak hilang.
var tempPasswordAliases = []string{
	"temporaryPassword",
	"temporary_password",
	"tempPassword",
	"temp_password",
	"password",
	"pw",
}

// ExtractTemporary mengambil password sementara dari record mentah dengan
// mencoba setiap alias sesuai urutan prioritas. Return "" kalau tidak ada.
func ExtractTemporary(raw map[string]any) string {
	for _, key := range tempPasswordAliases {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// NormalizeEmail menormalkan email untuk pencocokan (trim + lowercase).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
