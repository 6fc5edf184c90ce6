package passstatus

import (
	"context"
	"time"
)

// Status: hasil cek "apakah user sudah mengganti password sejak admin
// menyetelnya". Ephemeral, ditimpa utuh tiap poll.
type Status struct {
	Changed    bool       `json:"passwordChanged"`
	LastChange *time.Time `json:"lastPasswordChange,omitempty"`
}

// Live: nilai password yang berlaku sekarang menurut server saat fetch.
type Live struct {
	Password  string     `json:"password,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Source adalah penyedia data status/live password. Implementasi: HTTPSource
// (konsumsi Password Status API + Live Password API eksternal) dan adapter
// langsung ke store roster saat service jalan sebagai monolit.
type Source interface {
	// CheckStatus mengembalikan status untuk ids yang DIKENAL server saja;
	// id yang tidak ada di response tidak boleh di-default-kan.
	CheckStatus(ctx context.Context, userIDs []string) (map[string]Status, error)
	// FetchLive mengambil nilai password satu user. Password kosong berarti
	// "tidak tersedia".
	FetchLive(ctx context.Context, userID string) (Live, error)
}
