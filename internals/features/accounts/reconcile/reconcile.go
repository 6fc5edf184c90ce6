// Package reconcile menggabungkan tiga sumber data password menjadi satu
// model tampilan per user: cache password sementara (catatan lokal saat akun
// dibuat), snapshot status dari poller, dan nilai live dari server.
package reconcile

import (
	"time"

	"belajarku_backend/internals/features/accounts/passstatus"
)

// Label tampilan panel password.
const (
	LabelFromDatabase  = "Password dari Database"
	LabelChangedByUser = "Password Terbaru (Diganti User)"
)

// Identity: kunci pencocokan lintas sumber. Id menang atas email.
type Identity struct {
	ID    string
	Email string
}

// TempLookup mencari password sementara untuk satu identitas ("" kalau tak ada).
type TempLookup func(id, email string) string

// View adalah hasil rekonsiliasi untuk satu user.
type View struct {
	TempPassword string `json:"temp_password,omitempty"`
	HasTemp      bool   `json:"has_temp"`

	Changed bool `json:"changed"`

	LivePassword  string     `json:"live_password,omitempty"`
	LiveUpdatedAt *time.Time `json:"live_updated_at,omitempty"`
	LiveLoaded    bool       `json:"live_loaded"`

	// Label baris kedua panel; kosong kalau tidak ada yang perlu ditampilkan.
	Label string `json:"label,omitempty"`

	// NeedsLiveFetch: perubahan terindikasi tapi nilai live belum dimuat;
	// UI menampilkan placeholder dengan aksi "muat" manual.
	NeedsLiveFetch bool `json:"needs_live_fetch"`
}

// Resolve adalah fungsi murni dari state saat ini; dievaluasi ulang setiap
// render tanpa state tersembunyi.
func Resolve(
	who Identity,
	lookup TempLookup,
	status map[string]passstatus.Status,
	live map[string]passstatus.Live,
) View {
	v := View{}

	v.TempPassword = lookup(who.ID, who.Email)
	v.HasTemp = len(v.TempPassword) > 0

	st, hasStatus := status[who.ID]
	lv, hasLive := live[who.ID]

	// OR yang disengaja: flag dari server ATAU selisih live vs temp, supaya
	// status endpoint yang basi tidak menyembunyikan perubahan yang sudah
	// kelihatan dari nilai live.
	v.Changed = (hasStatus && st.Changed) || (hasLive && lv.Password != v.TempPassword)

	if hasLive {
		v.LiveLoaded = true
		v.LivePassword = lv.Password
		v.LiveUpdatedAt = lv.UpdatedAt
		if lv.Password != v.TempPassword {
			v.Label = LabelChangedByUser
		} else {
			v.Label = LabelFromDatabase
		}
	} else if v.Changed {
		// perubahan dicurigai tapi live belum ada → placeholder + aksi muat
		v.NeedsLiveFetch = true
	}

	return v
}
