package credcache

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// Record adalah fakta lokal: "user X diberi password sementara P saat akun
// dibuat". Backend tidak pernah mengembalikan password plaintext setelah
// create, jadi daftar ini satu-satunya sumber nilai aslinya.
type Record struct {
	ID                string `json:"id,omitempty"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	TemporaryPassword string `json:"temporaryPassword"`
}

// Store menyimpan daftar Record per storage key: satu file JSON per roster
// type (teacher vs student punya key berbeda). Daftar bersifat append-only
// dari sisi pemakai; urutan paling-baru-di-depan dipertahankan saat persist.
//
// Kegagalan storage (file tidak bisa ditulis/dibaca) tidak pernah diteruskan
// ke pemanggil: store turun ke mode in-memory untuk sesi ini dan hanya
// mencatat log.
type Store struct {
	mu   sync.Mutex
	dir  string
	key  string
	path string

	// mirror in-memory dari daftar persisted, dipakai kalau file gagal dibaca
	memory []Record
	// daftar sesi: record yang dibuat proses ini, tidak ikut dipersist terpisah
	session []Record
}

func NewStore(dir, key string) *Store {
	return &Store{
		dir:  dir,
		key:  key,
		path: filepath.Join(dir, key+".json"),
	}
}

// Key mengembalikan storage key milik store ini.
func (s *Store) Key() string { return s.key }

// Load membaca daftar persisted dari disk ke mirror in-memory. File yang
// tidak ada atau korup diperlakukan sebagai daftar kosong, bukan error.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory = s.readPersisted()
}

// readPersisted membaca + menormalkan isi file. Selalu mengembalikan slice
// (nil saat kosong/korup). Caller harus memegang s.mu.
func (s *Store) readPersisted() []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[CREDCACHE] gagal baca %s: %v", s.path, err)
		}
		return nil
	}

	// parse sebagai array objek mentah supaya alias field lama tetap terbaca
	var raws []map[string]any
	if err := sonic.Unmarshal(data, &raws); err != nil {
		log.Printf("[CREDCACHE] isi %s korup, dianggap kosong: %v", s.path, err)
		return nil
	}

	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, recordFromRaw(raw))
	}
	return out
}

func recordFromRaw(raw map[string]any) Record {
	rec := Record{TemporaryPassword: ExtractTemporary(raw)}
	if v, ok := raw["id"].(string); ok {
		rec.ID = v
	}
	if v, ok := raw["full_name"].(string); ok {
		rec.FullName = v
	} else if v, ok := raw["fullName"].(string); ok {
		rec.FullName = v
	}
	if v, ok := raw["email"].(string); ok {
		rec.Email = NormalizeEmail(v)
	}
	return rec
}

// Append menaruh record baru di DEPAN daftar (paling-baru-dulu), lalu
// mempersist seluruh daftar. Record yang sama juga masuk daftar sesi supaya
// tetap bisa ditemukan walau persist diam-diam gagal.
func (s *Store) Append(records []Record) {
	if len(records) == 0 {
		return
	}

	normalized := make([]Record, len(records))
	for i, r := range records {
		r.Email = NormalizeEmail(r.Email)
		normalized[i] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = append(append([]Record{}, normalized...), s.memory...)
	s.session = append(append([]Record{}, normalized...), s.session...)

	if err := s.persist(s.memory); err != nil {
		log.Printf("[CREDCACHE] gagal persist %s, lanjut in-memory saja: %v", s.path, err)
	}
}

func (s *Store) persist(list []Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := sonic.Marshal(list)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Clear mengosongkan daftar persisted + sesi dan menghapus filenya.
// Pemanggil (UI) wajib konfirmasi dulu; store tidak bertanya lagi.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = nil
	s.session = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("[CREDCACHE] gagal hapus %s: %v", s.path, err)
	}
}

// FindTemporary mencari password sementara untuk satu identitas.
// Daftar persisted di disk dibaca dulu (source of truth lintas sesi);
// kalau miss, jatuh ke daftar sesi + mirror in-memory (jaga-jaga kalau
// persist barusan gagal). Match by id menang atas match by email.
func (s *Store) FindTemporary(id, email string) string {
	email = NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if pw := matchIn(s.readPersisted(), id, email); pw != "" {
		return pw
	}
	if pw := matchIn(s.session, id, email); pw != "" {
		return pw
	}
	return matchIn(s.memory, id, email)
}

// matchIn: satu pass untuk id (prioritas), satu pass untuk email.
func matchIn(list []Record, id, email string) string {
	if id != "" {
		for _, r := range list {
			if r.ID == id && r.TemporaryPassword != "" {
				return r.TemporaryPassword
			}
		}
	}
	if email != "" {
		for _, r := range list {
			if r.Email == email && r.TemporaryPassword != "" {
				return r.TemporaryPassword
			}
		}
	}
	return ""
}

// Records mengembalikan salinan daftar (persisted dulu, fallback mirror).
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.readPersisted()
	if list == nil {
		list = s.memory
	}
	out := make([]Record, len(list))
	copy(out, list)
	return out
}
