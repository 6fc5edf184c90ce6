package passstatus

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInterval: jarak antar poll status password.
const DefaultInterval = 15 * time.Second

// RosterIDs menyuplai daftar id user yang sedang dipantau (roster aktif).
type RosterIDs func(ctx context.Context) ([]string, error)

// Poller memantau status password seluruh roster: sekali langsung saat
// Start, lalu tiap 15 detik selama lease hidup. Kegagalan satu panggilan
// hanya dicatat; snapshot lama tetap dipakai sampai tick berikutnya
// (stale-but-available). Tidak ada backoff/retry.
type Poller struct {
	source   Source
	rosterFn RosterIDs
	interval time.Duration

	mu     sync.RWMutex
	status map[string]Status
	live   map[string]Live

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller membuat poller dengan interval tertentu; interval <= 0 memakai
// DefaultInterval.
func NewPoller(source Source, rosterFn RosterIDs, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		source:   source,
		rosterFn: rosterFn,
		interval: interval,
		status:   map[string]Status{},
		live:     map[string]Live{},
	}
}

// Start memulai lease polling. Pass pertama: CheckStatus untuk semua id
// sekaligus FetchLive per id (paralel, tanpa urutan). Berikutnya ticker.
func (p *Poller) Start() {
	if p.cancel != nil {
		return // sudah jalan
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		p.initialPass(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.pollOnce(ctx)
			}
		}
	}()
}

// Stop melepas lease dan menunggu loop berhenti.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
}

func (p *Poller) initialPass(ctx context.Context) {
	ids, err := p.rosterFn(ctx)
	if err != nil {
		log.Printf("[POLLER] gagal ambil roster: %v", err)
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.CheckStatus(ctx, ids)
	}()
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			p.FetchLive(ctx, id)
		}(id)
	}
	wg.Wait()
}

func (p *Poller) pollOnce(ctx context.Context) {
	ids, err := p.rosterFn(ctx)
	if err != nil {
		log.Printf("[POLLER] gagal ambil roster: %v", err)
		return
	}
	p.CheckStatus(ctx, ids)
}

// CheckStatus menanyakan status untuk batch id. Sukses → map status DIGANTI
// utuh dengan isi response (id yang tidak dikembalikan server tidak punya
// entry), lalu FetchLive dipanggil untuk setiap user berstatus changed dan
// ditunggu semuanya. Gagal → log, snapshot lama dibiarkan.
func (p *Poller) CheckStatus(ctx context.Context, userIDs []string) {
	if len(userIDs) == 0 {
		return
	}

	result, err := p.source.CheckStatus(ctx, userIDs)
	if err != nil {
		log.Printf("[POLLER] cek status gagal, pakai snapshot lama: %v", err)
		return
	}

	p.mu.Lock()
	p.status = result
	p.mu.Unlock()

	var wg sync.WaitGroup
	for id, st := range result {
		if !st.Changed {
			continue
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			p.FetchLive(ctx, id)
		}(id)
	}
	wg.Wait()
}

// FetchLive mengambil nilai password satu user dan menggabungkannya ke map
// live (entry user lain tidak disentuh). Password kosong atau error → map
// dibiarkan apa adanya.
func (p *Poller) FetchLive(ctx context.Context, userID string) {
	live, err := p.source.FetchLive(ctx, userID)
	if err != nil {
		log.Printf("[POLLER] fetch live %s gagal: %v", userID, err)
		return
	}
	if live.Password == "" {
		return
	}

	p.mu.Lock()
	p.live[userID] = live
	p.mu.Unlock()
}

// StatusSnapshot mengembalikan salinan map status saat ini.
func (p *Poller) StatusSnapshot() map[string]Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]Status, len(p.status))
	for k, v := range p.status {
		out[k] = v
	}
	return out
}

// LiveSnapshot mengembalikan salinan map live-password saat ini.
func (p *Poller) LiveSnapshot() map[string]Live {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]Live, len(p.live))
	for k, v := range p.live {
		out[k] = v
	}
	return out
}
