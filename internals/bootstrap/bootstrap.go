package bootstrap

import (
	"context"
	"log"

	"gorm.io/gorm"

	"belajarku_backend/internals/configs"
	"belajarku_backend/internals/features/accounts/credcache"
	"belajarku_backend/internals/features/accounts/passstatus"
	"belajarku_backend/internals/features/roster/model"
	"belajarku_backend/internals/features/roster/repository"
	"belajarku_backend/internals/features/roster/service"
)

// Storage key per roster type; guru dan siswa tidak boleh berbagi daftar.
const (
	TeacherCacheKey = "teacher_created_accounts"
	StudentCacheKey = "student_created_accounts"
)

// Deps menampung semua dependency yang dirangkai sekali di boot lalu
// dibagikan ke routes.
type Deps struct {
	DB        *gorm.DB
	RosterSvc *service.Service
	Source    passstatus.Source

	TeacherCache *credcache.Store
	StudentCache *credcache.Store

	TeacherPoller *passstatus.Poller
	StudentPoller *passstatus.Poller
}

func Build(db *gorm.DB) *Deps {
	repo := repository.NewGormUserRepository(db)
	svc := service.NewService(repo)
	source := service.StatusSource{Svc: svc}

	teacherCache := credcache.NewStore(configs.AccountsDataDir, TeacherCacheKey)
	teacherCache.Load()
	studentCache := credcache.NewStore(configs.AccountsDataDir, StudentCacheKey)
	studentCache.Load()

	rosterFn := func(role string) passstatus.RosterIDs {
		return func(ctx context.Context) ([]string, error) {
			return svc.ListIDs(ctx, role)
		}
	}

	return &Deps{
		DB:            db,
		RosterSvc:     svc,
		Source:        source,
		TeacherCache:  teacherCache,
		StudentCache:  studentCache,
		TeacherPoller: passstatus.NewPoller(source, rosterFn(model.RoleTeacher), passstatus.DefaultInterval),
		StudentPoller: passstatus.NewPoller(source, rosterFn(model.RoleStudent), passstatus.DefaultInterval),
	}
}

func (d *Deps) StartPollers() {
	log.Println("[INFO] Memulai poller status password (guru & siswa)...")
	d.TeacherPoller.Start()
	d.StudentPoller.Start()
}

func (d *Deps) StopPollers() {
	d.TeacherPoller.Stop()
	d.StudentPoller.Stop()
}
