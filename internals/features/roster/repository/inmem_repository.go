package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"belajarku_backend/internals/features/roster/model"
)

// InMemUserRepository: implementasi map-based untuk test handler/service
// tanpa Postgres. Perilaku (unik email, not-found) meniru versi GORM.
type InMemUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.UserModel
}

func NewInMemUserRepository() *InMemUserRepository {
	return &InMemUserRepository{users: map[uuid.UUID]model.UserModel{}}
}

func (r *InMemUserRepository) List(ctx context.Context, role, q string, limit, offset int) ([]model.UserModel, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q = strings.ToLower(strings.TrimSpace(q))
	var all []model.UserModel
	for _, u := range r.users {
		if role != "" && u.Role != role {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.FullName), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *InMemUserRepository) ListIDs(ctx context.Context, role string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, u := range r.users {
		if role == "" || u.Role == role {
			ids = append(ids, id.String())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *InMemUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *InMemUserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.UserModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.UserModel
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *InMemUserRepository) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if strings.ToLower(u.Email) == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemUserRepository) Create(ctx context.Context, u *model.UserModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrEmailExists
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *InMemUserRepository) Update(ctx context.Context, u *model.UserModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *InMemUserRepository) Delete(ctx context.Context, id uuid.UUID, role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || (role != "" && u.Role != role) {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}
