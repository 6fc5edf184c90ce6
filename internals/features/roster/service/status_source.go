package service

import (
	"context"

	"github.com/google/uuid"

	"belajarku_backend/internals/features/accounts/passstatus"
)

// StatusSource mengimplementasikan passstatus.Source langsung di atas store
// roster, dipakai saat service jalan sebagai monolit (tanpa API eksternal).
type StatusSource struct {
	Svc *Service
}

func (s StatusSource) CheckStatus(ctx context.Context, userIDs []string) (map[string]passstatus.Status, error) {
	users, err := s.Svc.Repo().FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]passstatus.Status, len(users))
	for _, u := range users {
		out[u.ID.String()] = passstatus.Status{
			Changed:    u.PasswordIsChanged(),
			LastChange: u.PasswordChangedAt,
		}
	}
	return out, nil
}

func (s StatusSource) FetchLive(ctx context.Context, userID string) (passstatus.Live, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return passstatus.Live{}, err
	}
	u, err := s.Svc.FindByID(ctx, id)
	if err != nil {
		return passstatus.Live{}, err
	}
	return passstatus.Live{
		Password:  u.PasswordPlain,
		UpdatedAt: u.PasswordUpdatedAt(),
	}, nil
}
