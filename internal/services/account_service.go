package services

import (
	"context"
	"time"
)

// CascadeAccountService deletes an account across collections: profile first,
// then the user record. Posts are left in place and keep serving their
// denormalized author name/avatar.
type CascadeAccountService struct {
	users    UserService
	profiles ProfileService
}

func NewCascadeAccountService(users UserService, profiles ProfileService) *CascadeAccountService {
	return &CascadeAccountService{
		users:    users,
		profiles: profiles,
	}
}

func (s *CascadeAccountService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.users.DeleteByID(ctx, userID)
}

// DefaultAccountTimeout bounds the multi-collection cascade.
func DefaultAccountTimeout() time.Duration { return 20 * time.Second }
