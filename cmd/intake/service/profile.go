package service

import (
	"context"
	"errors"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/logger"
)

// VerifiedSetter updates the account verification flag
type VerifiedSetter interface {
	SetVerified(ctx context.Context, username string, verified bool) error
}

// ProfileService owns user legal profiles. Every write re-evaluates account
// verification: one fully filled passport and one fully filled legal entity
// make the account verified.
type ProfileService struct {
	profiles ProfileStore
	users    VerifiedSetter
	log      *logger.Logger
}

// NewProfileService creates the profile service
func NewProfileService(profiles ProfileStore, users VerifiedSetter, log *logger.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, log: log}
}

// Get returns the user's profile, or the all-empty placeholder shape if none
// was stored yet
func (s *ProfileService) Get(ctx context.Context, username string) (*models.Profile, error) {
	profile, err := s.profiles.Get(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		empty := models.NewProfile()
		return &empty, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Put stores the profile and re-evaluates verification
func (s *ProfileService) Put(ctx context.Context, username string, profile *models.Profile) error {
	if _, err := profile.CurrentPassportData(); err != nil {
		return models.Validationf("%v", err)
	}
	switch profile.CurrentLegalEntity {
	case models.LegalEntitySelf, models.LegalEntityIndividual, models.LegalEntityOoo, models.LegalEntityForeign:
	default:
		return models.Validationf("unknown legal entity selector %q", profile.CurrentLegalEntity)
	}

	if err := s.profiles.Put(ctx, username, profile); err != nil {
		return err
	}

	verified := profile.PassportFilled() && profile.LegalEntityFilled()
	if err := s.users.SetVerified(ctx, username, verified); err != nil {
		return err
	}

	s.log.Info("profile updated", "username", username, "verified", verified)
	return nil
}
