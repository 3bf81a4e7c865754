package service

import (
	"context"
	"errors"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/logger"
)

// ReleaseCRUD is the persisted release-request collection
type ReleaseCRUD interface {
	Create(ctx context.Context, req *models.ReleaseRequest) (string, error)
	GetByID(ctx context.Context, id string) (*models.ReleaseRequest, error)
	List(ctx context.Context, username string, status models.RequestStatus) ([]*models.ReleaseRequest, error)
	Update(ctx context.Context, id string, date, imprint, source string, data models.Release, authors []models.Author) error
	Delete(ctx context.Context, id string) error
}

// ProfileStore is the persisted profile collection
type ProfileStore interface {
	Get(ctx context.Context, username string) (*models.Profile, error)
	Put(ctx context.Context, username string, p *models.Profile) error
}

// UserGetter resolves accounts for permission checks
type UserGetter interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ReleaseService owns the release request lifecycle outside the two
// sheet-assembly actions
type ReleaseService struct {
	releases ReleaseCRUD
	profiles ProfileStore
	users    UserGetter
	log      *logger.Logger
}

// NewReleaseService creates the release lifecycle service
func NewReleaseService(releases ReleaseCRUD, profiles ProfileStore, users UserGetter, log *logger.Logger) *ReleaseService {
	return &ReleaseService{releases: releases, profiles: profiles, users: users, log: log}
}

// Submit stores a new pending request. The submitter's profile is snapshotted
// here and never re-read, freezing the legal signer context.
func (s *ReleaseService) Submit(ctx context.Context, username string, req *models.ReleaseRequest) (string, error) {
	if req.Data == nil {
		return "", models.Validationf("release payload is required")
	}
	if req.Type != req.Data.Type() {
		return "", models.Validationf("release type %q does not match payload", req.Type)
	}

	if err := s.validateSourcing(ctx, username, req); err != nil {
		return "", err
	}

	profile, err := s.profiles.Get(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		empty := models.NewProfile()
		profile = &empty
	} else if err != nil {
		return "", err
	}

	req.Username = username
	req.Status = models.StatusPending
	req.InDeliverySheet = false
	req.InDocsSheet = false
	req.UserData = *profile

	return s.releases.Create(ctx, req)
}

// validateSourcing enforces the file XOR cloud sourcing contract and the
// per-account link-upload permission. Only the request-level source link
// needs the permission; clip release links do not.
func (s *ReleaseService) validateSourcing(ctx context.Context, username string, req *models.ReleaseRequest) error {
	cloud := req.Source != ""

	if cloud {
		user, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if !user.LinkUpload {
			return models.Validationf("link-based sourcing is not enabled for this account")
		}
	}

	for _, track := range req.Tracks() {
		staged := track.WavFileID != ""
		if cloud && staged {
			return models.Validationf("track %q mixes cloud and file sourcing", track.Title)
		}
		if !cloud && !staged {
			return models.Validationf("track %q has no staged audio", track.Title)
		}
	}

	if clip, ok := req.Data.(*models.ClipRelease); ok && clip.ReleaseLink == "" {
		return models.Validationf("clip release requires a release link")
	}

	return nil
}

// Get fetches a request
func (s *ReleaseService) Get(ctx context.Context, id string) (*models.ReleaseRequest, error) {
	return s.releases.GetByID(ctx, id)
}

// List returns requests filtered by username and/or status
func (s *ReleaseService) List(ctx context.Context, username string, status models.RequestStatus) ([]*models.ReleaseRequest, error) {
	return s.releases.List(ctx, username, status)
}

// Update merges the mutable fields into an existing request and returns the
// merged record. Username and type are immutable post-submission.
func (s *ReleaseService) Update(ctx context.Context, id string, patch *models.ReleaseRequest) (*models.ReleaseRequest, error) {
	req, err := s.releases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Date != "" {
		req.Date = patch.Date
	}
	if patch.Imprint != "" {
		req.Imprint = patch.Imprint
	}
	if patch.Source != "" {
		req.Source = patch.Source
	}
	if patch.Data != nil {
		if patch.Data.Type() != req.Type {
			return nil, models.Validationf("release type is immutable")
		}
		req.Data = patch.Data
	}
	if patch.Authors != nil {
		req.Authors = patch.Authors
	}

	if err := s.releases.Update(ctx, id, req.Date, req.Imprint, req.Source, req.Data, req.Authors); err != nil {
		return nil, err
	}

	return req, nil
}

// Delete removes a request
func (s *ReleaseService) Delete(ctx context.Context, id string) error {
	return s.releases.Delete(ctx, id)
}
