package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/logger"
)

// coverPlaceholder marks a docs row generated before the delivery action has
// produced a snapshot with resolved links
const coverPlaceholder = "pending delivery"

// DocsService runs the docs-sheet assembly action: classify the declared
// authors, detect signer profile drift and append one row per release.
// Unlike delivery, docs is all-or-nothing: any classification error aborts.
type DocsService struct {
	releases  ReleaseStore
	processed ProcessedStore
	sheets    SheetAppender
	newLock   func() Locker
	sheetName string
	log       *logger.Logger
}

// NewDocsService creates the docs-sheet action
func NewDocsService(
	releases ReleaseStore,
	processed ProcessedStore,
	sheets SheetAppender,
	newLock func() Locker,
	sheetName string,
	log *logger.Logger,
) *DocsService {
	return &DocsService{
		releases:  releases,
		processed: processed,
		sheets:    sheets,
		newLock:   newLock,
		sheetName: sheetName,
		log:       log,
	}
}

// Run executes the docs action for a request id
func (s *DocsService) Run(ctx context.Context, id string) error {
	req, err := s.releases.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Date == "" || req.Imprint == "" {
		return models.Validationf("date and imprint are required before sheet assembly")
	}

	class, err := Classify(req)
	if err != nil {
		return err
	}

	changed, err := s.profileChanged(ctx, req)
	if err != nil {
		return err
	}

	coverLink, folderLink := coverPlaceholder, ""
	snapshot, err := s.processed.GetByID(ctx, id)
	switch {
	case err == nil:
		coverLink = snapshot.CoverLink
		folderLink = snapshot.FolderLink
	case errors.Is(err, models.ErrNotFound):
		s.log.Warn("no delivery snapshot, docs row degraded", "request_id", id)
	default:
		return err
	}

	header := req.Data.Header()
	tracks := req.Tracks()

	row := DocsRow{
		Date:           req.Date,
		Imprint:        req.Imprint,
		Username:       req.Username,
		Performers:     header.Performers,
		Title:          header.Title,
		Version:        header.Version,
		Genre:          header.Genre,
		TrackCount:     len(tracks),
		TrackList:      trackList(tracks),
		CoverLink:      coverLink,
		FolderLink:     folderLink,
		ProfileChanged: changed,
		Signer:         req.UserData,
		Class:          class,
	}

	cells, err := row.Columns()
	if err != nil {
		return err
	}

	lock := s.newLock()
	if err := lock.Lock(ctx); err != nil {
		return err
	}
	err = s.sheets.AppendRows(ctx, s.sheetName, [][]string{cells})
	unlockErr := lock.Unlock(ctx)
	if err != nil {
		return err
	}
	if unlockErr != nil {
		s.log.Warn("sheet lock release failed", "error", unlockErr)
	}

	if err := s.releases.MarkInDocsSheet(ctx, id); err != nil {
		return err
	}

	s.log.Info("docs action complete", "request_id", id)
	return nil
}

// profileChanged compares the request's profile snapshot against the one
// stored with the submitter's most recently dated processed release. The
// request's own delivery snapshot is excluded: after the usual
// delivery-then-docs order it would otherwise be the latest and always equal.
func (s *DocsService) profileChanged(ctx context.Context, req *models.ReleaseRequest) (bool, error) {
	latest, err := s.processed.LatestByUsername(ctx, req.Username, req.ID)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return latest.UserData != req.UserData, nil
}

func trackList(tracks []models.Track) string {
	titles := make([]string, len(tracks))
	for i, t := range tracks {
		titles[i] = t.Title
	}
	return strings.Join(titles, "; ")
}
