package service

import (
	"context"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/logger"
	"github.com/dnk-music/intake/common/media"
)

// ReleaseStore is the persisted release-request view consumed by the pipeline
type ReleaseStore interface {
	GetByID(ctx context.Context, id string) (*models.ReleaseRequest, error)
	SetStatus(ctx context.Context, id string, status models.RequestStatus) error
	MarkInDeliverySheet(ctx context.Context, id string) error
	MarkInDocsSheet(ctx context.Context, id string) error
}

// ProcessedStore is the archival snapshot view. LatestByUsername skips the
// excluded request id so a request never compares against its own snapshot.
type ProcessedStore interface {
	Upsert(ctx context.Context, p *models.ProcessedRequest) error
	GetByID(ctx context.Context, id string) (*models.ProcessedRequest, error)
	LatestByUsername(ctx context.Context, username, excludeID string) (*models.ProcessedRequest, error)
}

// SheetAppender appends rows at the first free row, preserving order
type SheetAppender interface {
	AppendRows(ctx context.Context, sheetName string, rows [][]string) error
}

// Prober derives playable duration from a staged audio file
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Locker serializes sheet appends against other writers
type Locker interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// DeliveryService runs the delivery-sheet assembly action: relocate staged
// media, build one row per track and append them under the sheet lock.
// Reruns are not guarded; in_delivery_sheet is an advisory signal only.
type DeliveryService struct {
	releases  ReleaseStore
	processed ProcessedStore
	relocator *Relocator
	files     FileResolver
	prober    Prober
	sheets    SheetAppender
	newLock   func() Locker
	sheetName string
	log       *logger.Logger
}

// NewDeliveryService creates the delivery-sheet action
func NewDeliveryService(
	releases ReleaseStore,
	processed ProcessedStore,
	relocator *Relocator,
	files FileResolver,
	prober Prober,
	sheets SheetAppender,
	newLock func() Locker,
	sheetName string,
	log *logger.Logger,
) *DeliveryService {
	return &DeliveryService{
		releases:  releases,
		processed: processed,
		relocator: relocator,
		files:     files,
		prober:    prober,
		sheets:    sheets,
		newLock:   newLock,
		sheetName: sheetName,
		log:       log,
	}
}

// Run executes the delivery action for a request id and returns the stored
// snapshot. Validation happens before any relocation side effect.
func (s *DeliveryService) Run(ctx context.Context, id string) (*models.ProcessedRequest, error) {
	req, err := s.releases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date == "" || req.Imprint == "" {
		return nil, models.Validationf("date and imprint are required before sheet assembly")
	}

	header := req.Data.Header()
	tracks := req.Tracks()
	multiTrack := len(tracks) > 1

	var folderLink, coverLink, sourceLink string
	assets := make([]TrackAssets, len(tracks))
	durations := make([]string, len(tracks))

	if req.CloudSourced() {
		sourceLink = cloudLink(req)
		s.log.Info("cloud-sourced request, skipping relocation", "request_id", id)
	} else {
		folder, err := s.relocator.SetupFolders(ctx, header.Performers, header.Title, multiTrack)
		if err != nil {
			s.fail(ctx, id, err)
			return nil, err
		}

		coverLink = s.relocator.RelocateCover(ctx, folder, coverFileID(req.Data))
		for i, track := range tracks {
			assets[i] = s.relocator.RelocateTrack(ctx, folder, multiTrack, track)
			durations[i] = s.probeDuration(ctx, track)
		}
		folderLink = s.relocator.FolderLink(ctx, folder)
	}

	rows := s.buildRows(req, header, tracks, folderLink, coverLink, sourceLink, assets, durations)

	lock := s.newLock()
	if err := lock.Lock(ctx); err != nil {
		return nil, err
	}
	err = s.sheets.AppendRows(ctx, s.sheetName, rows)
	unlockErr := lock.Unlock(ctx)
	if err != nil {
		s.fail(ctx, id, err)
		return nil, err
	}
	if unlockErr != nil {
		s.log.Warn("sheet lock release failed", "error", unlockErr)
	}

	snapshot := buildSnapshot(req, header, tracks, folderLink, coverLink, sourceLink, assets, durations)
	if err := s.processed.Upsert(ctx, snapshot); err != nil {
		return nil, err
	}

	if err := s.releases.MarkInDeliverySheet(ctx, id); err != nil {
		return nil, err
	}
	if err := s.releases.SetStatus(ctx, id, models.StatusAccepted); err != nil {
		return nil, err
	}

	s.log.Info("delivery action complete", "request_id", id, "rows", len(rows))
	return snapshot, nil
}

func (s *DeliveryService) buildRows(
	req *models.ReleaseRequest,
	header models.ReleaseHeader,
	tracks []models.Track,
	folderLink, coverLink, sourceLink string,
	assets []TrackAssets,
	durations []string,
) [][]string {
	base := DeliveryRow{
		Date:       req.Date,
		Imprint:    req.Imprint,
		Username:   req.Username,
		Performers: header.Performers,
		Title:      header.Title,
		Version:    header.Version,
		Genre:      header.Genre,
		SizeClass:  sizeClass(len(tracks)),
		FolderLink: folderLink,
		CoverLink:  coverLink,
		SourceLink: sourceLink,
		Type:       req.Type,
	}

	switch data := req.Data.(type) {
	case *models.BackCatalogRelease:
		base.UPC = data.UPC
		base.OriginalDate = data.Date
		base.OriginalSource = data.Source
	case *models.ClipRelease:
		base.DirectorsNames = data.DirectorsNames
		base.ReleaseLink = data.ReleaseLink
		row := base
		return [][]string{row.Columns()}
	}

	rows := make([][]string, len(tracks))
	for i, track := range tracks {
		row := base
		row.Track = track
		row.Duration = durations[i]
		row.Assets = assets[i]
		rows[i] = row.Columns()
	}
	return rows
}

func buildSnapshot(
	req *models.ReleaseRequest,
	header models.ReleaseHeader,
	tracks []models.Track,
	folderLink, coverLink, sourceLink string,
	assets []TrackAssets,
	durations []string,
) *models.ProcessedRequest {
	snapshot := &models.ProcessedRequest{
		ID:         req.ID,
		Username:   req.Username,
		Date:       req.Date,
		Imprint:    req.Imprint,
		Type:       req.Type,
		Performers: header.Performers,
		Title:      header.Title,
		FolderLink: folderLink,
		CoverLink:  coverLink,
		SourceLink: sourceLink,
		UserData:   req.UserData,
	}

	for i, track := range tracks {
		snapshot.Tracks = append(snapshot.Tracks, models.ProcessedTrack{
			Title:      track.Title,
			Performers: track.Performers,
			Version:    track.Version,
			ISRC:       track.ISRC,
			Duration:   durations[i],
			WavLink:    assets[i].WavLink,
			Mp3Link:    assets[i].Mp3Link,
			TextLink:   assets[i].TextLink,
		})
	}

	return snapshot
}

// probeDuration resolves the staged WAV and probes it; failures degrade the
// duration cell to blank like any other per-track relocation failure
func (s *DeliveryService) probeDuration(ctx context.Context, track models.Track) string {
	local, err := s.files.PathFor(ctx, track.WavFileID)
	if err != nil {
		s.log.Error("duration probe failed, leaving cell blank", "file_id", track.WavFileID, "error", err)
		return ""
	}

	seconds, err := s.prober.Duration(ctx, local)
	if err != nil {
		s.log.Error("duration probe failed, leaving cell blank", "file_id", track.WavFileID, "error", err)
		return ""
	}

	return media.FormatDuration(seconds)
}

func (s *DeliveryService) fail(ctx context.Context, id string, cause error) {
	if err := s.releases.SetStatus(ctx, id, models.StatusError); err != nil {
		s.log.Error("status update failed", "request_id", id, "error", err)
	}
	s.log.Error("delivery action failed", "request_id", id, "error", cause)
}

// cloudLink returns the externally hosted media link of a cloud-sourced request
func cloudLink(req *models.ReleaseRequest) string {
	if req.Source != "" {
		return req.Source
	}
	if clip, ok := req.Data.(*models.ClipRelease); ok {
		return clip.ReleaseLink
	}
	return ""
}

// coverFileID returns the staged cover reference of the payload
func coverFileID(data models.Release) string {
	switch d := data.(type) {
	case *models.NewMusicRelease:
		return d.CoverFileID
	case *models.BackCatalogRelease:
		return d.CoverFileID
	case *models.ClipRelease:
		return d.CoverFileID
	default:
		return ""
	}
}
