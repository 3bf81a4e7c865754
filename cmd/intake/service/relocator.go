package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/logger"
)

// DiskClient is the cloud folder/publish service consumed by the pipeline
type DiskClient interface {
	Mkdir(ctx context.Context, path string) error
	Upload(ctx context.Context, localPath, remotePath string) error
	Publish(ctx context.Context, remotePath string) (string, error)
}

// Transcoder derives an MP3 rendition from a staged WAV file
type Transcoder interface {
	ToMP3(ctx context.Context, wavPath string) (string, error)
}

// FileResolver maps a staged file id to its local path
type FileResolver interface {
	PathFor(ctx context.Context, id string) (string, error)
}

// Relocator moves staged media to cloud storage and resolves public links.
// Folder setup failures abort; per-asset failures degrade the affected link
// to empty so one bad track cannot corrupt the rest of the batch.
type Relocator struct {
	disk       DiskClient
	files      FileResolver
	transcoder Transcoder
	root       string
	log        *logger.Logger
}

// NewRelocator creates a relocator rooted at the given cloud folder
func NewRelocator(disk DiskClient, files FileResolver, transcoder Transcoder, root string, log *logger.Logger) *Relocator {
	return &Relocator{disk: disk, files: files, transcoder: transcoder, root: root, log: log}
}

// SetupFolders creates the release folder tree and returns the release path.
// Multi-track releases get /wav, /mp3 and /lyrics sub-folders; single-track
// releases keep media flat in the release folder. Mkdir is idempotent, so
// rerunning setup on an existing tree is not an error.
func (r *Relocator) SetupFolders(ctx context.Context, artist, release string, multiTrack bool) (string, error) {
	artistPath := r.root + "/" + sanitizeSegment(artist)
	releasePath := artistPath + "/" + sanitizeSegment(release)

	paths := []string{r.root, artistPath, releasePath}
	if multiTrack {
		paths = append(paths, releasePath+"/wav", releasePath+"/mp3", releasePath+"/lyrics")
	}

	for _, path := range paths {
		if err := r.disk.Mkdir(ctx, path); err != nil {
			return "", fmt.Errorf("setup release folders: %w", err)
		}
	}

	return releasePath, nil
}

// RelocateCover uploads the staged cover into the release folder and returns
// its public link, or an empty link on failure
func (r *Relocator) RelocateCover(ctx context.Context, releasePath, coverFileID string) string {
	if coverFileID == "" {
		return ""
	}

	local, err := r.files.PathFor(ctx, coverFileID)
	if err != nil {
		return r.degrade("cover", coverFileID, err)
	}

	remote := releasePath + "/cover.jpg"
	if err := r.disk.Upload(ctx, local, remote); err != nil {
		return r.degrade("cover", coverFileID, err)
	}

	link, err := r.disk.Publish(ctx, remote)
	if err != nil {
		return r.degrade("cover", coverFileID, err)
	}
	return link
}

// RelocateTrack uploads the track's WAV, a derived MP3 and the optional
// lyrics document, returning whatever links could be resolved. Each asset
// degrades independently.
func (r *Relocator) RelocateTrack(ctx context.Context, releasePath string, multiTrack bool, track models.Track) TrackAssets {
	var assets TrackAssets
	name := sanitizeSegment(track.Title)

	wavLocal, err := r.files.PathFor(ctx, track.WavFileID)
	if err != nil {
		assets.WavLink = r.degrade("wav", track.WavFileID, err)
	} else {
		assets.WavLink = r.relocate(ctx, "wav", wavLocal, trackPath(releasePath, "wav", name+".wav", multiTrack))

		mp3Local, err := r.transcoder.ToMP3(ctx, wavLocal)
		if err != nil {
			assets.Mp3Link = r.degrade("mp3", track.WavFileID, err)
		} else {
			assets.Mp3Link = r.relocate(ctx, "mp3", mp3Local, trackPath(releasePath, "mp3", name+".mp3", multiTrack))
		}
	}

	if track.TextFileID != "" {
		textLocal, err := r.files.PathFor(ctx, track.TextFileID)
		if err != nil {
			assets.TextLink = r.degrade("lyrics", track.TextFileID, err)
		} else {
			assets.TextLink = r.relocate(ctx, "lyrics", textLocal, trackPath(releasePath, "lyrics", name+".docx", multiTrack))
		}
	}

	return assets
}

// FolderLink publishes the release folder itself
func (r *Relocator) FolderLink(ctx context.Context, releasePath string) string {
	link, err := r.disk.Publish(ctx, releasePath)
	if err != nil {
		return r.degrade("folder", releasePath, err)
	}
	return link
}

func (r *Relocator) relocate(ctx context.Context, asset, local, remote string) string {
	if err := r.disk.Upload(ctx, local, remote); err != nil {
		return r.degrade(asset, remote, err)
	}
	link, err := r.disk.Publish(ctx, remote)
	if err != nil {
		return r.degrade(asset, remote, err)
	}
	return link
}

// degrade is the single failure seam of the relocator: the error is logged
// and the affected cell is left blank instead of aborting the batch
func (r *Relocator) degrade(asset, ref string, err error) string {
	r.log.Error("relocation failed, leaving cell blank", "asset", asset, "ref", ref, "error", err)
	return ""
}

func trackPath(releasePath, subFolder, fileName string, multiTrack bool) string {
	if multiTrack {
		return releasePath + "/" + subFolder + "/" + fileName
	}
	return releasePath + "/" + fileName
}

// sanitizeSegment keeps titles usable as folder path segments
func sanitizeSegment(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "/", "-")
}
