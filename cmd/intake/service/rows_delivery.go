package service

import (
	"strconv"
	"strings"

	"github.com/dnk-music/intake/cmd/intake/models"
)

// The delivery sheet is 44 columns wide, one row per track. Columns 0-24 are
// shared by all release types; the tail block depends on the type.
const deliveryWidth = 44

const (
	colDate = iota
	colImprint
	colUsername
	colReleasePerformers
	colReleaseTitle
	colReleaseVersion
	colGenre
	colSizeClass
	colTrackTitle
	colTrackPerformers
	colTrackVersion
	colExplicit
	colPreview
	colIsCover
	colTrackPerformersNames
	colMusicAuthorsNames
	colLyricistsNames
	colPhonogramProducersNames
	colDuration
	colFolderLink
	colCoverLink
	colSourceLink
	colWavLink
	colMp3Link
	colTextLink
)

// back-catalog tail block
const (
	colISRC = iota + colTextLink + 1
	colUPC
	colOriginalDate
	colOriginalSource
)

// clip tail block
const (
	colDirectorsNames = iota + colTextLink + 1
	colReleaseLink
)

// TrackAssets holds the resolved public links of one relocated track
type TrackAssets struct {
	WavLink  string
	Mp3Link  string
	TextLink string
}

// DeliveryRow is one delivery-sheet row, built per track
type DeliveryRow struct {
	Date     string
	Imprint  string
	Username string

	Performers string
	Title      string
	Version    string
	Genre      string
	SizeClass  string

	Track    models.Track
	Duration string

	FolderLink string
	CoverLink  string
	SourceLink string
	Assets     TrackAssets

	// back-catalog
	UPC            string
	OriginalDate   string
	OriginalSource string

	// clip
	DirectorsNames string
	ReleaseLink    string

	Type models.ReleaseType
}

// Columns renders the row as a fixed-width cell list
func (r *DeliveryRow) Columns() []string {
	row := make([]string, deliveryWidth)

	row[colDate] = reorderDate(r.Date)
	row[colImprint] = r.Imprint
	row[colUsername] = r.Username
	row[colReleasePerformers] = r.Performers
	row[colReleaseTitle] = r.Title
	row[colReleaseVersion] = r.Version
	row[colGenre] = r.Genre
	row[colSizeClass] = r.SizeClass

	row[colTrackTitle] = r.Track.Title
	row[colTrackPerformers] = r.Track.Performers
	row[colTrackVersion] = r.Track.Version
	row[colExplicit] = yesNo(r.Track.Explicit)
	row[colPreview] = r.Track.Preview
	row[colIsCover] = yesNo(r.Track.IsCover)
	row[colTrackPerformersNames] = r.Track.PerformersNames
	row[colMusicAuthorsNames] = r.Track.MusicAuthorsNames
	row[colLyricistsNames] = r.Track.LyricistsNames
	row[colPhonogramProducersNames] = r.Track.PhonogramProducersNames
	row[colDuration] = r.Duration

	row[colFolderLink] = r.FolderLink
	row[colCoverLink] = r.CoverLink
	row[colSourceLink] = r.SourceLink
	row[colWavLink] = r.Assets.WavLink
	row[colMp3Link] = r.Assets.Mp3Link
	row[colTextLink] = r.Assets.TextLink

	switch r.Type {
	case models.ReleaseBackCatalog:
		row[colISRC] = r.Track.ISRC
		row[colUPC] = r.UPC
		row[colOriginalDate] = reorderDate(r.OriginalDate)
		row[colOriginalSource] = r.OriginalSource
	case models.ReleaseClip:
		row[colDirectorsNames] = r.DirectorsNames
		row[colReleaseLink] = r.ReleaseLink
	}

	return row
}

// sizeClass maps track count to the English release-size label
func sizeClass(trackCount int) string {
	switch {
	case trackCount < 1:
		return ""
	case trackCount == 1:
		return "Single"
	case trackCount <= 6:
		return "EP"
	default:
		return "Full Length"
	}
}

// sizeClassRu maps track count to the Russian label used on the docs sheet.
// The docs template only distinguishes singles from everything larger.
func sizeClassRu(trackCount int) string {
	switch {
	case trackCount < 1:
		return ""
	case trackCount == 1:
		return "Сингл"
	default:
		return "Альбом / EP"
	}
}

// reorderDate turns "YYYY-MM-DD" into "DD.MM.YYYY" by literal segment
// reordering. No calendar validation: a malformed input comes back as-is or
// garbled, never a crash.
func reorderDate(date string) string {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
