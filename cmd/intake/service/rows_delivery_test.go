package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnk-music/intake/cmd/intake/models"
)

func TestSizeClassBoundaries(t *testing.T) {
	tests := []struct {
		tracks int
		want   string
		wantRu string
	}{
		{1, "Single", "Сингл"},
		{2, "EP", "Альбом / EP"},
		{6, "EP", "Альбом / EP"},
		{7, "Full Length", "Альбом / EP"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sizeClass(tt.tracks), "tracks=%d", tt.tracks)
		assert.Equal(t, tt.wantRu, sizeClassRu(tt.tracks), "tracks=%d", tt.tracks)
	}
}

func TestReorderDate(t *testing.T) {
	assert.Equal(t, "07.03.2024", reorderDate("2024-03-07"))

	// No calendar validation: segments are reordered literally
	assert.Equal(t, "99.13.2024", reorderDate("2024-13-99"))
	assert.Equal(t, "garbage", reorderDate("garbage"))
}

func TestDeliveryRowWidth(t *testing.T) {
	row := DeliveryRow{Type: models.ReleaseNewMusic}
	assert.Len(t, row.Columns(), deliveryWidth)
}

func TestDeliveryRowCommonColumns(t *testing.T) {
	row := DeliveryRow{
		Date:       "2024-03-07",
		Imprint:    "DNK",
		Username:   "artist1",
		Performers: "Some Artist",
		Title:      "Some Release",
		Genre:      "pop",
		SizeClass:  "Single",
		Track: models.Track{
			Title:      "Track One",
			Performers: "Some Artist",
			Explicit:   true,
		},
		Duration:   "3:05",
		SourceLink: "https://disk.example/release",
		Assets:     TrackAssets{WavLink: "https://disk.example/wav"},
		Type:       models.ReleaseNewMusic,
	}

	cells := row.Columns()
	assert.Equal(t, "07.03.2024", cells[colDate])
	assert.Equal(t, "DNK", cells[colImprint])
	assert.Equal(t, "Track One", cells[colTrackTitle])
	assert.Equal(t, "yes", cells[colExplicit])
	assert.Equal(t, "no", cells[colIsCover])
	assert.Equal(t, "3:05", cells[colDuration])
	assert.Equal(t, "https://disk.example/release", cells[colSourceLink])
	assert.Equal(t, "https://disk.example/wav", cells[colWavLink])
}

func TestDeliveryRowTypeBlocks(t *testing.T) {
	backCatalog := DeliveryRow{
		Type:           models.ReleaseBackCatalog,
		Track:          models.Track{ISRC: "RU-A01-24-00001"},
		UPC:            "123456789012",
		OriginalDate:   "2019-05-01",
		OriginalSource: "Old Label",
	}
	cells := backCatalog.Columns()
	require.Equal(t, "RU-A01-24-00001", cells[colISRC])
	assert.Equal(t, "123456789012", cells[colUPC])
	assert.Equal(t, "01.05.2019", cells[colOriginalDate])
	assert.Equal(t, "Old Label", cells[colOriginalSource])

	clip := DeliveryRow{
		Type:           models.ReleaseClip,
		DirectorsNames: "Director One",
		ReleaseLink:    "https://video.example/clip",
	}
	cells = clip.Columns()
	assert.Equal(t, "Director One", cells[colDirectorsNames])
	assert.Equal(t, "https://video.example/clip", cells[colReleaseLink])
}
