package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnk-music/intake/cmd/intake/models"
)

func signerProfile() models.Profile {
	p := models.NewProfile()
	p.RuPassport.Data = models.RuPassportData{
		FullName:  "Иванов Иван Иванович",
		BirthDate: "1990-01-01",
		Number:    "1234 567890",
	}
	p.SelfEmployed = models.SelfEmployedEntity{
		INN:      "123456789012",
		BankName: "Some Bank",
	}
	return p
}

func TestDocsRowWidthAndReleaseBlock(t *testing.T) {
	req := classifierRequest("Иванов Иван Иванович", "", "",
		docsAuthor("Иванов Иван Иванович", models.PassportRu))
	class, err := Classify(req)
	require.NoError(t, err)

	row := DocsRow{
		Date:           "2024-03-07",
		Imprint:        "DNK",
		Username:       "artist1",
		Performers:     "Some Artist",
		Title:          "Some Release",
		TrackCount:     3,
		TrackList:      "One; Two; Three",
		CoverLink:      "https://disk.example/cover",
		ProfileChanged: true,
		Signer:         signerProfile(),
		Class:          class,
	}

	cells, err := row.Columns()
	require.NoError(t, err)
	require.Len(t, cells, docsWidth)

	assert.Equal(t, "07.03.2024", cells[docsColDate])
	assert.Equal(t, "Альбом / EP", cells[docsColSizeClass])
	assert.Equal(t, "3", cells[docsColTrackCount])
	assert.Equal(t, "Иванов Иван Иванович", cells[docsColSignerName])
	assert.Equal(t, "self", cells[docsColLegalEntityType])
	assert.Equal(t, "ru", cells[docsColPassportType])
	assert.Equal(t, "yes", cells[docsColProfileChanged])
}

func TestDocsRowSignerBlocks(t *testing.T) {
	req := classifierRequest("", "", "")
	class, err := Classify(req)
	require.NoError(t, err)

	row := DocsRow{TrackCount: 1, Signer: signerProfile(), Class: class}
	cells, err := row.Columns()
	require.NoError(t, err)

	// Selected sub-blocks populated, unselected left blank
	assert.Equal(t, "123456789012", cells[docsColSelfEmployed])
	assert.Equal(t, "Some Bank", cells[docsColSelfEmployed+1])
	assert.Equal(t, "", cells[docsColOoo])
	assert.Equal(t, "Иванов Иван Иванович", cells[docsColRuPassport])
	assert.Equal(t, "", cells[docsColKzPassport])
}

func TestDocsRowAuthorSlots(t *testing.T) {
	req := classifierRequest("Dom One, For One", "", "Scan One",
		docsAuthor("Dom One", models.PassportRu),
		docsAuthor("For One", models.PassportKz),
		scanAuthor("Scan One"),
	)
	class, err := Classify(req)
	require.NoError(t, err)

	row := DocsRow{TrackCount: 1, Signer: signerProfile(), Class: class}
	cells, err := row.Columns()
	require.NoError(t, err)

	// First domestic and first foreign music-author slots
	assert.Equal(t, "Dom One", cells[musicAuthorsBlock+slotColFullName])
	assert.Equal(t, "license", cells[musicAuthorsBlock+slotColLicense])
	assert.Equal(t, "ru", cells[musicAuthorsBlock+slotColPassportType])

	foreignStart := musicAuthorsBlock + domesticSlots*slotWidth
	assert.Equal(t, "For One", cells[foreignStart+slotColFullName])
	assert.Equal(t, "kz", cells[foreignStart+slotColPassportType])

	// Scan-only producer lands in the producers scan cell
	producerScans := phonogramProducersBlock + (domesticSlots+producerForeignSlots)*slotWidth
	assert.Equal(t, "Scan One: scan attached", cells[producerScans])
}
