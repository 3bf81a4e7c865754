package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnk-music/intake/cmd/intake/models"
)

func docsAuthor(name string, passport models.PassportType) models.Author {
	docs := &models.AuthorDocs{
		LicenseOrAlienation: true,
		PaymentType:         models.PaymentRoyalty,
		PaymentValue:        "10%",
		PassportType:        passport,
	}
	switch passport {
	case models.PassportRu:
		docs.RuPassport = &models.RuPassportData{FullName: name}
	case models.PassportKz:
		docs.KzPassport = &models.KzPassportData{FullName: name}
	case models.PassportBy:
		docs.ByPassport = &models.ByPassportData{FullName: name}
	case models.PassportForeign:
		docs.ForeignPassport = &models.ForeignPassportData{FullName: name}
	}
	return models.Author{FullName: name, Docs: docs}
}

func scanAuthor(name string) models.Author {
	return models.Author{FullName: name, Note: "scan attached"}
}

func classifierRequest(musicNames, lyricistNames, producerNames string, authors ...models.Author) *models.ReleaseRequest {
	return &models.ReleaseRequest{
		Type: models.ReleaseNewMusic,
		Data: &models.NewMusicRelease{
			Title: "Release",
			Tracks: []models.Track{{
				Title:                   "Track",
				MusicAuthorsNames:       musicNames,
				LyricistsNames:          lyricistNames,
				PhonogramProducersNames: producerNames,
			}},
		},
		Authors: authors,
	}
}

func TestClassifyMultiRoleSlotting(t *testing.T) {
	req := classifierRequest("Иванов Иван Иванович", "Иванов Иван Иванович", "",
		docsAuthor("Иванов Иван Иванович", models.PassportRu))

	class, err := Classify(req)
	require.NoError(t, err)

	// Slotted into both roles exactly once each
	require.Len(t, class.MusicAuthors.Domestic.Slots, 1)
	require.Len(t, class.Lyricists.Domestic.Slots, 1)
	assert.Empty(t, class.PhonogramProducers.Domestic.Slots)
	assert.Equal(t, "Иванов Иван Иванович", class.MusicAuthors.Domestic.Slots[0].FullName)
}

func TestClassifyDomesticCapacity(t *testing.T) {
	names := "A One, B Two, C Three, D Four"
	req := classifierRequest(names, "", "",
		docsAuthor("A One", models.PassportRu),
		docsAuthor("B Two", models.PassportRu),
		docsAuthor("C Three", models.PassportRu),
		docsAuthor("D Four", models.PassportRu),
	)

	_, err := Classify(req)
	var capErr *models.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, roleMusicAuthors, capErr.Role)
	assert.Equal(t, bucketDomestic, capErr.Bucket)
	assert.Equal(t, "D Four", capErr.Author)
	assert.Equal(t, domesticSlots, capErr.Capacity)
}

func TestClassifyProducerForeignCapacity(t *testing.T) {
	names := "A One, B Two, C Three"
	req := classifierRequest("", "", names,
		docsAuthor("A One", models.PassportKz),
		docsAuthor("B Two", models.PassportForeign),
		docsAuthor("C Three", models.PassportBy),
	)

	_, err := Classify(req)
	var capErr *models.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, rolePhonogramProducers, capErr.Role)
	assert.Equal(t, producerForeignSlots, capErr.Capacity)
}

func TestClassifyForeignRouting(t *testing.T) {
	// kz and by passports route to the foreign bucket; only ru is domestic
	req := classifierRequest("A One, B Two", "", "",
		docsAuthor("A One", models.PassportKz),
		docsAuthor("B Two", models.PassportRu),
	)

	class, err := Classify(req)
	require.NoError(t, err)
	require.Len(t, class.MusicAuthors.Foreign.Slots, 1)
	require.Len(t, class.MusicAuthors.Domestic.Slots, 1)
	assert.Equal(t, "A One", class.MusicAuthors.Foreign.Slots[0].FullName)
}

func TestClassifyScanOnlyUnbounded(t *testing.T) {
	names := "A, B, C, D, E"
	req := classifierRequest(names, "", "",
		scanAuthor("A"), scanAuthor("B"), scanAuthor("C"), scanAuthor("D"), scanAuthor("E"))

	class, err := Classify(req)
	require.NoError(t, err)
	assert.Len(t, class.MusicAuthors.Scans, 5)
	assert.Empty(t, class.MusicAuthors.Domestic.Slots)
}

func TestClassifyUnresolvedAuthor(t *testing.T) {
	req := classifierRequest("Listed Author", "", "",
		docsAuthor("Unlisted Author", models.PassportRu))

	_, err := Classify(req)
	var roleErr *models.RoleResolutionError
	require.ErrorAs(t, err, &roleErr)
	assert.Equal(t, "Unlisted Author", roleErr.Author)
}

func TestClassifySubmitterImplicitRole(t *testing.T) {
	// The submitter matches no name list but signs the release, so
	// classification must not reject them
	req := classifierRequest("", "", "", docsAuthor("Submitter Name", models.PassportRu))
	req.UserData = models.NewProfile()
	req.UserData.RuPassport.Data.FullName = "Submitter Name"

	_, err := Classify(req)
	require.NoError(t, err)
}

func TestClassifySubmitterOccupiesNoSlot(t *testing.T) {
	// A submitter listed among the music authors but filing no author record
	// reaches the sheet through the signer blocks only
	req := classifierRequest("Submitter Name", "", "")
	req.UserData = models.NewProfile()
	req.UserData.RuPassport.Data.FullName = "Submitter Name"

	class, err := Classify(req)
	require.NoError(t, err)
	assert.Empty(t, class.MusicAuthors.Domestic.Slots)
	assert.Empty(t, class.MusicAuthors.Foreign.Slots)
	assert.Empty(t, class.MusicAuthors.Scans)
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"A One", "B Two"}, splitNames(" A One ,B Two,"))
	assert.Nil(t, splitNames(""))
}
