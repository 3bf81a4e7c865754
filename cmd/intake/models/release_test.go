package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseRequestUnmarshalDispatch(t *testing.T) {
	payload := `{
		"username": "artist1",
		"date": "2024-03-07",
		"imprint": "DNK",
		"type": "back-catalog",
		"data": {
			"performers": "Some Artist",
			"title": "Old Single",
			"genre": "rock",
			"upc": "123456789012",
			"date": "2019-05-01",
			"source": "Old Label Records",
			"tracks": [{"title": "Only Track", "isrc": "RU-A01-19-00001", "wav_file_id": "wav1"}],
			"cover_file_id": "cover1"
		},
		"authors": []
	}`

	var req ReleaseRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	data, ok := req.Data.(*BackCatalogRelease)
	require.True(t, ok, "payload must decode to the type-tagged variant")
	assert.Equal(t, "123456789012", data.UPC)
	assert.Equal(t, "Old Label Records", data.Source)
	require.Len(t, req.Tracks(), 1)
	assert.Equal(t, "RU-A01-19-00001", req.Tracks()[0].ISRC)
	assert.False(t, req.CloudSourced())
}

func TestReleaseRequestUnknownType(t *testing.T) {
	payload := `{"type": "podcast", "data": {"title": "x"}}`

	var req ReleaseRequest
	err := json.Unmarshal([]byte(payload), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown release type")
}

func TestCloudSourced(t *testing.T) {
	tests := []struct {
		name string
		req  ReleaseRequest
		want bool
	}{
		{"request-level link", ReleaseRequest{Source: "https://x", Data: &NewMusicRelease{}}, true},
		{"staged new music", ReleaseRequest{Data: &NewMusicRelease{}}, false},
		{"back catalog original source is metadata", ReleaseRequest{Data: &BackCatalogRelease{Source: "Old Label Records"}}, false},
		{"back catalog with request link", ReleaseRequest{Source: "https://x", Data: &BackCatalogRelease{Source: "Old Label Records"}}, true},
		{"clip always linked", ReleaseRequest{Data: &ClipRelease{ReleaseLink: "https://x"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Type = tt.req.Data.Type()
			assert.Equal(t, tt.want, tt.req.CloudSourced())
		})
	}
}

func TestAuthorDataUnion(t *testing.T) {
	withDocs := `{
		"full_name": "Иванов Иван Иванович",
		"data": {
			"license_or_alienation": true,
			"payment_type": "royalty",
			"payment_value": "10%",
			"passport_type": "kz",
			"passport": {"full_name": "Иванов Иван Иванович", "id_number": "123"}
		}
	}`

	var author Author
	require.NoError(t, json.Unmarshal([]byte(withDocs), &author))
	require.False(t, author.ScanOnly())

	passport, err := author.Docs.Passport()
	require.NoError(t, err)
	kz, ok := passport.(*KzPassportData)
	require.True(t, ok)
	assert.Equal(t, "123", kz.IDNumber)

	scanOnly := `{"full_name": "Петров Пётр", "data": "документы сканом в переписке"}`
	require.NoError(t, json.Unmarshal([]byte(scanOnly), &author))
	require.True(t, author.ScanOnly())
	assert.Equal(t, "документы сканом в переписке", author.Note)
}

func TestAuthorRoundTrip(t *testing.T) {
	author := Author{
		FullName: "Иванов Иван Иванович",
		Docs: &AuthorDocs{
			PaymentType:  PaymentSum,
			PaymentValue: "5000",
			PassportType: PassportRu,
			RuPassport:   &RuPassportData{FullName: "Иванов Иван Иванович", Number: "1234 567890"},
		},
	}

	data, err := json.Marshal(author)
	require.NoError(t, err)

	var decoded Author
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Docs.RuPassport)
	assert.Equal(t, "1234 567890", decoded.Docs.RuPassport.Number)
}

func TestProfileComparable(t *testing.T) {
	a := NewProfile()
	b := NewProfile()
	assert.True(t, a == b)

	b.RuPassport.Data.Number = "1234 567890"
	assert.False(t, a == b)
}
