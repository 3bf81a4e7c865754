package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/logger"
)

type memReleaseCRUD struct {
	nextID   int
	requests map[string]*models.ReleaseRequest
}

func newMemReleaseCRUD() *memReleaseCRUD {
	return &memReleaseCRUD{requests: make(map[string]*models.ReleaseRequest)}
}

func (m *memReleaseCRUD) Create(_ context.Context, req *models.ReleaseRequest) (string, error) {
	m.nextID++
	id := "req" + itoa(m.nextID)
	copied := *req
	copied.ID = id
	m.requests[id] = &copied
	return id, nil
}

func (m *memReleaseCRUD) GetByID(_ context.Context, id string) (*models.ReleaseRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (m *memReleaseCRUD) List(_ context.Context, username string, status models.RequestStatus) ([]*models.ReleaseRequest, error) {
	var out []*models.ReleaseRequest
	for _, req := range m.requests {
		if username != "" && req.Username != username {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (m *memReleaseCRUD) Update(_ context.Context, id string, date, imprint, source string, data models.Release, authors []models.Author) error {
	req, ok := m.requests[id]
	if !ok {
		return models.ErrNotFound
	}
	req.Date, req.Imprint, req.Source = date, imprint, source
	req.Data, req.Authors = data, authors
	return nil
}

func (m *memReleaseCRUD) Delete(_ context.Context, id string) error {
	if _, ok := m.requests[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.requests, id)
	return nil
}

func newReleaseFixture() (*ReleaseService, *memReleaseCRUD, *memProfileStore, *memUserStore) {
	releases := newMemReleaseCRUD()
	profiles := newMemProfileStore()
	users := newMemUserStore()
	users.users["artist1"] = &models.User{Username: "artist1", LinkUpload: true}
	users.users["artist2"] = &models.User{Username: "artist2"}
	svc := NewReleaseService(releases, profiles, users, logger.New("error", "text"))
	return svc, releases, profiles, users
}

func newMusicRequest() *models.ReleaseRequest {
	return &models.ReleaseRequest{
		Type: models.ReleaseNewMusic,
		Data: &models.NewMusicRelease{
			Performers: "Some Artist",
			Title:      "Album",
			Tracks:     []models.Track{{Title: "One", WavFileID: "wav1"}},
		},
	}
}

func TestSubmitFreezesProfileSnapshot(t *testing.T) {
	svc, releases, profiles, _ := newReleaseFixture()
	ctx := context.Background()

	profiles.profiles["artist1"] = fullProfile()

	id, err := svc.Submit(ctx, "artist1", newMusicRequest())
	require.NoError(t, err)

	// Later profile edits must not leak into the stored snapshot
	edited := fullProfile()
	edited.SelfEmployed.BankName = "Another Bank"
	profiles.profiles["artist1"] = edited

	stored := releases.requests[id]
	assert.Equal(t, "Bank", stored.UserData.SelfEmployed.BankName)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.False(t, stored.InDeliverySheet)
	assert.False(t, stored.InDocsSheet)
}

func TestSubmitRequiresLinkUploadPermission(t *testing.T) {
	svc, _, _, _ := newReleaseFixture()
	ctx := context.Background()

	req := newMusicRequest()
	req.Source = "https://cloud.example/album"
	req.Data.(*models.NewMusicRelease).Tracks[0].WavFileID = ""

	_, err := svc.Submit(ctx, "artist2", req)
	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.Submit(ctx, "artist1", req)
	assert.NoError(t, err)
}

func TestSubmitRejectsMixedSourcing(t *testing.T) {
	svc, _, _, _ := newReleaseFixture()

	req := newMusicRequest()
	req.Source = "https://cloud.example/album"

	_, err := svc.Submit(context.Background(), "artist1", req)
	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Error(), "mixes cloud and file sourcing")
}

func TestSubmitBackCatalogSourceIsMetadata(t *testing.T) {
	svc, releases, _, _ := newReleaseFixture()

	// artist2 has no link-upload permission; the payload's original-distribution
	// source must not trip the cloud-sourcing gate
	req := &models.ReleaseRequest{
		Type: models.ReleaseBackCatalog,
		Data: &models.BackCatalogRelease{
			Performers: "Some Artist",
			Title:      "Old Single",
			UPC:        "123456789012",
			Date:       "2019-05-01",
			Source:     "Old Label Records",
			Tracks:     []models.Track{{Title: "Only Track", WavFileID: "wav1"}},
		},
	}

	id, err := svc.Submit(context.Background(), "artist2", req)
	require.NoError(t, err)
	assert.False(t, releases.requests[id].CloudSourced())
}

func TestUpdateKeepsTypeAndUsername(t *testing.T) {
	svc, releases, _, _ := newReleaseFixture()
	ctx := context.Background()

	id, err := svc.Submit(ctx, "artist1", newMusicRequest())
	require.NoError(t, err)

	merged, err := svc.Update(ctx, id, &models.ReleaseRequest{Date: "2024-03-07", Imprint: "DNK"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07", merged.Date)
	assert.Equal(t, "artist1", merged.Username)
	assert.Equal(t, models.ReleaseNewMusic, merged.Type)

	merged, err = svc.Update(ctx, id, &models.ReleaseRequest{Source: "https://cloud.example/album"})
	require.NoError(t, err)
	assert.Equal(t, "https://cloud.example/album", merged.Source)
	assert.Equal(t, "2024-03-07", merged.Date, "unpatched fields keep their values")

	_, err = svc.Update(ctx, id, &models.ReleaseRequest{
		Data: &models.ClipRelease{Title: "Clip", ReleaseLink: "https://x"},
	})
	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, models.ReleaseNewMusic, releases.requests[id].Type)
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _, _, _ := newReleaseFixture()
	_, err := svc.Update(context.Background(), "missing", &models.ReleaseRequest{Date: "2024-01-01"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
