package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/logger"
)

type docsFixture struct {
	releases  *fakeReleaseStore
	processed *fakeProcessedStore
	sheets    *fakeSheets
	svc       *DocsService
}

func newDocsFixture(req *models.ReleaseRequest) *docsFixture {
	log := logger.New("error", "text")
	f := &docsFixture{
		releases:  &fakeReleaseStore{req: req},
		processed: newFakeProcessedStore(),
		sheets:    newFakeSheets(),
	}
	f.svc = NewDocsService(
		f.releases, f.processed, f.sheets,
		func() Locker { return &fakeLock{} }, "Docs", log,
	)
	return f
}

func docsRequest(id string) *models.ReleaseRequest {
	req := classifierRequest("Иванов Иван Иванович", "", "",
		docsAuthor("Иванов Иван Иванович", models.PassportRu))
	req.ID = id
	req.Username = "artist1"
	req.Date = "2024-03-07"
	req.Imprint = "DNK"
	req.UserData = signerProfile()
	return req
}

func TestDocsAppendsRowAndSetsFlag(t *testing.T) {
	f := newDocsFixture(docsRequest("req1"))

	require.NoError(t, f.svc.Run(context.Background(), "req1"))

	rows := f.sheets.rows["Docs"]
	require.Len(t, rows, 1)
	require.Len(t, rows[0], docsWidth)
	assert.True(t, f.releases.inDocsSheet)
	assert.False(t, f.releases.inDeliverySheet, "docs action must not touch the delivery flag")
}

func TestDocsCoverPlaceholderWithoutSnapshot(t *testing.T) {
	f := newDocsFixture(docsRequest("req1"))

	require.NoError(t, f.svc.Run(context.Background(), "req1"))

	rows := f.sheets.rows["Docs"]
	require.Len(t, rows, 1)
	assert.Equal(t, coverPlaceholder, rows[0][docsColCoverLink])
}

func TestDocsReusesSnapshotCoverLink(t *testing.T) {
	f := newDocsFixture(docsRequest("req1"))
	f.processed.byID["req1"] = &models.ProcessedRequest{
		ID:        "req1",
		Username:  "artist1",
		Date:      "2024-03-07",
		CoverLink: "https://public.example/cover.jpg",
		UserData:  signerProfile(),
	}

	require.NoError(t, f.svc.Run(context.Background(), "req1"))

	rows := f.sheets.rows["Docs"]
	assert.Equal(t, "https://public.example/cover.jpg", rows[0][docsColCoverLink])
}

func TestDocsProfileChangeDetection(t *testing.T) {
	// Identical snapshots: unchanged
	f := newDocsFixture(docsRequest("req2"))
	f.processed.byID["req1"] = &models.ProcessedRequest{
		ID: "req1", Username: "artist1", Date: "2024-01-01", UserData: signerProfile(),
	}
	require.NoError(t, f.svc.Run(context.Background(), "req2"))
	assert.Equal(t, "no", f.sheets.rows["Docs"][0][docsColProfileChanged])

	// A single field difference flips the flag
	changed := signerProfile()
	changed.SelfEmployed.BankName = "Another Bank"
	f = newDocsFixture(docsRequest("req2"))
	f.processed.byID["req1"] = &models.ProcessedRequest{
		ID: "req1", Username: "artist1", Date: "2024-01-01", UserData: changed,
	}
	require.NoError(t, f.svc.Run(context.Background(), "req2"))
	assert.Equal(t, "yes", f.sheets.rows["Docs"][0][docsColProfileChanged])
}

func TestDocsProfileChangeSkipsOwnDeliverySnapshot(t *testing.T) {
	prior := signerProfile()
	prior.SelfEmployed.BankName = "Old Bank"

	// Delivery already ran for this request, so its own snapshot is stored
	// with the newest date; the comparison must reach past it to the prior
	// release with the drifted profile
	f := newDocsFixture(docsRequest("req6"))
	f.processed.byID["req6"] = &models.ProcessedRequest{
		ID: "req6", Username: "artist1", Date: "2024-03-07", UserData: signerProfile(),
	}
	f.processed.byID["prior"] = &models.ProcessedRequest{
		ID: "prior", Username: "artist1", Date: "2024-01-01", UserData: prior,
	}

	require.NoError(t, f.svc.Run(context.Background(), "req6"))
	assert.Equal(t, "yes", f.sheets.rows["Docs"][0][docsColProfileChanged])
}

func TestDocsProfileChangeUsesLatestSnapshot(t *testing.T) {
	older := signerProfile()
	older.SelfEmployed.BankName = "Old Bank"

	f := newDocsFixture(docsRequest("req3"))
	f.processed.byID["old"] = &models.ProcessedRequest{
		ID: "old", Username: "artist1", Date: "2023-01-01", UserData: older,
	}
	f.processed.byID["new"] = &models.ProcessedRequest{
		ID: "new", Username: "artist1", Date: "2024-02-01", UserData: signerProfile(),
	}

	require.NoError(t, f.svc.Run(context.Background(), "req3"))
	assert.Equal(t, "no", f.sheets.rows["Docs"][0][docsColProfileChanged])
}

func TestDocsCapacityErrorAbortsWholeAction(t *testing.T) {
	req := docsRequest("req4")
	req.Authors = []models.Author{
		docsAuthor("A One", models.PassportRu),
		docsAuthor("B Two", models.PassportRu),
		docsAuthor("C Three", models.PassportRu),
		docsAuthor("D Four", models.PassportRu),
	}
	data := req.Data.(*models.NewMusicRelease)
	data.Tracks[0].MusicAuthorsNames = "A One, B Two, C Three, D Four"

	f := newDocsFixture(req)
	err := f.svc.Run(context.Background(), "req4")

	var capErr *models.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Empty(t, f.sheets.rows, "all-or-nothing: no rows on classification failure")
	assert.False(t, f.releases.inDocsSheet)
}

func TestDocsValidatesDateAndImprint(t *testing.T) {
	req := docsRequest("req5")
	req.Imprint = ""

	f := newDocsFixture(req)
	err := f.svc.Run(context.Background(), "req5")

	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, f.sheets.rows)
}
