package serviceimpl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-gallery/domain/models"
)

func TestReconcileWedding(t *testing.T) {
	ctx := context.Background()

	photos := newFakePhotoRepo()
	tags := newFakeTagRepo(photos)
	guests := newFakeGuestRepo()
	weddings := newFakeWeddingRepo()
	stats := newFakeStatsRepo()

	weddingID := uuid.New()
	weddings.add(models.Wedding{ID: weddingID, HostID: uuid.New(), IsActive: true})
	weddings.addEvent(weddingID, uuid.New())
	weddings.addEvent(weddingID, uuid.New())

	addPhoto := func(status models.PhotoProcessingStatus) uuid.UUID {
		id := uuid.New()
		require.NoError(t, photos.Create(ctx, &models.Photo{
			ID:               id,
			WeddingID:        weddingID,
			UploaderID:       uuid.New(),
			StorageKey:       "weddings/" + weddingID.String() + "/" + uuid.NewString() + ".jpg",
			OriginalURL:      "https://cdn.test/p.jpg",
			ProcessingStatus: status,
			IsPublic:         true,
			IsApproved:       true,
		}))
		return id
	}

	addPhoto(models.PhotoStatusPending)
	addPhoto(models.PhotoStatusProcessing)
	done := addPhoto(models.PhotoStatusCompleted)
	addPhoto(models.PhotoStatusFailed)

	userID := uuid.New()
	require.NoError(t, tags.Create(ctx, &models.PhotoTag{ID: uuid.New(), PhotoID: done, WeddingID: weddingID, UserID: &userID}))
	require.NoError(t, tags.Create(ctx, &models.PhotoTag{ID: uuid.New(), PhotoID: done, WeddingID: weddingID}))

	guests.add(models.Guest{ID: uuid.New(), WeddingID: weddingID, UserID: uuid.New(), RSVPStatus: models.RSVPAccepted})
	guests.add(models.Guest{ID: uuid.New(), WeddingID: weddingID, UserID: uuid.New(), RSVPStatus: models.RSVPAccepted})
	guests.add(models.Guest{ID: uuid.New(), WeddingID: weddingID, UserID: uuid.New(), RSVPStatus: models.RSVPDeclined})
	guests.add(models.Guest{ID: uuid.New(), WeddingID: weddingID, UserID: uuid.New(), RSVPStatus: models.RSVPPending})

	// Seed the counters with drifted values; reconciliation must fix them
	require.NoError(t, stats.EnsureExists(ctx, weddingID))
	require.NoError(t, stats.IncrementPhotoUploaded(ctx, weddingID, true))
	require.NoError(t, stats.IncrementFaceTags(ctx, weddingID, 40))

	svc := NewStatsService(weddings, photos, tags, guests, stats)
	require.NoError(t, svc.ReconcileWedding(ctx, weddingID))

	row, err := stats.GetByWedding(ctx, weddingID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), row.TotalPhotos)
	assert.Equal(t, int64(2), row.PhotosPending, "pending + processing count as pending")
	assert.Equal(t, int64(1), row.PhotosProcessed)
	assert.Equal(t, int64(2), row.TotalFaceTags)
	assert.Equal(t, int64(4), row.GuestsTotal)
	assert.Equal(t, int64(2), row.GuestsAccepted)
	assert.Equal(t, int64(1), row.GuestsDeclined)
	assert.Equal(t, int64(2), row.EventCount)
}

func TestReconcileAll(t *testing.T) {
	ctx := context.Background()

	photos := newFakePhotoRepo()
	tags := newFakeTagRepo(photos)
	guests := newFakeGuestRepo()
	weddings := newFakeWeddingRepo()
	stats := newFakeStatsRepo()

	active := uuid.New()
	inactive := uuid.New()
	weddings.add(models.Wedding{ID: active, HostID: uuid.New(), IsActive: true})
	weddings.add(models.Wedding{ID: inactive, HostID: uuid.New(), IsActive: false})

	svc := NewStatsService(weddings, photos, tags, guests, stats)
	require.NoError(t, svc.ReconcileAll(ctx))

	_, err := stats.GetByWedding(ctx, active)
	assert.NoError(t, err, "active wedding gets a stats row")

	_, err = stats.GetByWedding(ctx, inactive)
	assert.Error(t, err, "inactive wedding is skipped")
}
