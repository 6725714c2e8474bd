package serviceimpl

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-gallery/domain/models"
	"wedding-gallery/domain/services"
)

type uploadFixture struct {
	photos   *fakePhotoRepo
	queue    *fakeQueueRepo
	guests   *fakeGuestRepo
	weddings *fakeWeddingRepo
	stats    *fakeStatsRepo

	svc services.UploadService

	wedding models.Wedding
	hostID  uuid.UUID
}

func newUploadFixture(t *testing.T, autoTagging bool) *uploadFixture {
	t.Helper()

	f := &uploadFixture{
		photos:   newFakePhotoRepo(),
		queue:    newFakeQueueRepo(),
		guests:   newFakeGuestRepo(),
		weddings: newFakeWeddingRepo(),
		stats:    newFakeStatsRepo(),
		hostID:   uuid.New(),
	}
	f.wedding = models.Wedding{
		ID:          uuid.New(),
		HostID:      f.hostID,
		Title:       "Test Wedding",
		AutoTagging: autoTagging,
		IsActive:    true,
	}
	f.weddings.add(f.wedding)

	f.svc = NewUploadService(f.photos, f.queue, f.guests, f.weddings, f.stats, fakeStorage{}, nil, 15*time.Minute)
	return f
}

func TestRequestUploadCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("host gets namespaced credential", func(t *testing.T) {
		f := newUploadFixture(t, true)

		cred, err := f.svc.RequestUploadCredential(ctx, f.wedding.ID, "My Photo.jpg", "image/jpeg", f.hostID)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(cred.StorageKey, "weddings/"+f.wedding.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(cred.StorageKey, "_My_Photo.jpg"))
		assert.Contains(t, cred.UploadURL, cred.StorageKey)
		assert.Equal(t, 900, cred.ExpiresIn)
	})

	t.Run("rejects non-image content type", func(t *testing.T) {
		f := newUploadFixture(t, true)

		_, err := f.svc.RequestUploadCredential(ctx, f.wedding.ID, "doc.pdf", "application/pdf", f.hostID)
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		f := newUploadFixture(t, true)

		_, err := f.svc.RequestUploadCredential(ctx, f.wedding.ID, "a.jpg", "image/jpeg", uuid.New())
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("guest without upload permission is denied", func(t *testing.T) {
		f := newUploadFixture(t, true)
		guestUser := uuid.New()
		f.guests.add(models.Guest{
			ID:        uuid.New(),
			WeddingID: f.wedding.ID,
			UserID:    guestUser,
			CanUpload: false,
		})

		_, err := f.svc.RequestUploadCredential(ctx, f.wedding.ID, "a.jpg", "image/jpeg", guestUser)
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("unknown wedding", func(t *testing.T) {
		f := newUploadFixture(t, true)

		_, err := f.svc.RequestUploadCredential(ctx, uuid.New(), "a.jpg", "image/jpeg", f.hostID)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestConfirmUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending photo and queue entry", func(t *testing.T) {
		f := newUploadFixture(t, true)
		key := "weddings/" + f.wedding.ID.String() + "/" + uuid.NewString() + "_a.jpg"

		photo, err := f.svc.ConfirmUpload(ctx, f.wedding.ID, services.ConfirmUploadInput{StorageKey: key}, f.hostID)
		require.NoError(t, err)

		assert.Equal(t, models.PhotoStatusPending, photo.ProcessingStatus)
		assert.Equal(t, key, photo.StorageKey)

		entry, err := f.queue.GetByPhoto(ctx, photo.ID)
		require.NoError(t, err)
		assert.Equal(t, models.QueueStatusQueued, entry.Status)
		assert.Equal(t, models.DefaultMaxAttempts, entry.MaxAttempts)

		stats, err := f.stats.GetByWedding(ctx, f.wedding.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.TotalPhotos)
		assert.Equal(t, int64(1), stats.PhotosPending)
	})

	t.Run("auto-tagging disabled skips the queue", func(t *testing.T) {
		f := newUploadFixture(t, false)
		key := "weddings/" + f.wedding.ID.String() + "/" + uuid.NewString() + "_b.jpg"

		photo, err := f.svc.ConfirmUpload(ctx, f.wedding.ID, services.ConfirmUploadInput{StorageKey: key}, f.hostID)
		require.NoError(t, err)

		_, err = f.queue.GetByPhoto(ctx, photo.ID)
		assert.Error(t, err)

		stats, err := f.stats.GetByWedding(ctx, f.wedding.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.TotalPhotos)
		assert.Equal(t, int64(0), stats.PhotosPending)
	})

	t.Run("key outside wedding namespace", func(t *testing.T) {
		f := newUploadFixture(t, true)
		key := "weddings/" + uuid.NewString() + "/stolen.jpg"

		_, err := f.svc.ConfirmUpload(ctx, f.wedding.ID, services.ConfirmUploadInput{StorageKey: key}, f.hostID)
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})

	t.Run("double confirm is rejected", func(t *testing.T) {
		f := newUploadFixture(t, true)
		key := "weddings/" + f.wedding.ID.String() + "/" + uuid.NewString() + "_c.jpg"

		_, err := f.svc.ConfirmUpload(ctx, f.wedding.ID, services.ConfirmUploadInput{StorageKey: key}, f.hostID)
		require.NoError(t, err)

		_, err = f.svc.ConfirmUpload(ctx, f.wedding.ID, services.ConfirmUploadInput{StorageKey: key}, f.hostID)
		assert.ErrorIs(t, err, services.ErrInvalidInput)

		total, err := f.photos.CountByWedding(ctx, f.wedding.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("event must belong to the wedding", func(t *testing.T) {
		f := newUploadFixture(t, true)
		foreignEvent := uuid.New()
		key := "weddings/" + f.wedding.ID.String() + "/" + uuid.NewString() + "_d.jpg"

		_, err := f.svc.ConfirmUpload(ctx, f.wedding.ID, services.ConfirmUploadInput{
			StorageKey: key,
			EventID:    &foreignEvent,
		}, f.hostID)
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})

	t.Run("guest upload records guest id", func(t *testing.T) {
		f := newUploadFixture(t, true)
		guestUser := uuid.New()
		guestID := uuid.New()
		f.guests.add(models.Guest{
			ID:        guestID,
			WeddingID: f.wedding.ID,
			UserID:    guestUser,
			CanUpload: true,
		})
		key := "weddings/" + f.wedding.ID.String() + "/" + uuid.NewString() + "_e.jpg"

		photo, err := f.svc.ConfirmUpload(ctx, f.wedding.ID, services.ConfirmUploadInput{StorageKey: key}, guestUser)
		require.NoError(t, err)
		require.NotNil(t, photo.GuestID)
		assert.Equal(t, guestID, *photo.GuestID)
	})
}

func TestRetryFailedPhotos(t *testing.T) {
	ctx := context.Background()

	t.Run("host requeues terminally failed photos", func(t *testing.T) {
		f := newUploadFixture(t, true)

		photoID := uuid.New()
		require.NoError(t, f.photos.Create(ctx, &models.Photo{
			ID:               photoID,
			WeddingID:        f.wedding.ID,
			UploaderID:       f.hostID,
			StorageKey:       "weddings/" + f.wedding.ID.String() + "/failed.jpg",
			OriginalURL:      "https://cdn.test/failed.jpg",
			ProcessingStatus: models.PhotoStatusFailed,
		}))
		entryID := uuid.New()
		require.NoError(t, f.queue.Create(ctx, &models.AiQueueEntry{
			ID:          entryID,
			PhotoID:     photoID,
			WeddingID:   f.wedding.ID,
			Status:      models.QueueStatusFailed,
			Attempts:    3,
			MaxAttempts: 3,
		}))

		retried, err := f.svc.RetryFailedPhotos(ctx, f.wedding.ID, f.hostID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), retried)

		entry, err := f.queue.GetByID(ctx, entryID)
		require.NoError(t, err)
		assert.Equal(t, models.QueueStatusQueued, entry.Status)
		assert.Equal(t, 0, entry.Attempts)

		photo, err := f.photos.GetByID(ctx, photoID)
		require.NoError(t, err)
		assert.Equal(t, models.PhotoStatusPending, photo.ProcessingStatus)
	})

	t.Run("non-host is denied", func(t *testing.T) {
		f := newUploadFixture(t, true)

		_, err := f.svc.RetryFailedPhotos(ctx, f.wedding.ID, uuid.New())
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "wedding_day_1.jpg", sanitizeFileName("wedding day/1.jpg"))
	assert.Equal(t, "photo.JPG", sanitizeFileName("photo.JPG"))
	assert.Equal(t, "___.png", sanitizeFileName("รูป.png"))
}
