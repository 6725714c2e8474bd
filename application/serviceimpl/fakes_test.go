package serviceimpl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-gallery/domain/models"
	"wedding-gallery/infrastructure/recognition"
)

// In-memory fakes for the repository and gateway interfaces. Shared by the
// service tests in this package.

type fakePhotoRepo struct {
	mu     sync.Mutex
	photos map[uuid.UUID]*models.Photo
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: make(map[uuid.UUID]*models.Photo)}
}

func (r *fakePhotoRepo) Create(ctx context.Context, photo *models.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.photos {
		if p.StorageKey == photo.StorageKey {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *photo
	cp.CreatedAt = time.Now()
	r.photos[photo.ID] = &cp
	return nil
}

func (r *fakePhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.photos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePhotoRepo) GetByStorageKey(ctx context.Context, key string) (*models.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.photos {
		if p.StorageKey == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePhotoRepo) GetByWedding(ctx context.Context, weddingID uuid.UUID, eventID *uuid.UUID, offset, limit int) ([]models.Photo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Photo
	for _, p := range r.photos {
		if p.WeddingID != weddingID || !p.IsPublic || !p.IsApproved {
			continue
		}
		if eventID != nil && (p.EventID == nil || *p.EventID != *eventID) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	if offset > len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *fakePhotoRepo) GetFailedByWedding(ctx context.Context, weddingID uuid.UUID, limit int) ([]models.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Photo
	for _, p := range r.photos {
		if p.WeddingID == weddingID && p.ProcessingStatus == models.PhotoStatusFailed {
			out = append(out, *p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakePhotoRepo) UpdateProcessingResult(ctx context.Context, id uuid.UUID, status models.PhotoProcessingStatus, facesDetected int, errMsg string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.photos[id]
	if !ok {
		return 0, nil
	}
	if p.ProcessingStatus != models.PhotoStatusPending && p.ProcessingStatus != models.PhotoStatusProcessing {
		return 0, nil
	}
	p.ProcessingStatus = status
	p.FacesDetected = facesDetected
	p.ProcessingError = errMsg
	if status == models.PhotoStatusCompleted || status == models.PhotoStatusFailed {
		now := time.Now()
		p.ProcessedAt = &now
	}
	return 1, nil
}

func (r *fakePhotoRepo) ResetToPending(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.photos[id]; ok {
		p.ProcessingStatus = models.PhotoStatusPending
		p.ProcessingError = ""
		p.ProcessedAt = nil
	}
	return nil
}

func (r *fakePhotoRepo) CountByWedding(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.photos {
		if p.WeddingID == weddingID {
			n++
		}
	}
	return n, nil
}

func (r *fakePhotoRepo) CountByWeddingAndStatus(ctx context.Context, weddingID uuid.UUID, status models.PhotoProcessingStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.photos {
		if p.WeddingID == weddingID && p.ProcessingStatus == status {
			n++
		}
	}
	return n, nil
}

type fakeQueueRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*models.AiQueueEntry
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{entries: make(map[uuid.UUID]*models.AiQueueEntry)}
}

func (r *fakeQueueRepo) Create(ctx context.Context, entry *models.AiQueueEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.PhotoID == entry.PhotoID {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *entry
	cp.CreatedAt = time.Now()
	r.entries[entry.ID] = &cp
	return nil
}

func (r *fakeQueueRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AiQueueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeQueueRepo) GetByPhoto(ctx context.Context, photoID uuid.UUID) (*models.AiQueueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.PhotoID == photoID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQueueRepo) ClaimNext(ctx context.Context) (*models.AiQueueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var candidates []*models.AiQueueEntry
	for _, e := range r.entries {
		if e.Status == models.QueueStatusQueued {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	next := candidates[0]
	next.Status = models.QueueStatusProcessing
	now := time.Now()
	next.StartedAt = &now
	cp := *next
	return &cp, nil
}

func (r *fakeQueueRepo) MarkCompleted(ctx context.Context, id uuid.UUID, processingMs int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.Status != models.QueueStatusProcessing {
		return gorm.ErrRecordNotFound
	}
	e.Status = models.QueueStatusCompleted
	e.Attempts++
	e.ProcessingMs = processingMs
	now := time.Now()
	e.CompletedAt = &now
	return nil
}

func (r *fakeQueueRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, processingMs int64) (models.QueueStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	e.Attempts++
	e.ErrorMessage = errMsg
	e.ProcessingMs = processingMs
	if e.Attempts >= e.MaxAttempts {
		e.Status = models.QueueStatusFailed
		now := time.Now()
		e.CompletedAt = &now
	} else {
		e.Status = models.QueueStatusQueued
		e.StartedAt = nil
	}
	return e.Status, nil
}

func (r *fakeQueueRepo) RequeueForPhoto(ctx context.Context, photoID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.PhotoID == photoID && e.Status == models.QueueStatusFailed {
			e.Status = models.QueueStatusQueued
			e.Attempts = 0
			e.ErrorMessage = ""
			e.StartedAt = nil
			e.CompletedAt = nil
		}
	}
	return nil
}

func (r *fakeQueueRepo) ResetStuckProcessing(ctx context.Context, threshold time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-threshold)
	var n int64
	for _, e := range r.entries {
		if e.Status == models.QueueStatusProcessing && e.StartedAt != nil && e.StartedAt.Before(cutoff) {
			e.Status = models.QueueStatusQueued
			e.StartedAt = nil
			n++
		}
	}
	return n, nil
}

func (r *fakeQueueRepo) CountByWeddingAndStatus(ctx context.Context, weddingID uuid.UUID, status models.QueueStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.entries {
		if e.WeddingID == weddingID && e.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeGuestRepo struct {
	mu     sync.Mutex
	guests map[uuid.UUID]*models.Guest
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{guests: make(map[uuid.UUID]*models.Guest)}
}

func (r *fakeGuestRepo) add(g models.Guest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := g
	r.guests[g.ID] = &cp
}

func (r *fakeGuestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGuestRepo) GetByWeddingAndUser(ctx context.Context, weddingID, userID uuid.UUID) (*models.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.guests {
		if g.WeddingID == weddingID && g.UserID == userID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeGuestRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Guest
	for _, g := range r.guests {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGuestRepo) GetEncodingsByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Guest
	for _, g := range r.guests {
		if g.WeddingID == weddingID && g.FaceEncodingID != "" {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGuestRepo) UpdateFaceEncoding(ctx context.Context, guestID uuid.UUID, encodingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guests[guestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	g.FaceEncodingID = encodingID
	g.FaceSampleProvided = true
	g.PhotosProcessed = false
	return nil
}

func (r *fakeGuestRepo) MarkPhotosProcessed(ctx context.Context, weddingID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.guests {
		if g.WeddingID == weddingID && g.UserID == userID {
			g.PhotosProcessed = true
		}
	}
	return nil
}

func (r *fakeGuestRepo) CountByWedding(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, g := range r.guests {
		if g.WeddingID == weddingID {
			n++
		}
	}
	return n, nil
}

func (r *fakeGuestRepo) CountByWeddingAndRSVP(ctx context.Context, weddingID uuid.UUID, status models.RSVPStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, g := range r.guests {
		if g.WeddingID == weddingID && g.RSVPStatus == status {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) add(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := u
	r.users[u.ID] = &cp
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateFaceEncoding(ctx context.Context, userID uuid.UUID, encodingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.FaceEncodingID = encodingID
	u.FaceSampleProvided = true
	return nil
}

type fakeWeddingRepo struct {
	mu       sync.Mutex
	weddings map[uuid.UUID]*models.Wedding
	events   map[uuid.UUID]uuid.UUID // eventID -> weddingID
}

func newFakeWeddingRepo() *fakeWeddingRepo {
	return &fakeWeddingRepo{
		weddings: make(map[uuid.UUID]*models.Wedding),
		events:   make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *fakeWeddingRepo) add(w models.Wedding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := w
	r.weddings[w.ID] = &cp
}

func (r *fakeWeddingRepo) addEvent(weddingID, eventID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[eventID] = weddingID
}

func (r *fakeWeddingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Wedding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weddings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWeddingRepo) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for _, w := range r.weddings {
		if w.IsActive {
			ids = append(ids, w.ID)
		}
	}
	return ids, nil
}

func (r *fakeWeddingRepo) EventExists(ctx context.Context, weddingID, eventID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.events[eventID]
	return ok && owner == weddingID, nil
}

func (r *fakeWeddingRepo) CountEvents(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, owner := range r.events {
		if owner == weddingID {
			n++
		}
	}
	return n, nil
}

type fakeSampleRepo struct {
	mu      sync.Mutex
	samples []*models.FaceSample
}

func newFakeSampleRepo() *fakeSampleRepo {
	return &fakeSampleRepo{}
}

func (r *fakeSampleRepo) Create(ctx context.Context, sample *models.FaceSample) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sample
	r.samples = append(r.samples, &cp)
	return nil
}

func (r *fakeSampleRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.FaceSample, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FaceSample
	for _, s := range r.samples {
		if s.UserID != nil && *s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSampleRepo) ClearPrimary(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.samples {
		if s.UserID != nil && *s.UserID == userID {
			s.IsPrimary = false
		}
	}
	return nil
}

type fakeTagRepo struct {
	mu   sync.Mutex
	tags []*models.PhotoTag

	// photos is consulted for GetPhotosForUser joins
	photos *fakePhotoRepo
}

func newFakeTagRepo(photos *fakePhotoRepo) *fakeTagRepo {
	return &fakeTagRepo{photos: photos}
}

func (r *fakeTagRepo) Create(ctx context.Context, tag *models.PhotoTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tag
	r.tags = append(r.tags, &cp)
	return nil
}

func (r *fakeTagRepo) GetByPhoto(ctx context.Context, photoID uuid.UUID) ([]models.PhotoTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PhotoTag
	for _, t := range r.tags {
		if t.PhotoID == photoID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) GetPhotosForUser(ctx context.Context, userID uuid.UUID, weddingID *uuid.UUID, offset, limit int) ([]models.Photo, int64, error) {
	r.mu.Lock()
	photoIDs := make(map[uuid.UUID]bool)
	for _, t := range r.tags {
		if t.UserID != nil && *t.UserID == userID && !t.Rejected {
			photoIDs[t.PhotoID] = true
		}
	}
	r.mu.Unlock()

	var out []models.Photo
	for id := range photoIDs {
		p, err := r.photos.GetByID(ctx, id)
		if err != nil {
			continue
		}
		if !p.IsPublic || !p.IsApproved {
			continue
		}
		if weddingID != nil && p.WeddingID != *weddingID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	if offset > len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *fakeTagRepo) CountByWedding(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tags {
		if t.WeddingID == weddingID {
			n++
		}
	}
	return n, nil
}

type fakeStatsRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.WeddingStats
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{rows: make(map[uuid.UUID]*models.WeddingStats)}
}

func (r *fakeStatsRepo) row(weddingID uuid.UUID) *models.WeddingStats {
	if s, ok := r.rows[weddingID]; ok {
		return s
	}
	s := &models.WeddingStats{ID: uuid.New(), WeddingID: weddingID}
	r.rows[weddingID] = s
	return s
}

func (r *fakeStatsRepo) EnsureExists(ctx context.Context, weddingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.row(weddingID)
	return nil
}

func (r *fakeStatsRepo) GetByWedding(ctx context.Context, weddingID uuid.UUID) (*models.WeddingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[weddingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStatsRepo) IncrementPhotoUploaded(ctx context.Context, weddingID uuid.UUID, pending bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.row(weddingID)
	s.TotalPhotos++
	if pending {
		s.PhotosPending++
	}
	return nil
}

func (r *fakeStatsRepo) IncrementPhotoPending(ctx context.Context, weddingID uuid.UUID, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.row(weddingID)
	s.PhotosPending += delta
	if s.PhotosPending < 0 {
		s.PhotosPending = 0
	}
	return nil
}

func (r *fakeStatsRepo) MarkPhotoProcessed(ctx context.Context, weddingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.row(weddingID)
	if s.PhotosPending > 0 {
		s.PhotosPending--
	}
	s.PhotosProcessed++
	return nil
}

func (r *fakeStatsRepo) MarkPhotoFailed(ctx context.Context, weddingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.row(weddingID)
	if s.PhotosPending > 0 {
		s.PhotosPending--
	}
	return nil
}

func (r *fakeStatsRepo) IncrementFaceTags(ctx context.Context, weddingID uuid.UUID, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.row(weddingID)
	s.TotalFaceTags += delta
	if s.TotalFaceTags < 0 {
		s.TotalFaceTags = 0
	}
	return nil
}

func (r *fakeStatsRepo) Replace(ctx context.Context, stats *models.WeddingStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.row(stats.WeddingID)
	s.TotalPhotos = stats.TotalPhotos
	s.PhotosPending = stats.PhotosPending
	s.PhotosProcessed = stats.PhotosProcessed
	s.TotalFaceTags = stats.TotalFaceTags
	s.GuestsTotal = stats.GuestsTotal
	s.GuestsAccepted = stats.GuestsAccepted
	s.GuestsDeclined = stats.GuestsDeclined
	s.EventCount = stats.EventCount
	return nil
}

type fakeStorage struct{}

func (fakeStorage) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return "https://storage.test/" + key + "?sig=abc", nil
}

func (fakeStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

type fakeRecognizer struct {
	mu sync.Mutex

	encodeResult *recognition.EncodeResult
	encodeErr    error

	processTriggers   []uuid.UUID
	reprocessTriggers [][2]uuid.UUID
}

func (f *fakeRecognizer) EncodeFace(ctx context.Context, imageURL string, personID uuid.UUID) (*recognition.EncodeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.encodeErr != nil {
		return nil, f.encodeErr
	}
	return f.encodeResult, nil
}

func (f *fakeRecognizer) TriggerProcessPhoto(ctx context.Context, photoID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processTriggers = append(f.processTriggers, photoID)
	return nil
}

func (f *fakeRecognizer) TriggerReprocessWedding(ctx context.Context, weddingID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reprocessTriggers = append(f.reprocessTriggers, [2]uuid.UUID{weddingID, userID})
	return nil
}

func (f *fakeRecognizer) IsAvailable(ctx context.Context) bool {
	return true
}
