package dto

import (
	"wedding-gallery/domain/models"
	"wedding-gallery/domain/services"
)

func ToPhotoResponse(p *models.Photo) PhotoResponse {
	return PhotoResponse{
		ID:               p.ID,
		WeddingID:        p.WeddingID,
		EventID:          p.EventID,
		OriginalURL:      p.OriginalURL,
		ThumbnailURL:     p.ThumbnailURL,
		Caption:          p.Caption,
		ProcessingStatus: string(p.ProcessingStatus),
		FacesDetected:    p.FacesDetected,
		CreatedAt:        p.CreatedAt,
	}
}

func ToPhotoListResponse(photos []models.Photo, total int64, page, limit int) PhotoListResponse {
	resp := PhotoListResponse{
		Photos: make([]PhotoResponse, len(photos)),
		Total:  total,
		Page:   page,
		Limit:  limit,
	}
	for i := range photos {
		resp.Photos[i] = ToPhotoResponse(&photos[i])
	}
	return resp
}

func ToFaceSampleResponse(s *models.FaceSample) FaceSampleResponse {
	return FaceSampleResponse{
		ID:             s.ID,
		FaceEncodingID: s.FaceEncodingID,
		Quality:        s.Quality,
		IsPrimary:      s.IsPrimary,
		CreatedAt:      s.CreatedAt,
	}
}

func ToUploadCredentialResponse(c *services.UploadCredential) UploadCredentialResponse {
	return UploadCredentialResponse{
		UploadURL:  c.UploadURL,
		StorageKey: c.StorageKey,
		PublicURL:  c.PublicURL,
		ExpiresIn:  c.ExpiresIn,
	}
}
