package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrNoFace is returned when the recognition service found no usable face
// in the submitted image.
var ErrNoFace = errors.New("no face detected in image")

// Client communicates with the external face recognition service. The
// service owns the embeddings; this side only ever sees opaque encoding ids.
type Client interface {
	EncodeFace(ctx context.Context, imageURL string, personID uuid.UUID) (*EncodeResult, error)
	TriggerProcessPhoto(ctx context.Context, photoID uuid.UUID) error
	TriggerReprocessWedding(ctx context.Context, weddingID, userID uuid.UUID) error
	IsAvailable(ctx context.Context) bool
}

// EncodeResult is the outcome of enrolling a face sample.
type EncodeResult struct {
	FaceEncodingID string
	Quality        float64
}

type encodeRequest struct {
	ImageURL string `json:"image_url"`
	PersonID string `json:"person_id"`
}

type encodeResponse struct {
	Success        bool    `json:"success"`
	FaceEncodingID string  `json:"face_encoding_id"`
	Quality        float64 `json:"quality"`
	FaceDetected   bool    `json:"face_detected"`
	Error          string  `json:"error,omitempty"`
}

type processPhotoRequest struct {
	PhotoID string `json:"photo_id"`
}

type reprocessRequest struct {
	WeddingID string `json:"wedding_id"`
	UserID    string `json:"user_id"`
}

type triggerResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model"`
	Version string `json:"version"`
}

// HTTPClient is the production implementation against the recognition
// service's REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// EncodeFace submits a face sample image and returns the encoding id the
// recognition service issued for it.
func (c *HTTPClient) EncodeFace(ctx context.Context, imageURL string, personID uuid.UUID) (*EncodeResult, error) {
	reqBody := encodeRequest{
		ImageURL: imageURL,
		PersonID: personID.String(),
	}

	var result encodeResponse
	if err := c.postJSON(ctx, "/encode", reqBody, &result); err != nil {
		return nil, err
	}

	if !result.Success {
		if !result.FaceDetected {
			return nil, fmt.Errorf("%w: %s", ErrNoFace, result.Error)
		}
		return nil, fmt.Errorf("face encoding failed: %s", result.Error)
	}

	return &EncodeResult{
		FaceEncodingID: result.FaceEncodingID,
		Quality:        result.Quality,
	}, nil
}

// TriggerProcessPhoto nudges the recognition service to pull work. The
// queue remains the source of truth; a lost trigger only delays pickup.
func (c *HTTPClient) TriggerProcessPhoto(ctx context.Context, photoID uuid.UUID) error {
	var result triggerResponse
	if err := c.postJSON(ctx, "/process-photo", processPhotoRequest{PhotoID: photoID.String()}, &result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("process trigger rejected: %s", result.Error)
	}
	return nil
}

func (c *HTTPClient) TriggerReprocessWedding(ctx context.Context, weddingID, userID uuid.UUID) error {
	reqBody := reprocessRequest{
		WeddingID: weddingID.String(),
		UserID:    userID.String(),
	}
	var result triggerResponse
	if err := c.postJSON(ctx, "/reprocess-wedding", reqBody, &result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("reprocess trigger rejected: %s", result.Error)
	}
	return nil
}

func (c *HTTPClient) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var result healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false
	}
	return result.Status == "ok"
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call recognition API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recognition API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
