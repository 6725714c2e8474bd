package services

import "errors"

var (
	// ErrInvalidInput covers malformed request data, wrong MIME types,
	// storage-key/namespace mismatches and recognition rejections.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPermissionDenied means the requester is neither host nor an
	// upload-permitted guest of the wedding.
	ErrPermissionDenied = errors.New("permission denied")

	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable means the recognition service or storage
	// gateway failed on a synchronous critical-path call.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrAttemptsExhausted means a queue entry reached its max attempts.
	ErrAttemptsExhausted = errors.New("processing attempts exhausted")

	ErrNoFaceDetected = errors.New("no face detected")
)
