package model

import "errors"

// Post error codes
const (
	ErrCodePostNotFound  = "PST001"
	ErrCodeNotOwner      = "PST002"
	ErrCodeInvalidInput  = "PST003"
	ErrCodeUploadFailed  = "PST004"
	ErrCodeStorageFailed = "PST005"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("post does not belong to this tenant")
	ErrUploadFailed = errors.New("cover upload failed")
)

type PostError struct {
	Code    string
	Message string
	Err     error
}

func (e *PostError) Error() string {
	return e.Message
}

func (e *PostError) Unwrap() error {
	return e.Err
}

func NewPostNotFoundError() *PostError {
	return &PostError{
		Code:    ErrCodePostNotFound,
		Message: "Post not found",
		Err:     ErrPostNotFound,
	}
}

func NewNotOwnerError() *PostError {
	return &PostError{
		Code:    ErrCodeNotOwner,
		Message: "Post does not belong to this publication",
		Err:     ErrNotOwner,
	}
}

func NewUploadFailedError() *PostError {
	return &PostError{
		Code:    ErrCodeUploadFailed,
		Message: "Failed to upload cover image",
		Err:     ErrUploadFailed,
	}
}
