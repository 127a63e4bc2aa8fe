package model

import "errors"

// Subscriber error codes
const (
	ErrCodeInvalidEmail   = "SUB001"
	ErrCodeTenantNotFound = "SUB002"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
)

type SubscriberError struct {
	Code    string
	Message string
	Err     error
}

func (e *SubscriberError) Error() string {
	return e.Message
}

func (e *SubscriberError) Unwrap() error {
	return e.Err
}

func NewInvalidEmailError() *SubscriberError {
	return &SubscriberError{
		Code:    ErrCodeInvalidEmail,
		Message: "Invalid email address",
		Err:     ErrInvalidEmail,
	}
}
