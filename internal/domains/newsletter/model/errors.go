package model

import "errors"

// Hard broadcast failures. These mean the task's subject is gone and
// retrying cannot help.
var (
	ErrPostNotFound   = errors.New("broadcast post not found")
	ErrTenantNotFound = errors.New("broadcast tenant not found")
)
