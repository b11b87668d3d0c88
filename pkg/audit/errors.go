package audit

import "errors"

var (
	ErrEventValidation = errors.New("audit event validation failed")
	ErrStorageFailed   = errors.New("failed to store audit event")
)
