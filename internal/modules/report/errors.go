package report

import "errors"

var (
	ErrNotFound         = errors.New("report not found")
	ErrReporterNotFound = errors.New("reporter not found")
	ErrTargetNotFound   = errors.New("report target not found")
	ErrInvalidType      = errors.New("invalid report type")
	ErrInvalidIndex     = errors.New("message index out of range")
	ErrMissingIndex     = errors.New("message reports require a message index")
	ErrValidation       = errors.New("invalid report payload")
)
