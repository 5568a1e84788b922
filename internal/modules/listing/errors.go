package listing

import "errors"

var (
	ErrNotFound          = errors.New("listing not found")
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrAlreadyPublishing = errors.New("user already publishes a listing")
	ErrNotPublisher      = errors.New("only the publisher can edit this listing")
)
