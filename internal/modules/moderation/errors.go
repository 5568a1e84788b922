package moderation

import "errors"

var (
	ErrTargetNotFound = errors.New("ban target not found")
	ErrInvalidBan     = errors.New("invalid ban parameters")
)
