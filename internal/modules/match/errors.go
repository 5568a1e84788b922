package match

import "errors"

var (
	ErrNotFound       = errors.New("match not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrSelfMatch      = errors.New("cannot match with yourself")
	ErrInvalidType    = errors.New("invalid match type")
	ErrInvalidStatus  = errors.New("invalid match status")
	ErrDuplicateMatch = errors.New("a pending match already exists for this pair")
	ErrNotParticipant = errors.New("user is not a participant of this match")
	ErrEmptyMessage   = errors.New("message text cannot be empty")
	ErrMessageTooLong = errors.New("message text too long")
	ErrOnlyReceiver   = errors.New("only the receiver can respond to a match request")
)
