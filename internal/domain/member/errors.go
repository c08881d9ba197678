package member

import "errors"

var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrMemberIDExists    = errors.New("member ID already exists")
	ErrMembershipExpired = errors.New("membership expired")
	ErrInvalidStatus     = errors.New("invalid member status")
)
