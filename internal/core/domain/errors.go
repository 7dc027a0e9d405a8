package domain

import "errors"

// Sentinel errors returned by services and repositories. The HTTP layer maps
// each one to a deterministic status code in the central error handler.
var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInactiveAccount      = errors.New("account is deactivated")
	ErrForbidden            = errors.New("access forbidden")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrAnswerNotFound       = errors.New("answer not found")
	ErrVoteNotFound         = errors.New("vote not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSelfVote             = errors.New("cannot vote on your own content")
	ErrDuplicateVote        = errors.New("vote already recorded")
	ErrSelfDeactivation     = errors.New("cannot deactivate your own account")
	ErrSelfDeletion         = errors.New("cannot delete your own account")
	ErrBotMissing           = errors.New("ai bot account not found")
)
