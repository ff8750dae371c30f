package leaderboard

import "errors"

// Kind names the reason a request was refused. It is stable and safe to show to clients.
type Kind string

const (
	KindEmptyName      Kind = "EmptyName"
	KindNameTooLong    Kind = "NameTooLong"
	KindInvalidScore   Kind = "InvalidScore"
	KindInvalidLevel   Kind = "InvalidLevel"
	KindTooSoon        Kind = "TooSoon"
	KindStorageFailure Kind = "StorageFailure"
	KindNotPermitted   Kind = "OperationNotPermitted"
	KindUnknown        Kind = "Unknown"
)

var (
	ErrEmptyName      = errors.New("name is required")
	ErrNameTooLong    = errors.New("name cannot be longer than 20 characters")
	ErrInvalidScore   = errors.New("score must be a non-negative number")
	ErrInvalidLevel   = errors.New("level must be a number greater than 0")
	ErrTooSoon        = errors.New("a score for this player was saved moments ago, wait before submitting again")
	ErrStorage        = errors.New("score storage failed")
	ErrResetForbidden = errors.New("reset is not permitted in production")
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrEmptyName, KindEmptyName},
	{ErrNameTooLong, KindNameTooLong},
	{ErrInvalidScore, KindInvalidScore},
	{ErrInvalidLevel, KindInvalidLevel},
	{ErrTooSoon, KindTooSoon},
	{ErrStorage, KindStorageFailure},
	{ErrResetForbidden, KindNotPermitted},
}

// KindOf maps an error returned by this package to its Kind.
// Errors that did not originate here map to KindUnknown.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindUnknown
}

// IsInputError reports whether err was caused by the submitted values themselves.
func IsInputError(err error) bool {
	switch KindOf(err) {
	case KindEmptyName, KindNameTooLong, KindInvalidScore, KindInvalidLevel:
		return true
	default:
		return false
	}
}
