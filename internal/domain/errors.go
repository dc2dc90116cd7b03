package domain

import "errors"

var (
	// ErrNameTooShort is returned when a participant name has fewer than
	// two characters after trimming.
	ErrNameTooShort = errors.New("participant name must be at least 2 characters")
	// ErrLevelOutOfRange is returned for level numbers outside 1..LevelCount.
	ErrLevelOutOfRange = errors.New("level number out of range")
	// ErrWrongPassword is returned when an administrative action carries the
	// wrong shared password.
	ErrWrongPassword = errors.New("incorrect administrator password")
	// ErrVerifyLocked is returned once the security-code gate has consumed
	// all its attempts.
	ErrVerifyLocked = errors.New("security code verification locked")
	// ErrSubscribeUnsupported marks stores without a push channel; callers
	// fall back to polling.
	ErrSubscribeUnsupported = errors.New("push subscription not supported by this store")
)
