package lifecycle

import "errors"

var (
	// ErrNotFound is returned by state transitions when the target record
	// does not exist. Read paths return (nil, nil) instead.
	ErrNotFound = errors.New("record not found")

	// ErrNothingToPublish is returned when publish is called on an already
	// published record with no pending draft overlay.
	ErrNothingToPublish = errors.New("nothing to publish")

	// ErrLockConflict is returned when another user holds a non-expired
	// edit lock on the record.
	ErrLockConflict = errors.New("record is locked by another editor")

	// ErrForbidden is returned when a caller tries to release a lock they
	// do not hold without administrative override.
	ErrForbidden = errors.New("operation not permitted")

	// ErrVersionConflict is returned in strict-concurrency mode when the
	// record changed between read and write.
	ErrVersionConflict = errors.New("record was modified concurrently")

	// ErrSlugTaken is returned by create/update when the requested slug is
	// already used by another record of the same kind.
	ErrSlugTaken = errors.New("slug already exists")
)
