package lifecycle

import (
	"time"
)

// The edit lock is advisory: it coordinates editors through the UI but the
// draft/publish transitions never check it. That is a deliberate, visible
// contract — server-side enforcement would need the strict concurrency mode
// (Options.Strict), not a stronger lock.

// AcquireLock takes or refreshes the edit lock for userID. It succeeds when
// no valid lock exists, when the existing lock expired, or when userID
// already holds it; a different unexpired holder yields ErrLockConflict.
// The conditional single UPDATE makes acquisition atomic.
func (s *Service[T, PT]) AcquireLock(id, userID uint) (*T, error) {
	var model T
	now := time.Now()
	res := s.db.Model(&model).
		Where("id = ?", id).
		Where("locked_by_id IS NULL OR locked_by_id = ? OR lock_expires_at IS NULL OR lock_expires_at <= ?", userID, now).
		UpdateColumns(map[string]interface{}{
			"locked_by_id":    userID,
			"locked_at":       now,
			"lock_expires_at": now.Add(s.opts.LockTTL),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		rec, err := s.FindByID(id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, ErrNotFound
		}
		return nil, ErrLockConflict
	}
	return s.FindByID(id)
}

// RenewLock extends the TTL for the current holder. It fails with
// ErrLockConflict when userID does not hold a live lock; an expired lock
// must be re-acquired, not renewed.
func (s *Service[T, PT]) RenewLock(id, userID uint) (*T, error) {
	var model T
	now := time.Now()
	res := s.db.Model(&model).
		Where("id = ? AND locked_by_id = ? AND lock_expires_at > ?", id, userID, now).
		UpdateColumn("lock_expires_at", now.Add(s.opts.LockTTL))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		rec, err := s.FindByID(id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, ErrNotFound
		}
		return nil, ErrLockConflict
	}
	return s.FindByID(id)
}

// ReleaseLock clears the lock. Only the holder may release it, unless
// override is set (admin recovery of a stuck lock). Releasing a record with
// no live lock is a no-op.
func (s *Service[T, PT]) ReleaseLock(id, userID uint, override bool) error {
	rec, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}

	cb := PT(rec).ContentRef()
	now := time.Now()
	if !cb.LockValid(now) {
		return nil
	}
	if !override && !cb.LockHeldBy(userID, now) {
		return ErrForbidden
	}

	var model T
	return s.db.Model(&model).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"locked_by_id":    nil,
			"locked_at":       nil,
			"lock_expires_at": nil,
		}).Error
}
