package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terravita/core/internal/models"
)

const (
	editorA uint = 101
	editorB uint = 102
)

func TestAcquireLock(t *testing.T) {
	svc := setupService(t, Options{LockTTL: 10 * time.Minute})
	rec := seedSpecies(t, svc, "puma", "Puma", models.StatusPublished)

	out, err := svc.AcquireLock(rec.ID, editorA)
	require.NoError(t, err)
	require.NotNil(t, out.LockedByID)
	assert.Equal(t, editorA, *out.LockedByID)
	assert.NotNil(t, out.LockedAt)
	require.NotNil(t, out.LockExpiresAt)
	assert.True(t, out.LockExpiresAt.After(time.Now()))
}

func TestAcquireLockConflictsForOtherUser(t *testing.T) {
	svc := setupService(t, Options{LockTTL: 10 * time.Minute})
	rec := seedSpecies(t, svc, "puma", "Puma", models.StatusPublished)

	_, err := svc.AcquireLock(rec.ID, editorA)
	require.NoError(t, err)

	_, err = svc.AcquireLock(rec.ID, editorB)
	assert.ErrorIs(t, err, ErrLockConflict)
}

func TestAcquireLockRefreshesForHolder(t *testing.T) {
	svc := setupService(t, Options{LockTTL: 10 * time.Minute})
	rec := seedSpecies(t, svc, "puma", "Puma", models.StatusPublished)

	first, err := svc.AcquireLock(rec.ID, editorA)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := svc.AcquireLock(rec.ID, editorA)
	require.NoError(t, err)
	assert.True(t, second.LockExpiresAt.After(*first.LockExpiresAt))
}

func TestExpiredLockIsAcquirableByAnyone(t *testing.T) {
	svc := setupService(t, Options{LockTTL: 10 * time.Minute})
	rec := seedSpecies(t, svc, "puma", "Puma", models.StatusPublished)

	_, err := svc.AcquireLock(rec.ID, editorA)
	require.NoError(t, err)

	// push the expiry into the past
	past := time.Now().Add(-time.Minute)
	require.NoError(t, svc.DB().Model(rec).UpdateColumn("lock_expires_at", past).Error)

	out, err := svc.AcquireLock(rec.ID, editorB)
	require.NoError(t, err)
	assert.Equal(t, editorB, *out.LockedByID)
}

func TestAcquireLockNotFound(t *testing.T) {
	svc := setupService(t, Options{})
	_, err := svc.AcquireLock(777, editorA)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenewLockOnlyForLiveHolder(t *testing.T) {
	svc := setupService(t, Options{LockTTL: 10 * time.Minute})
	rec := seedSpecies(t, svc, "puma", "Puma", models.StatusPublished)

	first, err := svc.AcquireLock(rec.ID, editorA)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	renewed, err := svc.RenewLock(rec.ID, editorA)
	require.NoError(t, err)
	assert.True(t, renewed.LockExpiresAt.After(*first.LockExpiresAt))

	_, err = svc.RenewLock(rec.ID, editorB)
	assert.ErrorIs(t, err, ErrLockConflict)

	// an expired lock cannot be renewed, only re-acquired
	past := time.Now().Add(-time.Minute)
	require.NoError(t, svc.DB().Model(rec).UpdateColumn("lock_expires_at", past).Error)
	_, err = svc.RenewLock(rec.ID, editorA)
	assert.ErrorIs(t, err, ErrLockConflict)
}

func TestReleaseLockRules(t *testing.T) {
	svc := setupService(t, Options{LockTTL: 10 * time.Minute})
	rec := seedSpecies(t, svc, "puma", "Puma", models.StatusPublished)

	_, err := svc.AcquireLock(rec.ID, editorA)
	require.NoError(t, err)

	// a non-holder without override is refused
	err = svc.ReleaseLock(rec.ID, editorB, false)
	assert.ErrorIs(t, err, ErrForbidden)

	// the holder may release
	require.NoError(t, svc.ReleaseLock(rec.ID, editorA, false))
	out, err := svc.FindByID(rec.ID)
	require.NoError(t, err)
	assert.Nil(t, out.LockedByID)
	assert.Nil(t, out.LockedAt)
	assert.Nil(t, out.LockExpiresAt)

	// releasing with no live lock is a no-op
	require.NoError(t, svc.ReleaseLock(rec.ID, editorB, false))
}

func TestAdminOverrideReleasesForeignLock(t *testing.T) {
	svc := setupService(t, Options{LockTTL: 10 * time.Minute})
	rec := seedSpecies(t, svc, "puma", "Puma", models.StatusPublished)

	_, err := svc.AcquireLock(rec.ID, editorA)
	require.NoError(t, err)

	require.NoError(t, svc.ReleaseLock(rec.ID, editorB, true))
	out, err := svc.FindByID(rec.ID)
	require.NoError(t, err)
	assert.Nil(t, out.LockedByID)
}

// The lock is advisory: it signals editing intent but does not gate writes.
// A correct client acquires the lock first; the server deliberately does not
// enforce that, which this test pins down as the accepted contract.
func TestAdvisoryLockDoesNotBlockWrites(t *testing.T) {
	svc := setupService(t, Options{LockTTL: 10 * time.Minute})
	rec := seedSpecies(t, svc, "puma", "Puma", models.StatusPublished)

	_, err := svc.AcquireLock(rec.ID, editorA)
	require.NoError(t, err)

	// editor B never acquired the lock, yet the draft write succeeds
	out, err := svc.CreateDraft(rec.ID, map[string]interface{}{"commonName": "Not Puma"})
	require.NoError(t, err)
	assert.True(t, out.HasDraft)
	assert.Equal(t, editorA, *out.LockedByID)
}
