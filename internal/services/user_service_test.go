package services

import (
	"testing"

	"github.com/mehedialhasan/tadabbur-backend/internal/apperr"
	"github.com/mehedialhasan/tadabbur-backend/internal/roles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, roles.Admin)
	manager := seedUser(t, db, roles.Manager)
	member := seedUser(t, db, roles.User)

	updated, err := svc.SetRole(admin, member.ID, roles.Manager)
	require.NoError(t, err)
	assert.Equal(t, roles.Manager, updated.Role)

	updated, err = svc.SetRole(manager, updated.ID, roles.Scholar)
	require.NoError(t, err)
	assert.Equal(t, roles.Scholar, updated.Role)
}

func TestSetRoleDenied(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, roles.Admin)
	manager := seedUser(t, db, roles.Manager)
	scholar := seedUser(t, db, roles.Scholar)
	member := seedUser(t, db, roles.User)

	// A manager can never mint another manager or admin.
	_, err := svc.SetRole(manager, member.ID, roles.Manager)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	_, err = svc.SetRole(manager, member.ID, roles.Admin)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	// An admin can never mint a second admin.
	_, err = svc.SetRole(admin, member.ID, roles.Admin)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	// Scholars have no role authority at all.
	_, err = svc.SetRole(scholar, member.ID, roles.User)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	// Self-demotion is refused even for admins.
	_, err = svc.SetRole(admin, admin.ID, roles.User)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	// Nothing above changed the target.
	target, err := svc.find("test", member.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.User, target.Role)
}

func TestSetRoleUnknownRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, roles.Admin)
	member := seedUser(t, db, roles.User)

	_, err := svc.SetRole(admin, member.ID, roles.Role("root"))
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestSetRoleUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := seedUser(t, db, roles.Admin)

	_, err := svc.SetRole(admin, uuid.New(), roles.Scholar)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestSetActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	manager := seedUser(t, db, roles.Manager)
	member := seedUser(t, db, roles.User)

	updated, err := svc.SetActive(manager, member.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// Deactivating yourself would lock you out.
	_, err = svc.SetActive(manager, manager.ID, false)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))

	// Reactivating yourself is harmless and allowed.
	_, err = svc.SetActive(manager, manager.ID, true)
	assert.NoError(t, err)
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	seedUser(t, db, roles.Admin)
	seedUser(t, db, roles.Scholar)
	seedUser(t, db, roles.User)

	all, total, err := svc.List("", "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	scholars, total, err := svc.List("", roles.Scholar, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, scholars, 1)
	assert.Equal(t, roles.Scholar, scholars[0].Role)

	named, _, err := svc.List("Test admin", "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, named, 1)
}
