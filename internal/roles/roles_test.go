package roles

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrder(t *testing.T) {
	assert.True(t, Rank(User) < Rank(Scholar))
	assert.True(t, Rank(Scholar) < Rank(Manager))
	assert.True(t, Rank(Manager) < Rank(Admin))
	assert.Equal(t, 0, Rank(Role("superuser")), "unknown roles rank below user")
}

func TestParse(t *testing.T) {
	r, err := Parse("scholar")
	require.NoError(t, err)
	assert.Equal(t, Scholar, r)

	_, err = Parse("root")
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestAtLeast(t *testing.T) {
	assert.True(t, AtLeast(Admin, Scholar))
	assert.True(t, AtLeast(Scholar, Scholar))
	assert.False(t, AtLeast(User, Scholar))
	assert.False(t, AtLeast(Role("bogus"), User))
}

func TestCanChangeRole(t *testing.T) {
	actorID := uuid.New()
	targetID := uuid.New()

	cases := []struct {
		name      string
		acting    Role
		current   Role
		requested Role
		wantErr   error
	}{
		{"admin grants manager", Admin, User, Manager, nil},
		{"admin grants scholar", Admin, User, Scholar, nil},
		{"admin demotes manager to user", Admin, Manager, User, nil},
		{"admin cannot mint admin", Admin, Manager, Admin, ErrRoleOutOfBounds},
		{"manager grants scholar", Manager, User, Scholar, nil},
		{"manager grants user", Manager, Scholar, User, nil},
		{"manager cannot grant manager", Manager, User, Manager, ErrRoleOutOfBounds},
		{"manager cannot grant admin", Manager, User, Admin, ErrRoleOutOfBounds},
		{"scholar cannot change roles", Scholar, User, User, ErrNotRoleManager},
		{"user cannot change roles", User, User, Scholar, ErrNotRoleManager},
		{"unknown requested role", Admin, User, Role("root"), ErrUnknownRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanChangeRole(tc.acting, actorID, tc.current, targetID, tc.requested)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCanChangeRoleSelfDemotion(t *testing.T) {
	id := uuid.New()

	err := CanChangeRole(Admin, id, Admin, id, User)
	assert.ErrorIs(t, err, ErrSelfDemotion)

	err = CanChangeRole(Manager, id, Manager, id, Scholar)
	assert.ErrorIs(t, err, ErrSelfDemotion)

	// Same role is not a demotion.
	err = CanChangeRole(Admin, id, Manager, id, Manager)
	assert.NoError(t, err)
}
