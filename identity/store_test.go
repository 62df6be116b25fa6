package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaulFidika/sregkit/sreg"
)

func TestNewStore_DefaultSchema(t *testing.T) {
	s := NewStore(nil, "  ")
	assert.Equal(t, "profiles.sreg_profiles", s.profilesTable())
	assert.Equal(t, "tenant.sreg_profiles", NewStore(nil, "tenant").profilesTable())
}

func TestStore_NilPoolIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, "")
	id := uuid.New()

	require.NoError(t, s.SaveProfile(ctx, id, sreg.NewResponse(sreg.NamespaceV10)))
	got, err := s.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, s.DeleteProfile(ctx, id))
}

func TestRebuild(t *testing.T) {
	nick := "alice"
	dob, gender := "1990-00-00", "F"
	got, err := rebuild(sreg.NamespaceV11, &sreg.Response{Nickname: &nick}, &dob, &gender)
	require.NoError(t, err)
	assert.Equal(t, sreg.NamespaceV11, got.TypeURI())
	assert.Equal(t, "alice", *got.Nickname)
	assert.Equal(t, "1990-00-00", *got.BirthDateRaw())
	assert.Equal(t, sreg.Female, got.Gender)

	bad := "Q"
	_, err = rebuild(sreg.NamespaceV10, &sreg.Response{}, nil, &bad)
	assert.ErrorIs(t, err, sreg.ErrDecode)
}
