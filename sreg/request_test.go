package sreg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaulFidika/sregkit/sreg"
)

func TestRequest_DecodeFields(t *testing.T) {
	q := sreg.NewRequest(sreg.NamespaceV11)
	require.NoError(t, q.DecodeFields(map[string]string{
		"required":   "nickname, email",
		"optional":   "dob,shoesize,email",
		"policy_url": "https://rp.example.com/policy",
	}))

	assert.Equal(t, []string{"nickname", "email"}, q.Required())
	assert.Equal(t, []string{"dob"}, q.Optional())
	assert.Equal(t, sreg.DemandNone, q.DemandOf(sreg.FieldGender))
	require.NotNil(t, q.PolicyURL)
	assert.Equal(t, "https://rp.example.com/policy", *q.PolicyURL)
}

func TestRequest_EncodeFields(t *testing.T) {
	q := sreg.NewRequest(sreg.NamespaceV10)
	require.NoError(t, q.Demand(sreg.FieldTimeZone, sreg.DemandOptional))
	require.NoError(t, q.Demand(sreg.FieldEmail, sreg.DemandRequired))
	require.NoError(t, q.Demand(sreg.FieldNickname, sreg.DemandOptional))

	fields, err := q.EncodeFields()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"required": "email",
		"optional": "nickname,timezone",
	}, fields)

	assert.ErrorIs(t, q.Demand("shoesize", sreg.DemandRequired), sreg.ErrUnknownField)
}

func TestRequest_CreateResponseEchoesNamespace(t *testing.T) {
	q := sreg.NewRequest(sreg.NamespaceV11Alt)
	r := q.CreateResponse()
	assert.Equal(t, sreg.NamespaceV11Alt, r.TypeURI())
}

func TestRequest_Trim(t *testing.T) {
	q := sreg.NewRequest(sreg.NamespaceV10)
	require.NoError(t, q.Demand(sreg.FieldEmail, sreg.DemandRequired))
	require.NoError(t, q.Demand(sreg.FieldBirthDate, sreg.DemandOptional))

	full := sample(sreg.NamespaceV10)
	trimmed := q.Trim(full)

	fields, err := trimmed.EncodeFields()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"email": "alice@example.com", "dob": "1852-05-04"}, fields)
	_, ok := trimmed.Locale()
	assert.False(t, ok)
	assert.Equal(t, "alice", *full.Nickname)
}
