package validation

import (
	"encoding/json"
	"strings"
	"testing"
	"user-directory/app/server/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidation(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.KindValidation, e.Kind)
	assert.Equal(t, msg, e.Message)
}

func TestName(t *testing.T) {
	got, err := Name("  Ana  ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got)

	for _, in := range []string{"", " ", "A", "  A  "} {
		_, err := Name(in)
		requireValidation(t, err, MsgName)
	}
}

func TestEmail(t *testing.T) {
	got, err := Email("ANA@Test.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@test.com", got)

	for _, in := range []string{"", "ana", "ana@test", "@test.com", "ana @test.com", "ana@@test.com"} {
		_, err := Email(in)
		requireValidation(t, err, MsgEmail)
	}
}

func TestUsername(t *testing.T) {
	valid := []string{"ana01", "Ana.B", "a_b-c", "abc", strings.Repeat("x", 20)}
	for _, in := range valid {
		got, err := Username(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, got)
	}

	invalid := []string{"", "ab", strings.Repeat("x", 21), "ana 01", "ana@01", "ñandu", "ana/01"}
	for _, in := range invalid {
		_, err := Username(in)
		requireValidation(t, err, MsgUsername)
	}
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("secret"))
	requireValidation(t, Password("12345"), MsgPassword)
	requireValidation(t, Password(""), MsgPassword)
}

func TestIdentifier(t *testing.T) {
	got, err := Identifier("  ana01 ")
	require.NoError(t, err)
	assert.Equal(t, "ana01", got)

	_, err = Identifier(" a ")
	requireValidation(t, err, MsgIdentifier)
}

func TestObjectID(t *testing.T) {
	id, err := ObjectID("6f1c2a9e-3b4d-4c5e-8f70-1a2b3c4d5e6f")
	require.NoError(t, err)
	assert.Equal(t, "6f1c2a9e-3b4d-4c5e-8f70-1a2b3c4d5e6f", id.String())

	for _, in := range []string{"not-an-id", "", "6f1c2a9e3b4d4c5e8f701a2b3c4d5e6f", "{6f1c2a9e-3b4d-4c5e-8f70-1a2b3c4d5e6f}"} {
		_, err := ObjectID(in)
		requireValidation(t, err, MsgObjectID)
	}
}

func TestValidateUserPayload_Full(t *testing.T) {
	out, err := ValidateUserPayload(UserPayload{Name: Present(" Ana "), Email: Present("ANA@Test.com")}, false)
	require.NoError(t, err)
	require.NotNil(t, out.Name)
	require.NotNil(t, out.Email)
	assert.Equal(t, "Ana", *out.Name)
	assert.Equal(t, "ana@test.com", *out.Email)

	_, err = ValidateUserPayload(UserPayload{Email: Present("ana@test.com")}, false)
	requireValidation(t, err, MsgNameReq)

	_, err = ValidateUserPayload(UserPayload{Name: Present("Ana")}, false)
	requireValidation(t, err, MsgEmailReq)

	_, err = ValidateUserPayload(UserPayload{Name: Present("A"), Email: Present("ana@test.com")}, false)
	requireValidation(t, err, MsgName)
}

func TestValidateUserPayload_Partial(t *testing.T) {
	out, err := ValidateUserPayload(UserPayload{}, true)
	require.NoError(t, err)
	assert.True(t, out.Empty())

	out, err = ValidateUserPayload(UserPayload{Email: Present("New@Mail.io")}, true)
	require.NoError(t, err)
	assert.Nil(t, out.Name)
	require.NotNil(t, out.Email)
	assert.Equal(t, "new@mail.io", *out.Email)

	_, err = ValidateUserPayload(UserPayload{Email: Present("broken")}, true)
	requireValidation(t, err, MsgEmail)
}

func TestValidateUserPayload_PresentNull(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		partial bool
		want    string
	}{
		{"null name on update", `{"name": null}`, true, MsgName},
		{"null email on update", `{"email": null}`, true, MsgEmail},
		{"number name on update", `{"name": 42}`, true, MsgName},
		{"object email on update", `{"email": {"a": 1}}`, true, MsgEmail},
		{"null name on create", `{"name": null, "email": "ana@test.com"}`, false, MsgName},
		{"absent name on create", `{"email": "ana@test.com"}`, false, MsgNameReq},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p UserPayload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			_, err := ValidateUserPayload(p, tt.partial)
			requireValidation(t, err, tt.want)
		})
	}
}

func TestField_UnmarshalJSON(t *testing.T) {
	var p UserPayload
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Ana"}`), &p))
	assert.True(t, p.Name.Set)
	require.NotNil(t, p.Name.Value)
	assert.Equal(t, "Ana", *p.Name.Value)
	assert.False(t, p.Email.Set)
	assert.Nil(t, p.Email.Value)

	out, err := ValidateUserPayload(p, true)
	require.NoError(t, err)
	assert.Nil(t, out.Email)
}
