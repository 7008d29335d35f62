package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoleJSON(t *testing.T) {
	var r UserRole
	require.NoError(t, json.Unmarshal([]byte(`"manager"`), &r))
	assert.Equal(t, UserRoleManager, r)

	assert.Error(t, json.Unmarshal([]byte(`"owner"`), &r))
}

func TestParseUserRole(t *testing.T) {
	for _, role := range UserRoles {
		parsed, err := ParseUserRole(string(role))
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}
	_, err := ParseUserRole("Admin")
	assert.Error(t, err)
}

func TestPaymentTypeJSON(t *testing.T) {
	data, err := json.Marshal(PaymentTypeCash)
	require.NoError(t, err)
	assert.JSONEq(t, `"Cash"`, string(data))

	var p PaymentType
	require.NoError(t, json.Unmarshal([]byte(`"card"`), &p))
	assert.Equal(t, PaymentTypeCard, p)

	require.NoError(t, json.Unmarshal([]byte(`1`), &p))
	assert.Equal(t, PaymentTypeCash, p)

	require.NoError(t, json.Unmarshal([]byte(`"cheque"`), &p))
	assert.False(t, p.IsValid())
}
