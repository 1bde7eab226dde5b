package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRedacted(t *testing.T) {
	u := &User{Name: "alice", Email: "alice@example.com", Password: "secret"}

	r := u.Redacted()
	assert.Empty(t, r.Password)
	assert.Equal(t, "alice", r.Name)
	assert.Equal(t, "secret", u.Password, "original is untouched")

	var nilUser *User
	assert.Nil(t, nilUser.Redacted())
}

func TestRedactedUserOmitsPasswordInJSON(t *testing.T) {
	u := &User{Name: "alice", Password: "secret"}

	data, err := json.Marshal(u.Redacted())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	_, present := decoded["password"]
	assert.False(t, present, "redacted user must not serialize a password field")
}
