package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inboundSession = `{"session":{"id":"abc123","accountId":"33932","timestamp":"2010-01-01T00:00:00.000Z",` +
	`"from":{"id":"612382211234","channel":"TEXT","network":"SMS"},` +
	`"to":{"id":"1000","name":null},` +
	`"headers":{"Max-Forwards":"70"},` +
	`"parameters":{"to":"612382211234"}}}`

func TestSession_KeepsUnknownMembers(t *testing.T) {
	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(inboundSession), &snap))

	require.NotNil(t, snap.Session)
	assert.Equal(t, "abc123", snap.ID())
	assert.Equal(t, "33932", snap.Session.AccountID)
	assert.Len(t, snap.Session.Extra, 3)
	assert.JSONEq(t, `{"id":"612382211234","channel":"TEXT","network":"SMS"}`, string(snap.Session.Extra["from"]))
	assert.NotContains(t, snap.Session.Extra, "parameters")

	out, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, inboundSession, string(out))
}

func TestSession_NamedFieldWinsOverExtra(t *testing.T) {
	s := Session{
		ID:    "abc123",
		Extra: map[string]json.RawMessage{"id": json.RawMessage(`"other"`), "callId": json.RawMessage(`"c"`)},
	}

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc123","callId":"c"}`, string(out))
}

func TestSession_WithoutExtra(t *testing.T) {
	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"session":{"id":"x"}}`), &snap))
	assert.Nil(t, snap.Session.Extra)

	out, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Equal(t, `{"session":{"id":"x"}}`, string(out))
}

func TestSnapshot_CloneCopiesExtra(t *testing.T) {
	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(inboundSession), &snap))

	clone := snap.Clone()
	clone.Session.Extra["from"][2] = 'X'
	clone.Session.Extra["added"] = json.RawMessage(`1`)

	assert.JSONEq(t, `{"id":"612382211234","channel":"TEXT","network":"SMS"}`, string(snap.Session.Extra["from"]))
	assert.NotContains(t, snap.Session.Extra, "added")
}
