package serverutils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushTicketRoundTrip(t *testing.T) {
	userId := uuid.New()

	ticket, err := MintPushTicket("test-secret", userId, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, ticket)

	got, err := VerifyPushTicket("test-secret", ticket)
	require.NoError(t, err)
	assert.Equal(t, userId, got)
}

func TestPushTicketRejectsWrongSecret(t *testing.T) {
	ticket, err := MintPushTicket("test-secret", uuid.New(), time.Minute)
	require.NoError(t, err)

	_, err = VerifyPushTicket("other-secret", ticket)
	assert.Error(t, err)
}

func TestPushTicketRejectsExpired(t *testing.T) {
	ticket, err := MintPushTicket("test-secret", uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = VerifyPushTicket("test-secret", ticket)
	assert.Error(t, err)
}

func TestPushTicketRejectsGarbage(t *testing.T) {
	_, err := VerifyPushTicket("test-secret", "not-a-token")
	assert.Error(t, err)
}
