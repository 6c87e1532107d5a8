package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

func TestGuardVerify(t *testing.T) {
	guard := NewGuard("s3cret")

	require.NoError(t, guard.Verify("s3cret"))

	err := guard.Verify("wrong")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestGuardFailsClosedWithoutSecret(t *testing.T) {
	guard := NewGuard("")

	err := guard.Verify("")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	err = guard.Verify("anything")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Message, appErrors.FromError(err).Message)
}
