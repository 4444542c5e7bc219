// internal/errkind/errkind_test.go
package errkind

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(NotConnected, "no signing session")
	assert.Equal(t, NotConnected, KindOf(err))

	wrapped := fmt.Errorf("action failed: %w", err)
	assert.Equal(t, NotConnected, KindOf(wrapped))

	assert.Equal(t, Internal, KindOf(errors.New("some other error")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ConnectionError, "failed to connect", cause)

	assert.Equal(t, "failed to connect: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsKind(err, ConnectionError))
	assert.False(t, IsKind(err, QueryError))
}

func TestNewWithoutCause(t *testing.T) {
	err := New(WalletUnavailable, "wallet not found")
	assert.Equal(t, "wallet not found", err.Error())
	assert.Nil(t, err.Unwrap())
}
