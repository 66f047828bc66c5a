package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, Gateway, KindOf(NewGatewayError("gateway rejected", nil)))
	require.Equal(t, Timeout, KindOf(NewTimeoutError("deadline exceeded")))
	require.Equal(t, Inconsistent, KindOf(NewInconsistentError("record missing")))
	require.Equal(t, Other, KindOf(NewError("plain error")))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := NewConflictError("already settled")
	wrapped := fmt.Errorf("settle: %w", inner)
	require.Equal(t, Conflict, KindOf(wrapped))
	require.True(t, IsKind(wrapped, Conflict))
	require.False(t, IsKind(wrapped, NotFound))
}

func TestUnwrap(t *testing.T) {
	cause := NewError("network down")
	err := NewGatewayError("order create failed", cause)
	require.True(t, Is(err, cause))
}
