package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignReceipt computes the hex-encoded HMAC-SHA256 the gateway attaches to a
// successful payment: HMAC(secret, orderID + "|" + paymentID).
func SignReceipt(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyReceiptSignature recomputes the receipt signature server-side and
// compares it against the client-submitted one in constant time. This is the
// sole tamper boundary: without the key secret a client cannot forge a match.
func VerifyReceiptSignature(orderID, paymentID, signature, secret string) bool {
	expected := SignReceipt(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
