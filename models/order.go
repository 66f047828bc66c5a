package models

// OrderIntent is the gateway-issued handle the client needs to open the
// checkout UI. It lives for one payment attempt and is never persisted.
type OrderIntent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	KeyID    string `json:"key_id"`
}
