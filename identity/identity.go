package identity

// Identity is the read-only projection of the claims embedded in an
// access token. It is recomputed from the credential on every load and
// never persisted on its own.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Exp      *int64 `json:"exp,omitempty"` // Expiry claim, informational only
}
