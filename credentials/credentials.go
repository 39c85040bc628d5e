package credentials

// Credential is the token pair returned by the storefront's token endpoint.
// The access token is a JWT carrying the identity claims; the refresh token
// is held for completeness but never exercised by this client.
type Credential struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Empty reports whether the credential carries no usable access token.
func (c *Credential) Empty() bool {
	return c == nil || c.Access == ""
}
