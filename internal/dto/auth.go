package dto

// RevokeTokenRequest revoke an access token; an empty token revokes the caller's own
type RevokeTokenRequest struct {
	Token string `json:"token"`
}

// RevokeTokenResponse revocation result
type RevokeTokenResponse struct {
	TokenID   string `json:"token_id"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
