package domain

// TokenRecord is the persisted provider credential pair for one user.
// The refresh token is long-lived and rotated on every refresh grant; the
// access token is short-lived and valid until ExpiresAt (seconds since epoch).
type TokenRecord struct {
	UserID       string `json:"userID"`
	RefreshToken string `json:"-"`
	AccessToken  string `json:"-"`
	ExpiresAt    int64  `json:"expiresAt"`
	Scope        string `json:"scope"`
}
