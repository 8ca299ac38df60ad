package dto

// AuthorizeRedirectResponse carries the provider authorization URL the
// frontend should redirect the user to, plus the CSRF state it must echo.
type AuthorizeRedirectResponse struct {
	AuthorizeURL string `json:"authorizeURL"`
	State        string `json:"state"`
}

// SyncActivitiesResponse reports how many provider activities were imported.
type SyncActivitiesResponse struct {
	Imported int `json:"imported"`
}
