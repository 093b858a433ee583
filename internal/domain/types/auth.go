package types

// Credentials are submitted once to obtain a token pair and are not retained.
type Credentials struct {
	Username Username `json:"username"`
	Password string   `json:"password"`
}

// TokenPair is the access/refresh token pair issued by the backend.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// HasAccess reports whether an access token is present.
func (p TokenPair) HasAccess() bool { return p.AccessToken != "" }

// HasRefresh reports whether a refresh token is present.
func (p TokenPair) HasRefresh() bool { return p.RefreshToken != "" }
