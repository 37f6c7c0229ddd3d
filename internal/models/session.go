package models

// Session is one authenticated login, stored in the key-value store under
// session:<id> and indexed per user under user_sessions:<userId>. The token
// strings are kept so refresh can reject a presented token that no longer
// matches the stored copy.
type Session struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IP           string `json:"ip"`
	UserAgent    string `json:"userAgent"`
	CreatedAt    int64  `json:"createdAt"`
}

// RequestMeta carries client provenance recorded on each session.
type RequestMeta struct {
	IP        string
	UserAgent string
}
