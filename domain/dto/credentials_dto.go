package dto

// ReqSaveCredentials carries user-supplied app keys for one platform.
type ReqSaveCredentials struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

// CredentialsStatus is the redacted read model; the secret never leaves the
// store after it is written.
type CredentialsStatus struct {
	Platform   string `json:"platform"`
	ClientID   string `json:"client_id"`
	Configured bool   `json:"configured"`
}

// ReqConnectTwitter stores user-generated OAuth 1.0a access credentials.
// Twitter has no server-side redirect flow here; the user copies the token
// pair from the developer portal.
type ReqConnectTwitter struct {
	Username     string `json:"username" binding:"required"`
	AccessToken  string `json:"access_token" binding:"required"`
	AccessSecret string `json:"access_secret" binding:"required"`
}
