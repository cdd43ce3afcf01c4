package dto

// InstagramProfile is the account detail set fetched after an Instagram
// exchange. A single profile can also yield a linked Facebook Page identity,
// persisted as a second account record.
type InstagramProfile struct {
	Username         string `json:"username"`
	InstagramID      string `json:"instagram_id"`
	FacebookPageID   string `json:"facebook_page_id,omitempty"`
	FacebookPageName string `json:"facebook_page_name,omitempty"`
	PageAccessToken  string `json:"page_access_token,omitempty"`
}
