package dto

// PublishRequest is the transient per-call input for a publish operation.
// MediaURL points at a hosted image/video; MediaDataURI carries inline
// base64-encoded media (YouTube uploads).
type PublishRequest struct {
	AccountID    string   `json:"account_id" binding:"required"`
	MediaURL     string   `json:"media_url,omitempty"`
	MediaDataURI string   `json:"media_data_uri,omitempty"`
	Caption      string   `json:"caption,omitempty"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Text         string   `json:"text,omitempty"` // twitter
}

// PublishResult is returned on a successful publish.
type PublishResult struct {
	PostID  string `json:"post_id,omitempty"`
	VideoID string `json:"video_id,omitempty"`
	URL     string `json:"url,omitempty"`
}
