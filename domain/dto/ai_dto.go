package dto

type CaptionRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Platform string `json:"platform,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

type ScriptRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Duration string `json:"duration,omitempty"`
}

type HashtagRequest struct {
	Caption string `json:"caption" binding:"required"`
	Count   int    `json:"count,omitempty"`
}

type CampaignIdeaRequest struct {
	Brief string `json:"brief" binding:"required"`
	Count int    `json:"count,omitempty"`
}

type GeneratedText struct {
	Text string `json:"text"`
}

type GeneratedList struct {
	Items []string `json:"items"`
}
