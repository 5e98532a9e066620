package dto

// TutorialManagement - блок видео в контенте (названия полей как в API)
type TutorialManagement struct {
	VideoTitle string `json:"VideoTittle"`
	Published  *bool  `json:"published,omitempty"`
}

// Content - юридические тексты
type Content struct {
	TermsAndConditions string             `json:"TermsAndConditions"`
	PrivacyPolicy      string             `json:"PrivacyPolicy"`
	TutorialManagement TutorialManagement `json:"TutorialMangment"`
}

// VideoDetails - текущее видео на сервере
type VideoDetails struct {
	StreamURL string `json:"streamUrl"`
}

// ContentResponse - GET api/content/get
type ContentResponse struct {
	Envelope
	Content      Content       `json:"content"`
	VideoDetails *VideoDetails `json:"videoDetails"`
}

// TermsPayload - POST api/content/terms-and-conditions
type TermsPayload struct {
	TermsAndConditions string `json:"termsAndConditions"`
}

// PrivacyPayload - POST api/content/privacy-policy
type PrivacyPayload struct {
	PrivacyPolicy string `json:"privacyPolicy"`
}
