package dto

// SubmitClipRequest is the payload for a clipper submitting a clip
type SubmitClipRequest struct {
	CampaignUUID   string  `json:"campaign_uuid" validate:"required,uuid4"`
	ClipperUUID    string  `json:"clipper_uuid" validate:"required,uuid4"`
	Platform       string  `json:"platform" validate:"required,oneof=tiktok instagram youtube twitter"`
	SubmissionURL  string  `json:"submission_url" validate:"required,url,max=2048"`
	ExternalPostID *string `json:"external_post_id,omitempty" validate:"omitempty,max=64"`
}

// SubmitClipResponse is returned after a successful submission
type SubmitClipResponse struct {
	Message   string `json:"message"`
	ID        uint   `json:"id"`
	UUID      string `json:"uuid"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ReviewClipRequest is the admin approve/reject payload
type ReviewClipRequest struct {
	ClipUUID string `json:"clip_uuid" validate:"required,uuid4"`
	Approve  bool   `json:"approve"`
}

// ReviewClipResponse is returned after a review decision
type ReviewClipResponse struct {
	Message string `json:"message"`
	UUID    string `json:"uuid"`
	Status  string `json:"status"`
}

// CheckDuplicateURLRequest asks whether a URL was already submitted
type CheckDuplicateURLRequest struct {
	SubmissionURL string `json:"submission_url" validate:"required,url,max=2048"`
}

// CheckDuplicateURLResponse reports the earliest prior submission, if any
type CheckDuplicateURLResponse struct {
	IsDuplicate bool    `json:"is_duplicate"`
	ClipperName *string `json:"clipper_name,omitempty"`
	SubmittedAt *string `json:"submitted_at,omitempty"`
}

// ListClipsRequest carries clip listing filters
type ListClipsRequest struct {
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected paid"`
	CampaignUUID *string `json:"campaign_uuid,omitempty" validate:"omitempty,uuid4"`
	ClipperUUID  *string `json:"clipper_uuid,omitempty" validate:"omitempty,uuid4"`
	StartDate    *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Page         int     `json:"page" validate:"omitempty,min=1"`
	PageSize     int     `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// ClipItem is one clip in a listing
type ClipItem struct {
	ID               uint     `json:"id"`
	UUID             string   `json:"uuid"`
	CampaignName     string   `json:"campaign_name,omitempty"`
	ClipperName      string   `json:"clipper_name,omitempty"`
	Platform         string   `json:"platform"`
	SubmissionURL    string   `json:"submission_url"`
	Views            int64    `json:"views"`
	Likes            int64    `json:"likes"`
	Comments         int64    `json:"comments"`
	Shares           int64    `json:"shares"`
	Status           string   `json:"status"`
	PayoutAmount     *string  `json:"payout_amount,omitempty"`
	IsDuplicate      bool     `json:"is_duplicate"`
	TagsFound        []string `json:"tags_found,omitempty"`
	TagsMissing      []string `json:"tags_missing,omitempty"`
	MetricsUpdatedAt *string  `json:"metrics_updated_at,omitempty"`
	CreatedAt        string   `json:"created_at"`
}

// ListClipsResponse is the clip listing payload
type ListClipsResponse struct {
	Message string     `json:"message"`
	Items   []ClipItem `json:"items"`
	Total   int64      `json:"total"`
}

// ScanForDuplicatesResponse reports a duplicate scan outcome
type ScanForDuplicatesResponse struct {
	Message         string `json:"message"`
	DuplicatesFound int    `json:"duplicates_found"`
}

// RefreshMetricsResponse reports a metrics refresh outcome
type RefreshMetricsResponse struct {
	Message string `json:"message"`
	Total   int    `json:"total"`
	Updated int    `json:"updated"`
	Errors  int    `json:"errors"`
}
