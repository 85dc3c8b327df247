package dto

// CreateCampaignRequest creates a campaign for a client
type CreateCampaignRequest struct {
	ClientUUID       string   `json:"client_uuid" validate:"required,uuid4"`
	Name             string   `json:"name" validate:"required,max=255"`
	Description      *string  `json:"description,omitempty"`
	Tier1CpmRate     *string  `json:"tier1_cpm_rate,omitempty" validate:"omitempty,numeric"`
	Tier2CpmRate     *string  `json:"tier2_cpm_rate,omitempty" validate:"omitempty,numeric"`
	Tier3FixedRate   *string  `json:"tier3_fixed_rate,omitempty" validate:"omitempty,numeric"`
	MaxPayoutPerClip *string  `json:"max_payout_per_clip,omitempty" validate:"omitempty,numeric"`
	Budget           *string  `json:"budget,omitempty" validate:"omitempty,numeric"`
	RequiredTags     []string `json:"required_tags,omitempty" validate:"omitempty,dive,max=64"`
	StartsAt         *string  `json:"starts_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndsAt           *string  `json:"ends_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateCampaignRequest updates campaign fields; nil fields are untouched
type UpdateCampaignRequest struct {
	CampaignUUID     string   `json:"-"`
	Name             *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description      *string  `json:"description,omitempty"`
	Tier1CpmRate     *string  `json:"tier1_cpm_rate,omitempty" validate:"omitempty,numeric"`
	Tier2CpmRate     *string  `json:"tier2_cpm_rate,omitempty" validate:"omitempty,numeric"`
	Tier3FixedRate   *string  `json:"tier3_fixed_rate,omitempty" validate:"omitempty,numeric"`
	MaxPayoutPerClip *string  `json:"max_payout_per_clip,omitempty" validate:"omitempty,numeric"`
	Budget           *string  `json:"budget,omitempty" validate:"omitempty,numeric"`
	RequiredTags     []string `json:"required_tags,omitempty" validate:"omitempty,dive,max=64"`
	Status           *string  `json:"status,omitempty" validate:"omitempty,oneof=draft active paused completed"`
	StartsAt         *string  `json:"starts_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndsAt           *string  `json:"ends_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// CampaignItem is one campaign in a listing or detail response
type CampaignItem struct {
	ID               uint     `json:"id"`
	UUID             string   `json:"uuid"`
	ClientName       string   `json:"client_name,omitempty"`
	Name             string   `json:"name"`
	Description      *string  `json:"description,omitempty"`
	Tier1CpmRate     string   `json:"tier1_cpm_rate"`
	Tier2CpmRate     string   `json:"tier2_cpm_rate"`
	Tier3FixedRate   string   `json:"tier3_fixed_rate"`
	MaxPayoutPerClip string   `json:"max_payout_per_clip"`
	Budget           string   `json:"budget"`
	RequiredTags     []string `json:"required_tags,omitempty"`
	Status           string   `json:"status"`
	StartsAt         *string  `json:"starts_at,omitempty"`
	EndsAt           *string  `json:"ends_at,omitempty"`
	CreatedAt        string   `json:"created_at"`
}

// CampaignResponse wraps a single campaign
type CampaignResponse struct {
	Message  string       `json:"message"`
	Campaign CampaignItem `json:"campaign"`
}

// ListCampaignsResponse is the campaign listing payload
type ListCampaignsResponse struct {
	Message string         `json:"message"`
	Items   []CampaignItem `json:"items"`
	Total   int64          `json:"total"`
}

// CreateClientRequest registers a brand
type CreateClientRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=255"`
	Email       string  `json:"email" validate:"required,email,max=255"`
}

// ClientItem is one client in a listing
type ClientItem struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	Name        string  `json:"name"`
	CompanyName *string `json:"company_name,omitempty"`
	Email       string  `json:"email"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}

// ClientResponse wraps a single client
type ClientResponse struct {
	Message string     `json:"message"`
	Client  ClientItem `json:"client"`
}

// ListClientsResponse is the client listing payload
type ListClientsResponse struct {
	Message string       `json:"message"`
	Items   []ClientItem `json:"items"`
	Total   int64        `json:"total"`
}

// ClipperItem is one clipper profile in a listing
type ClipperItem struct {
	ID             uint   `json:"id"`
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Tier           string `json:"tier"`
	TotalViews     int64  `json:"total_views"`
	TotalEarnings  string `json:"total_earnings"`
	SubmittedClips int    `json:"submitted_clips"`
	ApprovedClips  int    `json:"approved_clips"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// ListClippersResponse is the clipper listing payload
type ListClippersResponse struct {
	Message string        `json:"message"`
	Items   []ClipperItem `json:"items"`
	Total   int64         `json:"total"`
}

// UpdateClipperTierRequest promotes or demotes a clipper
type UpdateClipperTierRequest struct {
	ClipperUUID string `json:"clipper_uuid" validate:"required,uuid4"`
	Tier        string `json:"tier" validate:"required,oneof=entry approved core"`
}

// ClipperResponse wraps a single clipper
type ClipperResponse struct {
	Message string      `json:"message"`
	Clipper ClipperItem `json:"clipper"`
}
