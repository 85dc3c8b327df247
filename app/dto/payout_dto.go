package dto

// GeneratePayoutBatchRequest selects the clip creation period to batch.
// Dates are inclusive day boundaries in UTC.
type GeneratePayoutBatchRequest struct {
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" validate:"required,datetime=2006-01-02"`
}

// GeneratePayoutBatchResponse summarizes a generated batch
type GeneratePayoutBatchResponse struct {
	Message     string `json:"message"`
	BatchID     uint   `json:"batch_id"`
	BatchUUID   string `json:"batch_uuid"`
	TotalAmount string `json:"total_amount"`
	TotalClips  int    `json:"total_clips"`
	CreatedAt   string `json:"created_at"`
}

// ClipperPayoutItem is one clipper's aggregate inside a batch
type ClipperPayoutItem struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	ClipperName string  `json:"clipper_name,omitempty"`
	TotalViews  int64   `json:"total_views"`
	ClipsCount  int     `json:"clips_count"`
	Amount      string  `json:"amount"`
	BonusAmount string  `json:"bonus_amount"`
	Status      string  `json:"status"`
	PaidAt      *string `json:"paid_at,omitempty"`
}

// PayoutBatchItem is one batch in a listing
type PayoutBatchItem struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	TotalAmount string  `json:"total_amount"`
	ClipsCount  int     `json:"clips_count"`
	Status      string  `json:"status"`
	ProcessedAt *string `json:"processed_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ListPayoutBatchesResponse is the batch listing payload
type ListPayoutBatchesResponse struct {
	Message string            `json:"message"`
	Items   []PayoutBatchItem `json:"items"`
	Total   int64             `json:"total"`
}

// GetPayoutBatchResponse is one batch with its clipper payouts
type GetPayoutBatchResponse struct {
	Message string              `json:"message"`
	Batch   PayoutBatchItem     `json:"batch"`
	Payouts []ClipperPayoutItem `json:"payouts"`
}

// MarkPayoutPaidResponse reports an individual payout paid-transition
type MarkPayoutPaidResponse struct {
	Message       string `json:"message"`
	UUID          string `json:"uuid"`
	Status        string `json:"status"`
	AlreadyPaid   bool   `json:"already_paid"`
	CreditedTotal string `json:"credited_total,omitempty"`
}

// MarkBatchPaidResponse reports a whole-batch paid-transition
type MarkBatchPaidResponse struct {
	Message     string `json:"message"`
	UUID        string `json:"uuid"`
	Status      string `json:"status"`
	AlreadyPaid bool   `json:"already_paid"`
	PayoutsPaid int    `json:"payouts_paid"`
}

// BatchActionResponse reports a cancel or delete outcome
type BatchActionResponse struct {
	Message string `json:"message"`
	UUID    string `json:"uuid"`
	Status  string `json:"status,omitempty"`
}
