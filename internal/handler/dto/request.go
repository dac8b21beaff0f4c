package dto

type CreateBookingRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	EntityKind string `json:"entity_kind" binding:"required"`
	EntityID   string `json:"entity_id" binding:"required"`
	Start      string `json:"start" binding:"required"`
	End        string `json:"end" binding:"required"`
	GroupSize  int    `json:"group_size" binding:"required,gt=0"`
	Note       string `json:"note"`
}

type ConfirmBookingRequest struct {
	Paid bool `json:"paid"`
}

type CancelBookingRequest struct {
	RefundConfirmed bool `json:"refund_confirmed"`
}

type RescheduleBookingRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type AddMessageRequest struct {
	From    string `json:"from" binding:"required"`
	Content string `json:"content" binding:"required"`
}
