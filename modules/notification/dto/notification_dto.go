package dto

// MarkAsReadRequest selects the notifications to flag as read.
type MarkAsReadRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// UnreadCountResponse is the badge count for a user's notification feed.
type UnreadCountResponse struct {
	Count int `json:"count"`
}
