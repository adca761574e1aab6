package order

// UpdateStatusRequest payload for a status change.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status Status `json:"status" example:"Approved"`
}

// ListResponse wraps dashboard rows with the filter that produced them.
// swagger:model
type ListResponse struct {
	Filter FilterKind `json:"filter" example:"monthly"`
	Count  int        `json:"count"`
	Items  []View     `json:"items"`
}

// StatusesResponse lists the configured statuses.
type StatusesResponse struct {
	Statuses []Status `json:"statuses"`
}

// YearsResponse lists the years offered by the yearly filter.
type YearsResponse struct {
	Years []int `json:"years"`
}
