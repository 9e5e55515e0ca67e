package dto

// UpdatePlacementRequest updates placement dates or status (admin override)
type UpdatePlacementRequest struct {
	StartDate *string `json:"startDate,omitempty" example:"2025-06-01"`
	EndDate   *string `json:"endDate,omitempty" example:"2025-08-31"`
	Status    *string `json:"status,omitempty" binding:"omitempty,oneof=Active Completed"`
}
