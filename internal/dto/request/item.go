package request

type CreateItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Available   *bool   `json:"available" validate:"required"`
	RequestID   *string `json:"request_id" validate:"omitempty,uuid"`
}

// UpdateItemRequest carries a partial patch; nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}
