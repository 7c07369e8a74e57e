package dto

type CreateInquiryRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty" validate:"max=30"`
	Message    string `json:"message" validate:"required,min=5,max=5000"`
}
