package dto

// PaymentRequest carries the simulated consultation fee settlement. Only one
// of the card/insurance field groups is consulted, selected by Method.
type PaymentRequest struct {
	Method string `json:"method" validate:"required,oneof=card insurance"`

	// Card fields
	CardNumber string `json:"card_number" validate:"omitempty,min=12,max=19,numeric"`
	CardExpiry string `json:"card_expiry" validate:"omitempty,len=5"` // MM/YY
	CardCVC    string `json:"card_cvc" validate:"omitempty,min=3,max=4,numeric"`

	// Insurance fields
	InsuranceProvider string `json:"insurance_provider" validate:"omitempty,min=2"`
	PolicyNumber      string `json:"policy_number" validate:"omitempty,min=4"`
}

type PaymentResponse struct {
	Method    string `json:"method"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}
