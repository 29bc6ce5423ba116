package dto

// Request DTOs

type SendCodeRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type CheckCodeRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// Response DTOs

type VerificationStatusResponse struct {
	Phone    string `json:"phone"`
	Verified bool   `json:"verified"`
}
