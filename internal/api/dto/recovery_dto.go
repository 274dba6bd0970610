package dto

// SendRecoveryLinkRequest payload for password recovery.
type SendRecoveryLinkRequest struct {
	Email string `json:"email"`
}

// ConfirmRecoveryRequest redeems a recovery token.
type ConfirmRecoveryRequest struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}
