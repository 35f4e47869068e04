package dto

type ForgotPasscodeInput struct {
	Handle string `json:"handle"`
}

type VerifyOTPInput struct {
	Handle      string `json:"handle"`
	Code        string `json:"code"`
	NewPasscode string `json:"new_passcode"`
}

type ResendOTPInput struct {
	Handle string `json:"handle"`
}

// RecoveryAck is the generic success-shaped response returned by the
// recovery flows regardless of whether the member number exists.
type RecoveryAck struct {
	Message string `json:"message"`
}
