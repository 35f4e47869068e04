package dto

type ChangePasscodeInput struct {
	CurrentPasscode string `json:"current_passcode"`
	NewPasscode     string `json:"new_passcode"`
}

type ResetPasscodeInput struct {
	OldPasscode string `json:"old_passcode"`
	NewPasscode string `json:"new_passcode"`
}
