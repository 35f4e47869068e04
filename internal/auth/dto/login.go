package dto

type LoginInput struct {
	Handle   string `json:"handle"`
	Passcode string `json:"passcode"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expires_in"`
	Member    MemberSummary `json:"member"`
}
