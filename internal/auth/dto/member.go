package dto

// MemberSummary is the minimal profile returned on login. Financial fields
// live behind the read-only endpoints of the main portal service, not here.
type MemberSummary struct {
	MemberNo string `json:"member_no"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}
