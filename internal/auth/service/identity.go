package service

import (
	"strings"

	autherror "github.com/andrianpratama/member-auth-service/internal/errors"
)

// ParseMemberNo extracts the member number from a composite login handle of
// the form "<branch-prefix>/<member-no>". Everything after the first slash,
// trimmed, is the member number. Rejecting here means a malformed handle
// never reaches the record store.
func ParseMemberNo(handle string) (string, error) {
	parts := strings.SplitN(handle, "/", 2)
	if len(parts) < 2 {
		return "", autherror.ErrInvalidHandle
	}
	memberNo := strings.TrimSpace(parts[1])
	if memberNo == "" {
		return "", autherror.ErrInvalidHandle
	}
	return memberNo, nil
}
