package output

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

// ReportedError marks an error whose message was already shown to the
// user. The command still fails, but the error is not printed again.
type ReportedError struct {
	Err error
}

// Error implements the error interface.
func (e *ReportedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the original error.
func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var re *ReportedError
	return errors.As(err, &re)
}

// Describe returns a short Vietnamese explanation of err.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var timeout interface{ Timeout() bool }
	var he *domain.HTTPError
	switch {
	case errors.Is(err, context.Canceled):
		return "đã hủy"
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &timeout) && timeout.Timeout():
		return "quá thời gian chờ phản hồi"
	case errors.Is(err, domain.ErrConsentDenied):
		return "bạn chưa đồng ý chia sẻ thông tin đăng nhập"
	case errors.Is(err, domain.ErrCredentialUnavailable), errors.Is(err, domain.ErrNoToken):
		return "chưa có thông tin đăng nhập"
	case errors.As(err, &he):
		return describeStatus(he.StatusCode)
	case errors.Is(err, domain.ErrNetwork):
		return "không kết nối được máy chủ"
	case errors.Is(err, domain.ErrParse):
		return "dữ liệu trả về không hợp lệ"
	case errors.Is(err, domain.ErrValidation):
		return "thông tin nhập không hợp lệ"
	case errors.Is(err, domain.ErrNotFound):
		return "không tìm thấy dữ liệu"
	default:
		return "đã xảy ra lỗi"
	}
}

func describeStatus(code int) string {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Sprintf("phiên đăng nhập không hợp lệ (HTTP %d)", code)
	case code == http.StatusNotFound:
		return fmt.Sprintf("không tìm thấy (HTTP %d)", code)
	case code >= 500:
		return fmt.Sprintf("máy chủ đang gặp sự cố (HTTP %d)", code)
	default:
		return fmt.Sprintf("máy chủ từ chối yêu cầu (HTTP %d)", code)
	}
}
