package retry

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
)

// TimeoutError интерфейс для ошибок таймаута
type TimeoutError interface {
	Timeout() bool
}

// ValidationError интерфейс для ошибок валидации
type ValidationError interface {
	Validation() bool
}

// StatusError ответ внешнего сервиса с неуспешным HTTP статусом
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Service, e.StatusCode)
}

// Temporary сообщает, имеет ли смысл повторить запрос
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// IsTimeout проверяет, является ли ошибка таймаутом
func IsTimeout(err error) bool {
	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		return timeoutErr.Timeout()
	}
	if os.IsTimeout(err) {
		return true
	}
	var sysErr syscall.Errno
	if errors.As(err, &sysErr) {
		return sysErr == syscall.ETIMEDOUT
	}
	return false
}

// IsConnectionError проверяет, является ли ошибка проблемой соединения
func IsConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var sysErr syscall.Errno
	if errors.As(err, &sysErr) {
		switch sysErr {
		case syscall.ECONNREFUSED,
			syscall.ECONNRESET,
			syscall.ECONNABORTED,
			syscall.ENETUNREACH,
			syscall.ENETDOWN:
			return true
		}
	}

	return false
}

// IsValidationError проверяет, является ли ошибка проблемой валидации
func IsValidationError(err error) bool {
	var validErr ValidationError
	if errors.As(err, &validErr) {
		return validErr.Validation()
	}
	return false
}

// IsTransientError проверяет, является ли ошибка временной
func IsTransientError(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return IsTimeout(err) || IsConnectionError(err)
}

// ShouldRetry определяет, нужно ли повторять операцию для данной ошибки.
// Подходит для WithRetryIf в HTTP клиентах
func ShouldRetry(err error) bool {
	if err == nil || IsValidationError(err) || IsPermanent(err) {
		return false
	}
	return IsTransientError(err)
}
