package errs

import (
	"net/http"

	"github.com/pkg/errors"
)

type ErrorType string

const (
	ErrorTypeBadRequest          ErrorType = "BadRequest"
	ErrorTypeSelectionIncomplete ErrorType = "SelectionIncomplete"
	ErrorTypeNotFound            ErrorType = "NotFound"
	ErrorTypeConfig              ErrorType = "ConfigurationError"
	ErrorTypeUpstream            ErrorType = "UpstreamError"
	ErrorTypeServerError         ErrorType = "ServerError"
)

// CarPriceError is an error carrying a type that maps onto an HTTP status
type CarPriceError interface {
	error
	ErrorType() ErrorType
	Message() string
	IsErrorType(errorType ErrorType) bool
	HTTPStatus() int
}

type commonError struct {
	errorType ErrorType
	message   string
}

func (e commonError) ErrorType() ErrorType {
	return e.errorType
}

func (e commonError) Message() string {
	return e.message
}

func (e commonError) Error() string {
	return e.message
}

func (e commonError) IsErrorType(errorType ErrorType) bool {
	return errorType == e.errorType
}

func (e commonError) HTTPStatus() int {
	return errorTypeToCode(e.errorType)
}

// New returns a typed error. Values with the same type and message compare equal.
func New(errorType ErrorType, message string) CarPriceError {
	return commonError{errorType, message}
}

// TypeOf returns the type of the first CarPriceError in err's chain, ErrorTypeServerError otherwise
func TypeOf(err error) ErrorType {
	var ce CarPriceError
	if errors.As(err, &ce) {
		return ce.ErrorType()
	}
	return ErrorTypeServerError
}

// StatusCode returns the HTTP status for err
func StatusCode(err error) int {
	return errorTypeToCode(TypeOf(err))
}

func errorTypeToCode(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeBadRequest, ErrorTypeSelectionIncomplete:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeUpstream:
		return http.StatusBadGateway
	case ErrorTypeConfig, ErrorTypeServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
