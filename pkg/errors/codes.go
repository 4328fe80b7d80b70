package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every module.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeIO                 ErrorCode = "COMMON_010"
)

// Annotation module error codes.
const (
	ErrCodeSpanOutOfRange    ErrorCode = "ANN_001"
	ErrCodeMalformedFragment ErrorCode = "ANN_002"
	ErrCodeUnknownSchema     ErrorCode = "ANN_003"
)

// Ontology module error codes.
const (
	ErrCodeFrameNotFound      ErrorCode = "ONT_001"
	ErrCodeOntologyLoadFailed ErrorCode = "ONT_002"
)

// Corpus module error codes.
const (
	ErrCodeCounterpartMissing ErrorCode = "COR_001"
	ErrCodeCorpusLoadFailed   ErrorCode = "COR_002"
	ErrCodeOutputWriteFailed  ErrorCode = "COR_003"
	ErrCodeInstanceNotFound   ErrorCode = "COR_004"
)

// Aliases used by the factory functions below.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// HTTPStatus maps an ErrorCode to the HTTP status code that best describes it.
// Codes with no specific mapping resolve to 500.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeMalformedFragment,
		ErrCodeSpanOutOfRange, ErrCodeUnknownSchema:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFrameNotFound, ErrCodeInstanceNotFound,
		ErrCodeCounterpartMissing:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
