package telephony

import "fmt"

// Public error codes.
const (
	CodeSuccess               int32 = 8300000
	CodeInvalidParameter      int32 = 8300001
	CodeServiceError          int32 = 8300002
	CodeSystemError           int32 = 8300003
	CodeNoSimCard             int32 = 8300004
	CodeAirplaneModeOn        int32 = 8300005
	CodeNetworkNotInService   int32 = 8300006
	CodeUnknownError          int32 = 8300999
	CodePermissionDenied      int32 = 201
	CodeIllegalUseOfSystemAPI int32 = 202
)

// Public error messages, keyed by code.
var codeMessages = map[int32]string{
	CodeSuccess:               "Success.",
	CodeInvalidParameter:      "Invalid parameter value.",
	CodeServiceError:          "Operation failed. Cannot connect to service.",
	CodeSystemError:           "System internal error.",
	CodeNoSimCard:             "Do not have sim card.",
	CodeAirplaneModeOn:        "Airplane mode is on.",
	CodeNetworkNotInService:   "Network not in service.",
	CodeUnknownError:          "Unknown error code.",
	CodePermissionDenied:      "Permission denied.",
	CodeIllegalUseOfSystemAPI: "Non-system applications use system APIs.",
}

// BusinessError is a caller-visible failure with a public code and message.
type BusinessError struct {
	Code    int32
	Message string
}

// NewBusinessError returns a BusinessError for code using the standard
// message for that code.
func NewBusinessError(code int32) *BusinessError {
	return &BusinessError{Code: code, Message: MessageForCode(code)}
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Is reports whether target is a BusinessError with the same code, so
// errors.Is(err, ErrInvalidParameter) works regardless of message.
func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// MessageForCode returns the standard message for a public code.
func MessageForCode(code int32) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return codeMessages[CodeUnknownError]
}

// ErrInvalidParameter is returned when a slot/category combination is rejected.
var ErrInvalidParameter = NewBusinessError(CodeInvalidParameter)
