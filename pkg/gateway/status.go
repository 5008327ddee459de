package gateway

import "github.com/telephony-observer/observer-go/pkg/telephony"

// Internal status codes reported by a StateManager.
const (
	StatusSuccess int32 = 0

	// Argument failures.
	StatusArgumentMismatch int32 = 8001 + iota - 1
	StatusArgumentInvalid
	StatusArgumentNull
	StatusSlotIDInvalid

	// Service connection failures.
	StatusDescriptorMismatch
	StatusWriteDataFail
	StatusReadDataFail
	StatusIPCConnectFail
	StatusRegisterCallbackFail
	StatusCallbackAlreadyRegistered
	StatusUninit
	StatusUnregisterCallbackFail

	// Internal failures.
	StatusFail
	StatusLocalPtrNull
	StatusSubscribeBroadcastFail
	StatusRILCommandFail
	StatusDatabaseFail
	StatusUnknownNetworkType

	// Radio and permission conditions.
	StatusNoSimCard
	StatusAirplaneModeOn
	StatusNetworkNotInService
	StatusPermissionDenied
	StatusIllegalUseOfSystemAPI
)

// PermissionDeniedMessage is reported when observing a state requires a
// permission the caller lacks.
const PermissionDeniedMessage = "Permission denied. An attempt was made to Observer " +
	"On forbidden by permission : ohos.permission.GET_NETWORK_INFO or ohos.permission.LOCATION "

// ConvertError maps an internal status code to a public business error.
// StatusSuccess maps to nil.
func ConvertError(status int32) error {
	switch code := PublicCode(status); code {
	case telephony.CodeSuccess:
		return nil
	case telephony.CodePermissionDenied:
		return &telephony.BusinessError{Code: code, Message: PermissionDeniedMessage}
	default:
		return telephony.NewBusinessError(code)
	}
}

// PublicCode maps an internal status code to its public code.
func PublicCode(status int32) int32 {
	switch status {
	case StatusSuccess:
		return telephony.CodeSuccess
	case StatusArgumentMismatch, StatusArgumentInvalid, StatusArgumentNull, StatusSlotIDInvalid:
		return telephony.CodeInvalidParameter
	case StatusDescriptorMismatch, StatusWriteDataFail, StatusReadDataFail, StatusIPCConnectFail,
		StatusRegisterCallbackFail, StatusCallbackAlreadyRegistered, StatusUninit, StatusUnregisterCallbackFail:
		return telephony.CodeServiceError
	case StatusFail, StatusLocalPtrNull, StatusSubscribeBroadcastFail, StatusRILCommandFail,
		StatusDatabaseFail, StatusUnknownNetworkType:
		return telephony.CodeSystemError
	case StatusNoSimCard:
		return telephony.CodeNoSimCard
	case StatusAirplaneModeOn:
		return telephony.CodeAirplaneModeOn
	case StatusNetworkNotInService:
		return telephony.CodeNetworkNotInService
	case StatusPermissionDenied:
		return telephony.CodePermissionDenied
	case StatusIllegalUseOfSystemAPI:
		return telephony.CodeIllegalUseOfSystemAPI
	default:
		return telephony.CodeUnknownError
	}
}

// StatusName returns a short name for an internal status code.
func StatusName(status int32) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "UNKNOWN"
}

var statusNames = map[int32]string{
	StatusSuccess:                   "SUCCESS",
	StatusArgumentMismatch:          "ARGUMENT_MISMATCH",
	StatusArgumentInvalid:           "ARGUMENT_INVALID",
	StatusArgumentNull:              "ARGUMENT_NULL",
	StatusSlotIDInvalid:             "SLOT_ID_INVALID",
	StatusDescriptorMismatch:        "DESCRIPTOR_MISMATCH",
	StatusWriteDataFail:             "WRITE_DATA_FAIL",
	StatusReadDataFail:              "READ_DATA_FAIL",
	StatusIPCConnectFail:            "IPC_CONNECT_FAIL",
	StatusRegisterCallbackFail:      "REGISTER_CALLBACK_FAIL",
	StatusCallbackAlreadyRegistered: "CALLBACK_ALREADY_REGISTERED",
	StatusUninit:                    "UNINIT",
	StatusUnregisterCallbackFail:    "UNREGISTER_CALLBACK_FAIL",
	StatusFail:                      "FAIL",
	StatusLocalPtrNull:              "LOCAL_PTR_NULL",
	StatusSubscribeBroadcastFail:    "SUBSCRIBE_BROADCAST_FAIL",
	StatusRILCommandFail:            "RIL_COMMAND_FAIL",
	StatusDatabaseFail:              "DATABASE_FAIL",
	StatusUnknownNetworkType:        "UNKNOWN_NETWORK_TYPE",
	StatusNoSimCard:                 "NO_SIM_CARD",
	StatusAirplaneModeOn:            "AIRPLANE_MODE_ON",
	StatusNetworkNotInService:       "NETWORK_NOT_IN_SERVICE",
	StatusPermissionDenied:          "PERMISSION_DENIED",
	StatusIllegalUseOfSystemAPI:     "ILLEGAL_USE_OF_SYSTEM_API",
}

// ParseStatus returns the status code for a name produced by StatusName.
func ParseStatus(name string) (int32, bool) {
	for code, n := range statusNames {
		if n == name {
			return code, true
		}
	}
	return 0, false
}
