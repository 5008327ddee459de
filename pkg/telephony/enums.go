package telephony

// DataFlowType describes cellular data activity.
type DataFlowType int32

const (
	DataFlowTypeNone    DataFlowType = 0
	DataFlowTypeDown    DataFlowType = 1
	DataFlowTypeUp      DataFlowType = 2
	DataFlowTypeUpDown  DataFlowType = 3
	DataFlowTypeDormant DataFlowType = 4
)

// DataFlowTypeFromCode converts a raw code, defaulting to DataFlowTypeNone.
func DataFlowTypeFromCode(code int32) DataFlowType {
	switch t := DataFlowType(code); t {
	case DataFlowTypeNone, DataFlowTypeDown, DataFlowTypeUp, DataFlowTypeUpDown, DataFlowTypeDormant:
		return t
	default:
		return DataFlowTypeNone
	}
}

// String returns the data flow name.
func (t DataFlowType) String() string {
	switch t {
	case DataFlowTypeNone:
		return "NONE"
	case DataFlowTypeDown:
		return "DOWN"
	case DataFlowTypeUp:
		return "UP"
	case DataFlowTypeUpDown:
		return "UP_DOWN"
	case DataFlowTypeDormant:
		return "DORMANT"
	default:
		return "UNKNOWN"
	}
}

// SimState is the state of a SIM card.
type SimState int32

const (
	SimStateUnknown    SimState = 0
	SimStateNotPresent SimState = 1
	SimStateLocked     SimState = 2
	SimStateNotReady   SimState = 3
	SimStateReady      SimState = 4
	SimStateLoaded     SimState = 5
)

// SimStateFromCode converts a raw code, defaulting to SimStateUnknown.
func SimStateFromCode(code int32) SimState {
	if code < int32(SimStateUnknown) || code > int32(SimStateLoaded) {
		return SimStateUnknown
	}
	return SimState(code)
}

// String returns the SIM state name.
func (s SimState) String() string {
	switch s {
	case SimStateUnknown:
		return "UNKNOWN"
	case SimStateNotPresent:
		return "NOT_PRESENT"
	case SimStateLocked:
		return "LOCKED"
	case SimStateNotReady:
		return "NOT_READY"
	case SimStateReady:
		return "READY"
	case SimStateLoaded:
		return "LOADED"
	default:
		return "UNKNOWN"
	}
}

// LockReason explains why a SIM is locked.
type LockReason int32

const (
	LockReasonSimNone LockReason = iota
	LockReasonSimPin
	LockReasonSimPuk
	LockReasonSimPnPin
	LockReasonSimPnPuk
	LockReasonSimPuPin
	LockReasonSimPuPuk
	LockReasonSimPpPin
	LockReasonSimPpPuk
	LockReasonSimPcPin
	LockReasonSimPcPuk
	LockReasonSimSimPin
	LockReasonSimSimPuk
)

var lockReasonNames = [...]string{
	"SIM_NONE", "SIM_PIN", "SIM_PUK", "SIM_PN_PIN", "SIM_PN_PUK", "SIM_PU_PIN",
	"SIM_PU_PUK", "SIM_PP_PIN", "SIM_PP_PUK", "SIM_PC_PIN", "SIM_PC_PUK",
	"SIM_SIM_PIN", "SIM_SIM_PUK",
}

// LockReasonFromCode converts a raw code, defaulting to LockReasonSimNone.
func LockReasonFromCode(code int32) LockReason {
	if code < int32(LockReasonSimNone) || code > int32(LockReasonSimSimPuk) {
		return LockReasonSimNone
	}
	return LockReason(code)
}

// String returns the lock reason name.
func (r LockReason) String() string {
	if r < LockReasonSimNone || r > LockReasonSimSimPuk {
		return "UNKNOWN"
	}
	return lockReasonNames[r]
}

// CardType is the SIM card family. Values are sparse.
type CardType int32

const (
	CardTypeUnknown                CardType = -1
	CardTypeSingleModeSimCard      CardType = 10
	CardTypeSingleModeUsimCard     CardType = 20
	CardTypeSingleModeRuimCard     CardType = 30
	CardTypeDualModeCgCard         CardType = 40
	CardTypeCtNationalRoamingCard  CardType = 41
	CardTypeCuDualModeCard         CardType = 42
	CardTypeDualModeTelecomLteCard CardType = 43
	CardTypeDualModeUgCard         CardType = 50
	CardTypeSingleModeIsimCard     CardType = 60
)

// CardTypeFromCode converts a raw code, defaulting to CardTypeUnknown.
func CardTypeFromCode(code int32) CardType {
	switch t := CardType(code); t {
	case CardTypeSingleModeSimCard, CardTypeSingleModeUsimCard, CardTypeSingleModeRuimCard,
		CardTypeDualModeCgCard, CardTypeCtNationalRoamingCard, CardTypeCuDualModeCard,
		CardTypeDualModeTelecomLteCard, CardTypeDualModeUgCard, CardTypeSingleModeIsimCard:
		return t
	default:
		return CardTypeUnknown
	}
}

// String returns the card type name.
func (t CardType) String() string {
	switch t {
	case CardTypeSingleModeSimCard:
		return "SINGLE_MODE_SIM_CARD"
	case CardTypeSingleModeUsimCard:
		return "SINGLE_MODE_USIM_CARD"
	case CardTypeSingleModeRuimCard:
		return "SINGLE_MODE_RUIM_CARD"
	case CardTypeDualModeCgCard:
		return "DUAL_MODE_CG_CARD"
	case CardTypeCtNationalRoamingCard:
		return "CT_NATIONAL_ROAMING_CARD"
	case CardTypeCuDualModeCard:
		return "CU_DUAL_MODE_CARD"
	case CardTypeDualModeTelecomLteCard:
		return "DUAL_MODE_TELECOM_LTE_CARD"
	case CardTypeDualModeUgCard:
		return "DUAL_MODE_UG_CARD"
	case CardTypeSingleModeIsimCard:
		return "SINGLE_MODE_ISIM_CARD"
	default:
		return "UNKNOWN_CARD"
	}
}

// NetworkType is the radio access network family of a signal or cell.
type NetworkType int32

const (
	NetworkTypeUnknown NetworkType = 0
	NetworkTypeGsm     NetworkType = 1
	NetworkTypeCdma    NetworkType = 2
	NetworkTypeWcdma   NetworkType = 3
	NetworkTypeTdscdma NetworkType = 4
	NetworkTypeLte     NetworkType = 5
	NetworkTypeNr      NetworkType = 6
)

// NetworkTypeFromCode converts a raw code, defaulting to NetworkTypeUnknown.
func NetworkTypeFromCode(code int32) NetworkType {
	if code < int32(NetworkTypeUnknown) || code > int32(NetworkTypeNr) {
		return NetworkTypeUnknown
	}
	return NetworkType(code)
}

// String returns the network type name.
func (t NetworkType) String() string {
	switch t {
	case NetworkTypeGsm:
		return "GSM"
	case NetworkTypeCdma:
		return "CDMA"
	case NetworkTypeWcdma:
		return "WCDMA"
	case NetworkTypeTdscdma:
		return "TDSCDMA"
	case NetworkTypeLte:
		return "LTE"
	case NetworkTypeNr:
		return "NR"
	default:
		return "UNKNOWN"
	}
}

// DataConnectState is the cellular data link state.
type DataConnectState int32

const (
	DataStateUnknown      DataConnectState = -1
	DataStateDisconnected DataConnectState = 0
	DataStateConnecting   DataConnectState = 1
	DataStateConnected    DataConnectState = 2
	DataStateSuspended    DataConnectState = 3
)

// DataConnectStateFromCode converts a raw code, defaulting to DataStateUnknown.
func DataConnectStateFromCode(code int32) DataConnectState {
	if code < int32(DataStateDisconnected) || code > int32(DataStateSuspended) {
		return DataStateUnknown
	}
	return DataConnectState(code)
}

// String returns the data connection state name.
func (s DataConnectState) String() string {
	switch s {
	case DataStateDisconnected:
		return "DISCONNECTED"
	case DataStateConnecting:
		return "CONNECTING"
	case DataStateConnected:
		return "CONNECTED"
	case DataStateSuspended:
		return "SUSPENDED"
	default:
		return "UNKNOWN"
	}
}

// RadioTechnology is the radio access technology in use.
type RadioTechnology int32

const (
	RadioTechnologyUnknown RadioTechnology = iota
	RadioTechnologyGsm
	RadioTechnology1xRtt
	RadioTechnologyWcdma
	RadioTechnologyHspa
	RadioTechnologyHspap
	RadioTechnologyTdScdma
	RadioTechnologyEvdo
	RadioTechnologyEhrpd
	RadioTechnologyLte
	RadioTechnologyLteCa
	RadioTechnologyIwlan
	RadioTechnologyNr
)

var radioTechnologyNames = [...]string{
	"UNKNOWN", "GSM", "1XRTT", "WCDMA", "HSPA", "HSPAP", "TD_SCDMA", "EVDO",
	"EHRPD", "LTE", "LTE_CA", "IWLAN", "NR",
}

// RadioTechnologyFromCode converts a raw code, defaulting to RadioTechnologyUnknown.
func RadioTechnologyFromCode(code int32) RadioTechnology {
	if code < int32(RadioTechnologyUnknown) || code > int32(RadioTechnologyNr) {
		return RadioTechnologyUnknown
	}
	return RadioTechnology(code)
}

// String returns the radio technology name.
func (t RadioTechnology) String() string {
	if t < RadioTechnologyUnknown || t > RadioTechnologyNr {
		return "UNKNOWN"
	}
	return radioTechnologyNames[t]
}

// RegState is the network registration state.
type RegState int32

const (
	RegStateNoService         RegState = 0
	RegStateInService         RegState = 1
	RegStateEmergencyCallOnly RegState = 2
	RegStatePowerOff          RegState = 3
)

// RegStateFromCode converts a raw code, defaulting to RegStateNoService.
func RegStateFromCode(code int32) RegState {
	if code < int32(RegStateNoService) || code > int32(RegStatePowerOff) {
		return RegStateNoService
	}
	return RegState(code)
}

// String returns the registration state name.
func (s RegState) String() string {
	switch s {
	case RegStateInService:
		return "IN_SERVICE"
	case RegStateEmergencyCallOnly:
		return "EMERGENCY_CALL_ONLY"
	case RegStatePowerOff:
		return "POWER_OFF"
	default:
		return "NO_SERVICE"
	}
}

// NsaState is the 5G non-standalone state.
type NsaState int32

const (
	NsaStateNotSupport      NsaState = 1
	NsaStateNoDetect        NsaState = 2
	NsaStateConnectedDetect NsaState = 3
	NsaStateIdleDetect      NsaState = 4
	NsaStateDualConnected   NsaState = 5
	NsaStateSaAttached      NsaState = 6
)

// NsaStateFromCode converts a raw code, defaulting to NsaStateNotSupport.
func NsaStateFromCode(code int32) NsaState {
	if code < int32(NsaStateNotSupport) || code > int32(NsaStateSaAttached) {
		return NsaStateNotSupport
	}
	return NsaState(code)
}

// String returns the NSA state name.
func (s NsaState) String() string {
	switch s {
	case NsaStateNoDetect:
		return "NO_DETECT"
	case NsaStateConnectedDetect:
		return "CONNECTED_DETECT"
	case NsaStateIdleDetect:
		return "IDLE_DETECT"
	case NsaStateDualConnected:
		return "DUAL_CONNECTED"
	case NsaStateSaAttached:
		return "SA_ATTACHED"
	default:
		return "NOT_SUPPORT"
	}
}

// CallState is the voice call state.
type CallState int32

const (
	CallStateUnknown  CallState = -1
	CallStateIdle     CallState = 0
	CallStateRinging  CallState = 1
	CallStateOffhook  CallState = 2
	CallStateAnswered CallState = 3
)

// CallStateFromCode converts a raw code, defaulting to CallStateUnknown.
func CallStateFromCode(code int32) CallState {
	if code < int32(CallStateUnknown) || code > int32(CallStateAnswered) {
		return CallStateUnknown
	}
	return CallState(code)
}

// String returns the call state name.
func (s CallState) String() string {
	switch s {
	case CallStateIdle:
		return "IDLE"
	case CallStateRinging:
		return "RINGING"
	case CallStateOffhook:
		return "OFFHOOK"
	case CallStateAnswered:
		return "ANSWERED"
	default:
		return "UNKNOWN"
	}
}
