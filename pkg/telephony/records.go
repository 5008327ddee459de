package telephony

import "fmt"

// SimStateData is delivered to SIM state subscribers.
type SimStateData struct {
	Type   CardType
	State  SimState
	Reason LockReason
}

// String returns a compact representation for display.
func (d SimStateData) String() string {
	return fmt.Sprintf("type=%s state=%s reason=%s", d.Type, d.State, d.Reason)
}

// SignalInformation describes one measured signal.
type SignalInformation struct {
	SignalType  NetworkType
	SignalLevel int32
	DBm         int32
}

// String returns a compact representation for display.
func (s SignalInformation) String() string {
	return fmt.Sprintf("%s level=%d dbm=%d", s.SignalType, s.SignalLevel, s.DBm)
}

// CellInformation describes one observed cell.
type CellInformation struct {
	NetworkType       NetworkType
	SignalInformation SignalInformation
}

// String returns a compact representation for display.
func (c CellInformation) String() string {
	return fmt.Sprintf("%s [%s]", c.NetworkType, c.SignalInformation)
}

// DataConnectionStateInfo is delivered to data connection subscribers.
type DataConnectionStateInfo struct {
	State   DataConnectState
	Network RadioTechnology
}

// String returns a compact representation for display.
func (d DataConnectionStateInfo) String() string {
	return fmt.Sprintf("state=%s network=%s", d.State, d.Network)
}

// NetworkState is delivered to network registration subscribers.
type NetworkState struct {
	LongOperatorName  string
	ShortOperatorName string
	PlmnNumeric       string
	IsRoaming         bool
	RegState          RegState
	CfgTech           RadioTechnology
	NsaState          NsaState
	IsEmergency       bool
}

// String returns a compact representation for display.
func (n NetworkState) String() string {
	return fmt.Sprintf("operator=%q plmn=%s reg=%s tech=%s nsa=%s roaming=%t emergency=%t",
		n.LongOperatorName, n.PlmnNumeric, n.RegState, n.CfgTech, n.NsaState, n.IsRoaming, n.IsEmergency)
}

// CallStateInfo is delivered to call state subscribers.
type CallStateInfo struct {
	State  CallState
	Number string
}

// String returns a compact representation for display.
func (c CallStateInfo) String() string {
	return fmt.Sprintf("state=%s number=%q", c.State, c.Number)
}

// NewSimStateData builds a SimStateData from raw codes.
func NewSimStateData(cardType, state, reason int32) SimStateData {
	return SimStateData{
		Type:   CardTypeFromCode(cardType),
		State:  SimStateFromCode(state),
		Reason: LockReasonFromCode(reason),
	}
}

// NewDataConnectionStateInfo builds a DataConnectionStateInfo from raw codes.
func NewDataConnectionStateInfo(dataState, networkType int32) DataConnectionStateInfo {
	return DataConnectionStateInfo{
		State:   DataConnectStateFromCode(dataState),
		Network: RadioTechnologyFromCode(networkType),
	}
}
