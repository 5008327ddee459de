package telephony

// Raw records are what the notification source hands over before
// normalization. Every enumerated field is a plain integer code. CBOR keys
// are integers to keep recorded notification streams compact.

// RawSignalInformation is an unnormalized signal measurement.
type RawSignalInformation struct {
	SignalType  int32 `cbor:"1,keyasint" yaml:"signal_type"`
	SignalLevel int32 `cbor:"2,keyasint" yaml:"signal_level"`
	DBm         int32 `cbor:"3,keyasint" yaml:"dbm"`
}

// Normalize converts the raw record.
func (r RawSignalInformation) Normalize() SignalInformation {
	return SignalInformation{
		SignalType:  NetworkTypeFromCode(r.SignalType),
		SignalLevel: r.SignalLevel,
		DBm:         r.DBm,
	}
}

// RawCellInformation is an unnormalized cell observation.
type RawCellInformation struct {
	NetworkType       int32                `cbor:"1,keyasint" yaml:"network_type"`
	SignalInformation RawSignalInformation `cbor:"2,keyasint" yaml:"signal"`
}

// Normalize converts the raw record.
func (r RawCellInformation) Normalize() CellInformation {
	return CellInformation{
		NetworkType:       NetworkTypeFromCode(r.NetworkType),
		SignalInformation: r.SignalInformation.Normalize(),
	}
}

// RawNetworkState is an unnormalized network registration record.
type RawNetworkState struct {
	LongOperatorName  string `cbor:"1,keyasint,omitempty" yaml:"long_operator_name"`
	ShortOperatorName string `cbor:"2,keyasint,omitempty" yaml:"short_operator_name"`
	PlmnNumeric       string `cbor:"3,keyasint,omitempty" yaml:"plmn_numeric"`
	IsRoaming         bool   `cbor:"4,keyasint,omitempty" yaml:"is_roaming"`
	RegState          int32  `cbor:"5,keyasint" yaml:"reg_state"`
	CfgTech           int32  `cbor:"6,keyasint" yaml:"cfg_tech"`
	NsaState          int32  `cbor:"7,keyasint" yaml:"nsa_state"`
	IsEmergency       bool   `cbor:"8,keyasint,omitempty" yaml:"is_emergency"`
}

// Normalize converts the raw record.
func (r RawNetworkState) Normalize() NetworkState {
	return NetworkState{
		LongOperatorName:  r.LongOperatorName,
		ShortOperatorName: r.ShortOperatorName,
		PlmnNumeric:       r.PlmnNumeric,
		IsRoaming:         r.IsRoaming,
		RegState:          RegStateFromCode(r.RegState),
		CfgTech:           RadioTechnologyFromCode(r.CfgTech),
		NsaState:          NsaStateFromCode(r.NsaState),
		IsEmergency:       r.IsEmergency,
	}
}

// RawCallState is an unnormalized call state notification.
type RawCallState struct {
	State  int32  `cbor:"1,keyasint" yaml:"state"`
	Number string `cbor:"2,keyasint,omitempty" yaml:"number"`
}

// Normalize converts the raw record.
func (r RawCallState) Normalize() CallStateInfo {
	return CallStateInfo{
		State:  CallStateFromCode(r.State),
		Number: r.Number,
	}
}

// NormalizeSignals converts a list of raw signal records. A nil input yields
// an empty, non-nil slice so subscribers never see nil.
func NormalizeSignals(raw []RawSignalInformation) []SignalInformation {
	out := make([]SignalInformation, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.Normalize())
	}
	return out
}

// NormalizeCells converts a list of raw cell records.
func NormalizeCells(raw []RawCellInformation) []CellInformation {
	out := make([]CellInformation, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.Normalize())
	}
	return out
}
