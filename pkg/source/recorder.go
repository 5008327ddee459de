package source

import (
	"sync"

	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// Recorder forwards notifications to a Sink and encodes each one as a
// Frame. Encoding errors are kept and reported by Err; forwarding always
// happens.
type Recorder struct {
	sink Sink
	enc  *Encoder

	mu  sync.Mutex
	err error
}

// NewRecorder returns a Recorder forwarding to sink and writing to enc.
func NewRecorder(sink Sink, enc *Encoder) *Recorder {
	return &Recorder{sink: sink, enc: enc}
}

// Err returns the first encoding error.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Count returns the number of frames encoded so far.
func (r *Recorder) Count() int {
	return r.enc.Count()
}

func (r *Recorder) record(f Frame) {
	if err := r.enc.Encode(f); err != nil {
		r.mu.Lock()
		if r.err == nil {
			r.err = err
		}
		r.mu.Unlock()
	}
}

func (r *Recorder) OnCellularDataFlowUpdated(slotID, dataFlowType int32) {
	r.record(Frame{EventType: telephony.EventCellularDataFlowUpdate, SlotID: slotID, DataFlowType: dataFlowType})
	r.sink.OnCellularDataFlowUpdated(slotID, dataFlowType)
}

func (r *Recorder) OnIccAccountUpdated() {
	r.record(Frame{EventType: telephony.EventIccAccountChange})
	r.sink.OnIccAccountUpdated()
}

func (r *Recorder) OnSimStateUpdated(slotID, cardType, state, reason int32) {
	r.record(Frame{EventType: telephony.EventSimStateUpdate, SlotID: slotID, CardType: cardType, SimState: state, LockReason: reason})
	r.sink.OnSimStateUpdated(slotID, cardType, state, reason)
}

func (r *Recorder) OnSignalInfoUpdated(slotID int32, signals []telephony.RawSignalInformation) {
	r.record(Frame{EventType: telephony.EventSignalStrengthsUpdate, SlotID: slotID, Signals: signals})
	r.sink.OnSignalInfoUpdated(slotID, signals)
}

func (r *Recorder) OnCellInfoUpdated(slotID int32, cells []telephony.RawCellInformation) {
	r.record(Frame{EventType: telephony.EventCellInfoUpdate, SlotID: slotID, Cells: cells})
	r.sink.OnCellInfoUpdated(slotID, cells)
}

func (r *Recorder) OnCellularDataConnectStateUpdated(slotID, dataState, networkType int32) {
	r.record(Frame{EventType: telephony.EventDataConnectionUpdate, SlotID: slotID, DataState: dataState, NetworkType: networkType})
	r.sink.OnCellularDataConnectStateUpdated(slotID, dataState, networkType)
}

func (r *Recorder) OnNetworkStateUpdated(slotID int32, state telephony.RawNetworkState) {
	r.record(Frame{EventType: telephony.EventNetworkStateUpdate, SlotID: slotID, Network: &state})
	r.sink.OnNetworkStateUpdated(slotID, state)
}

func (r *Recorder) OnCallStateUpdated(slotID int32, state telephony.RawCallState) {
	r.record(Frame{EventType: telephony.EventCallStateUpdate, SlotID: slotID, Call: &state})
	r.sink.OnCallStateUpdated(slotID, state)
}

var _ Sink = (*Recorder)(nil)
