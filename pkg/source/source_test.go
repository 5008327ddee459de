package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// ---------------------------------------------------------------------------
// stubSink
// ---------------------------------------------------------------------------

type stubSink struct{ mock.Mock }

func (s *stubSink) OnCellularDataFlowUpdated(slotID, dataFlowType int32) {
	s.Called(slotID, dataFlowType)
}
func (s *stubSink) OnIccAccountUpdated() { s.Called() }
func (s *stubSink) OnSimStateUpdated(slotID, cardType, state, reason int32) {
	s.Called(slotID, cardType, state, reason)
}
func (s *stubSink) OnSignalInfoUpdated(slotID int32, signals []telephony.RawSignalInformation) {
	s.Called(slotID, signals)
}
func (s *stubSink) OnCellInfoUpdated(slotID int32, cells []telephony.RawCellInformation) {
	s.Called(slotID, cells)
}
func (s *stubSink) OnCellularDataConnectStateUpdated(slotID, dataState, networkType int32) {
	s.Called(slotID, dataState, networkType)
}
func (s *stubSink) OnNetworkStateUpdated(slotID int32, state telephony.RawNetworkState) {
	s.Called(slotID, state)
}
func (s *stubSink) OnCallStateUpdated(slotID int32, state telephony.RawCallState) {
	s.Called(slotID, state)
}

func sampleFrames() []Frame {
	return []Frame{
		{EventType: telephony.EventSimStateUpdate, SlotID: 0, CardType: 20, SimState: 4},
		{EventType: telephony.EventCallStateUpdate, SlotID: 1, Call: &telephony.RawCallState{State: 1, Number: "10086"}},
		{EventType: telephony.EventSignalStrengthsUpdate, SlotID: 0, Signals: []telephony.RawSignalInformation{{SignalType: 5, SignalLevel: 3, DBm: -95}}},
		{EventType: telephony.EventIccAccountChange},
	}
}

func TestFrameValidate(t *testing.T) {
	assert.NoError(t, Frame{EventType: telephony.EventSimStateUpdate}.Validate())
	assert.ErrorIs(t, Frame{EventType: telephony.EventCfuIndicatorUpdate}.Validate(), ErrUnsupportedEvent)
	assert.ErrorIs(t, Frame{EventType: telephony.EventNone}.Validate(), ErrUnsupportedEvent)
	assert.ErrorIs(t, Frame{EventType: telephony.EventNetworkStateUpdate}.Validate(), ErrMissingPayload)
	assert.ErrorIs(t, Frame{EventType: telephony.EventCallStateUpdate}.Validate(), ErrMissingPayload)
}

func TestFrameDeliver(t *testing.T) {
	sink := &stubSink{}
	sink.On("OnSimStateUpdated", int32(0), int32(20), int32(4), int32(0)).Return().Once()
	sink.On("OnCallStateUpdated", int32(1), telephony.RawCallState{State: 1, Number: "10086"}).Return().Once()
	sink.On("OnSignalInfoUpdated", int32(0), mock.Anything).Return().Once()
	sink.On("OnIccAccountUpdated").Return().Once()

	for _, f := range sampleFrames() {
		require.NoError(t, f.Deliver(sink))
	}
	sink.AssertExpectations(t)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, f := range sampleFrames() {
		require.NoError(t, enc.Encode(f))
	}
	assert.Equal(t, 4, enc.Count())

	dec := NewDecoder(&buf)
	var got []Frame
	for {
		f, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, f)
	}

	require.Len(t, got, 4)
	assert.Equal(t, telephony.EventCallStateUpdate, got[1].EventType)
	require.NotNil(t, got[1].Call)
	assert.Equal(t, "10086", got[1].Call.Number)
	assert.Equal(t, int32(-95), got[2].Signals[0].DBm)
}

func TestEncoderStampsOffsets(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	base := time.Unix(1000, 0)
	ticks := []time.Time{base, base.Add(250 * time.Millisecond)}
	enc.now = func() time.Time {
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}

	require.NoError(t, enc.Encode(Frame{EventType: telephony.EventIccAccountChange}))
	require.NoError(t, enc.Encode(Frame{EventType: telephony.EventIccAccountChange}))

	dec := NewDecoder(&buf)
	first, err := dec.Decode()
	require.NoError(t, err)
	second, err := dec.Decode()
	require.NoError(t, err)
	assert.Zero(t, first.Offset)
	assert.Equal(t, 250*time.Millisecond, second.Offset)
}

func TestReplayDeliversAll(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, f := range sampleFrames() {
		require.NoError(t, enc.Encode(f))
	}

	sink := &stubSink{}
	sink.On("OnSimStateUpdated", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	sink.On("OnCallStateUpdated", mock.Anything, mock.Anything).Return()
	sink.On("OnSignalInfoUpdated", mock.Anything, mock.Anything).Return()
	sink.On("OnIccAccountUpdated").Return()

	n, err := Replay(context.Background(), &buf, sink, ReplayConfig{})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	sink.AssertNumberOfCalls(t, "OnIccAccountUpdated", 1)
}

func TestReplayStopsOnInvalidFrame(t *testing.T) {
	frames := []Frame{
		{EventType: telephony.EventIccAccountChange},
		{EventType: telephony.EventNetworkStateUpdate},
		{EventType: telephony.EventIccAccountChange},
	}
	sink := &stubSink{}
	sink.On("OnIccAccountUpdated").Return()

	n, err := ReplayFrames(context.Background(), frames, sink, ReplayConfig{})
	assert.ErrorIs(t, err, ErrMissingPayload)
	assert.Equal(t, 1, n)

	n, err = ReplayFrames(context.Background(), frames, sink, ReplayConfig{SkipInvalid: true})
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReplayHonorsCancellation(t *testing.T) {
	frames := []Frame{
		{EventType: telephony.EventIccAccountChange},
		{EventType: telephony.EventIccAccountChange, Offset: time.Hour},
	}
	sink := &stubSink{}
	sink.On("OnIccAccountUpdated").Return()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	n, err := ReplayFrames(ctx, frames, sink, ReplayConfig{Pace: true})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, n)
}

func TestReplayDecodeError(t *testing.T) {
	_, err := Replay(context.Background(), strings.NewReader("\xff\xff"), &stubSink{}, ReplayConfig{})
	assert.Error(t, err)
}

func TestRecorderForwardsAndEncodes(t *testing.T) {
	var buf bytes.Buffer
	sink := &stubSink{}
	sink.On("OnCellularDataConnectStateUpdated", int32(1), int32(2), int32(9)).Return()
	sink.On("OnNetworkStateUpdated", int32(0), mock.Anything).Return()

	rec := NewRecorder(sink, NewEncoder(&buf))
	rec.OnCellularDataConnectStateUpdated(1, 2, 9)
	rec.OnNetworkStateUpdated(0, telephony.RawNetworkState{LongOperatorName: "Carrier", RegState: 1})
	require.NoError(t, rec.Err())
	assert.Equal(t, 2, rec.Count())
	sink.AssertExpectations(t)

	replayed := &stubSink{}
	replayed.On("OnCellularDataConnectStateUpdated", int32(1), int32(2), int32(9)).Return().Once()
	replayed.On("OnNetworkStateUpdated", int32(0), telephony.RawNetworkState{LongOperatorName: "Carrier", RegState: 1}).Return().Once()

	n, err := Replay(context.Background(), &buf, replayed, ReplayConfig{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	replayed.AssertExpectations(t)
}

func TestScenarioRoundTrip(t *testing.T) {
	data := []byte(`
frames:
  - event: SIM_STATE
    slot: 1
    card_type: 20
    sim_state: 4
  - event: call-state
    offset: 500ms
    call: {state: 1, number: "10086"}
  - event: ICC_ACCOUNT
`)
	frames, err := ParseScenario(data)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, telephony.EventSimStateUpdate, frames[0].EventType)
	assert.Equal(t, int32(1), frames[0].SlotID)
	assert.Equal(t, 500*time.Millisecond, frames[1].Offset)
	assert.Equal(t, "10086", frames[1].Call.Number)

	var buf bytes.Buffer
	require.NoError(t, WriteScenario(&buf, frames))
	again, err := ParseScenario(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, frames, again)
}

func TestScenarioErrors(t *testing.T) {
	_, err := ParseScenario([]byte("frames:\n  - event: BOGUS\n"))
	assert.Error(t, err)

	_, err = ParseScenario([]byte("frames:\n  - event: NETWORK_STATE\n"))
	assert.ErrorIs(t, err, ErrMissingPayload)

	_, err = LoadScenario("/nonexistent/scenario.yaml")
	assert.Error(t, err)
}
