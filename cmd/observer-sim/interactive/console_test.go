package interactive

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telephony-observer/observer-go/pkg/gateway"
	"github.com/telephony-observer/observer-go/pkg/observer"
	"github.com/telephony-observer/observer-go/pkg/source"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

func newTestConsole(t *testing.T) (*Console, *gateway.MemoryStateManager, *bytes.Buffer) {
	t.Helper()
	state := gateway.NewMemoryStateManager()
	reg := observer.NewRegistryWithConfig(
		gateway.NewSlotGateway(state, gateway.DefaultConfig()),
		observer.Config{ID: "console-test"},
	)
	var out bytes.Buffer
	return newConsole(reg, state, ConsoleConfig{}, &out), state, &out
}

// subscriberID returns the id printed by the last successful "on".
func subscriberID(t *testing.T, out string) string {
	t.Helper()
	i := strings.LastIndex(out, "(id ")
	require.NotEqual(t, -1, i, "no subscription in output: %s", out)
	return out[i+4 : i+12]
}

func TestConsoleSubscribeAndEmit(t *testing.T) {
	c, state, out := newTestConsole(t)

	assert.False(t, c.Execute("on call-state 1"))
	assert.Contains(t, out.String(), "Subscribed CALL_STATE on slot 1")
	assert.Equal(t, uint32(0x04), state.ActiveMask(1))

	out.Reset()
	c.Execute("emit call-state slot=1 state=1 number=5550100")
	assert.Contains(t, out.String(), `CALL_STATE slot=1: state=RINGING number="5550100"`)

	out.Reset()
	c.Execute("emit call-state slot=0 state=1")
	assert.Empty(t, out.String())
}

func TestConsoleUnsubscribeByID(t *testing.T) {
	c, state, out := newTestConsole(t)

	c.Execute("on sim-state 0")
	first := subscriberID(t, out.String())
	c.Execute("on sim-state 0")
	second := subscriberID(t, out.String())
	require.NotEqual(t, first, second)

	out.Reset()
	c.Execute("off sim-state " + first)
	assert.Contains(t, out.String(), "Removed 1 SIM_STATE listener(s)")
	assert.Equal(t, 1, c.registry.Len())
	assert.Equal(t, uint32(0x20), state.ActiveMask(0))

	out.Reset()
	c.Execute("off sim-state")
	assert.Contains(t, out.String(), "Removed 1 SIM_STATE listener(s)")
	assert.Zero(t, c.registry.Len())
	assert.Zero(t, state.ActiveMask(0))

	out.Reset()
	c.Execute("list")
	assert.Contains(t, out.String(), "No listeners")
}

func TestConsoleRejectsInvalidSlot(t *testing.T) {
	c, _, out := newTestConsole(t)

	c.Execute("on network-state 9")
	assert.Contains(t, out.String(), "Subscribe failed")
	assert.Zero(t, c.registry.Len())
}

func TestConsoleFailInjection(t *testing.T) {
	c, state, out := newTestConsole(t)

	c.Execute("fail add data-flow NO_SIM_CARD")
	c.Execute("on data-flow 0")
	assert.Contains(t, out.String(), "Subscribe failed")
	assert.Zero(t, state.ActiveMask(0))

	out.Reset()
	c.Execute("fail clear")
	c.Execute("on data-flow 0")
	assert.Contains(t, out.String(), "Subscribed DATA_FLOW on slot 0")

	out.Reset()
	c.Execute("status")
	assert.Contains(t, out.String(), "Calls:      2 (1 failed)")
}

func TestConsoleStatus(t *testing.T) {
	c, _, out := newTestConsole(t)

	c.Execute("on signal-info 0")
	c.Execute("on cell-info 0")
	out.Reset()
	c.Execute("status")

	s := out.String()
	assert.Contains(t, s, "Registry:   console-test")
	assert.Contains(t, s, "SIGNAL_INFO/0 CELL_INFO/0")
	assert.Contains(t, s, "mask 0x18 (CELL_INFO,SIGNAL_INFO)")
}

func TestConsoleRecordAndReplay(t *testing.T) {
	c, _, out := newTestConsole(t)
	path := filepath.Join(t.TempDir(), "session.ocap")

	c.Execute("record " + path)
	c.Execute("emit data-connection slot=0 state=2 network=9")
	c.Execute("emit icc-account")
	out.Reset()
	c.Execute("record stop")
	assert.Contains(t, out.String(), "Recorded 2 notification(s)")

	c.Execute("on data-connection 0")
	out.Reset()
	c.Execute("replay " + path)
	assert.Contains(t, out.String(), "DATA_CONNECTION slot=0:")
	assert.Contains(t, out.String(), "Replayed 2 notification(s)")
}

func TestConsoleReplayScenario(t *testing.T) {
	c, _, out := newTestConsole(t)
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
frames:
  - event: ICC_ACCOUNT
  - event: ICC_ACCOUNT
`), 0o644))

	c.Execute("on icc-account")
	out.Reset()
	c.Execute("replay " + path)
	assert.Equal(t, 2, strings.Count(out.String(), "account changed"))
}

func TestConsoleUnknownCommand(t *testing.T) {
	c, _, out := newTestConsole(t)

	assert.False(t, c.Execute("bogus"))
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.True(t, c.Execute("quit"))
	assert.False(t, c.Execute("   "))
}

func TestBuildFrame(t *testing.T) {
	tests := []struct {
		name string
		et   telephony.EventType
		args []string
		want source.Frame
	}{
		{
			name: "sim state",
			et:   telephony.EventSimStateUpdate,
			args: []string{"slot=1", "card=1", "state=4", "reason=2"},
			want: source.Frame{EventType: telephony.EventSimStateUpdate, SlotID: 1, CardType: 1, SimState: 4, LockReason: 2},
		},
		{
			name: "default slot",
			et:   telephony.EventCellularDataFlowUpdate,
			args: []string{"type=3"},
			want: source.Frame{EventType: telephony.EventCellularDataFlowUpdate, DataFlowType: 3},
		},
		{
			name: "signals",
			et:   telephony.EventSignalStrengthsUpdate,
			args: []string{"signal=6:3:-90", "signal=1:2:-100"},
			want: source.Frame{EventType: telephony.EventSignalStrengthsUpdate, Signals: []telephony.RawSignalInformation{
				{SignalType: 6, SignalLevel: 3, DBm: -90},
				{SignalType: 1, SignalLevel: 2, DBm: -100},
			}},
		},
		{
			name: "network state",
			et:   telephony.EventNetworkStateUpdate,
			args: []string{"reg=1", "tech=9", "long=Carrier", "roaming=true"},
			want: source.Frame{EventType: telephony.EventNetworkStateUpdate, Network: &telephony.RawNetworkState{
				RegState: 1, CfgTech: 9, LongOperatorName: "Carrier", IsRoaming: true,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildFrame(tt.et, tt.args, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildFrameErrors(t *testing.T) {
	_, err := buildFrame(telephony.EventSimStateUpdate, []string{"color=red"}, 0)
	assert.ErrorContains(t, err, "unknown field")

	_, err = buildFrame(telephony.EventSimStateUpdate, []string{"state"}, 0)
	assert.ErrorContains(t, err, "expected key=value")

	_, err = buildFrame(telephony.EventCellInfoUpdate, []string{"cell=1:2"}, 0)
	assert.ErrorContains(t, err, "TYPE:LEVEL:DBM")

	_, err = buildFrame(telephony.EventCfuIndicatorUpdate, nil, 0)
	assert.Error(t, err)
}

func TestMaskNames(t *testing.T) {
	assert.Equal(t, "-", maskNames(0))
	assert.Equal(t, "CALL_STATE,SIM_STATE", maskNames(0x24))
}
