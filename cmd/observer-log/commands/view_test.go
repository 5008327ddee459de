package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/telephony-observer/observer-go/pkg/log"
	"github.com/telephony-observer/observer-go/pkg/telephony"
)

func TestFormatSubscriptionEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[0])

	output := buf.String()
	if !strings.Contains(output, "2026-01-28T10:15:32.123456Z [reg:reg-1234]") {
		t.Errorf("unexpected header: %s", output)
	}
	if !strings.Contains(output, "subscription:added") {
		t.Error("expected kind in header")
	}
	if !strings.Contains(output, "SIM_STATE slot=1") {
		t.Error("expected event type and slot in header")
	}
	if !strings.Contains(output, "Callback: SimState") {
		t.Error("expected callback variant")
	}
	if !strings.Contains(output, "Remaining: 1") {
		t.Error("expected remaining count")
	}
}

func TestFormatGatewayFailure(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, log.Event{
		Timestamp: time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC),
		Category:  log.CategoryGateway,
		EventType: telephony.EventCallStateUpdate,
		SlotID:    -1,
		Gateway: &log.GatewayEvent{
			Action:  log.GatewayActivate,
			Mask:    0x04,
			Failed:  true,
			Code:    telephony.CodeSystemError,
			Message: "System internal error.",
		},
	})

	output := buf.String()
	if !strings.Contains(output, "CALL_STATE slot=-1") {
		t.Errorf("unexpected header: %s", output)
	}
	if !strings.Contains(output, "Mask: 0x00000004") {
		t.Error("expected mask")
	}
	if !strings.Contains(output, "Failed: System internal error. (8300003)") {
		t.Error("expected failure details")
	}
}

func TestFormatDispatchAndError(t *testing.T) {
	events := sampleEvents()

	var buf bytes.Buffer
	formatEvent(&buf, events[2])
	output := buf.String()
	if !strings.Contains(output, "ICC_ACCOUNT slot=all") {
		t.Errorf("unexpected header: %s", output)
	}
	if !strings.Contains(output, "Invoked: 0") {
		t.Error("expected invoked count")
	}
	if !strings.Contains(output, "Duration: 1.500us") {
		t.Errorf("expected duration, got: %s", output)
	}

	buf.Reset()
	formatEvent(&buf, events[3])
	output = buf.String()
	for _, want := range []string{"Message: callback variant", "Code: 8300003", "Context: dispatch"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0.500us"},
		{1500 * time.Microsecond, "1.500ms"},
		{2500 * time.Millisecond, "2.500s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v): got %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestRunViewFiltered(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	category := log.CategoryGateway
	var buf bytes.Buffer
	if err := RunView(path, log.Filter{Category: &category}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "gateway:activate") {
		t.Error("expected gateway event")
	}
	if strings.Contains(output, "subscription:added") {
		t.Error("expected subscription event to be filtered out")
	}
}

func TestParseSlotFlag(t *testing.T) {
	if slot, err := ParseSlotFlag("ALL"); err != nil || slot != log.AllSlots {
		t.Errorf("ParseSlotFlag(ALL): got %d, %v", slot, err)
	}
	if slot, err := ParseSlotFlag("-1"); err != nil || slot != -1 {
		t.Errorf("ParseSlotFlag(-1): got %d, %v", slot, err)
	}
	if _, err := ParseSlotFlag("x"); err == nil {
		t.Error("expected error for non-numeric slot")
	}
}
