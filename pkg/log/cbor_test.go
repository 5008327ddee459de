package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/telephony-observer/observer-go/pkg/telephony"
)

func TestEncodeDecodeGatewayEvent(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	event := Event{
		Timestamp:  ts,
		RegistryID: "reg-1",
		Category:   CategoryGateway,
		EventType:  telephony.EventSimStateUpdate,
		SlotID:     1,
		Gateway: &GatewayEvent{
			Action:  GatewayActivate,
			Mask:    telephony.EventSimStateUpdate.Mask(),
			Failed:  true,
			Code:    telephony.CodeServiceError,
			Message: "Operation failed. Cannot connect to service.",
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, ts)
	}
	if decoded.EventType != telephony.EventSimStateUpdate {
		t.Errorf("EventType: got %v, want %v", decoded.EventType, telephony.EventSimStateUpdate)
	}
	if decoded.Gateway == nil {
		t.Fatal("Gateway is nil")
	}
	if *decoded.Gateway != *event.Gateway {
		t.Errorf("Gateway: got %+v, want %+v", *decoded.Gateway, *event.Gateway)
	}
	if decoded.Subscription != nil || decoded.Dispatch != nil || decoded.Error != nil {
		t.Error("unexpected payload set")
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	event := Event{
		Timestamp: time.Unix(0, 42).UTC(),
		Category:  CategoryDispatch,
		EventType: telephony.EventCallStateUpdate,
		SlotID:    -1,
		Dispatch:  &DispatchEvent{Invoked: 3},
	}
	a, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	b, _ := EncodeEvent(event)
	if !bytes.Equal(a, b) {
		t.Error("encoding differs between runs")
	}
}

func TestDecodeAll(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := range 3 {
		if err := enc.Encode(Event{SlotID: int32(i), Category: CategorySubscription}); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	events, err := DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[2].SlotID != 2 {
		t.Errorf("SlotID: got %d, want 2", events[2].SlotID)
	}
}

func TestDecodeAllTruncated(t *testing.T) {
	data, _ := EncodeEvent(Event{RegistryID: "reg-1"})
	_, err := DecodeAll(bytes.NewReader(data[:len(data)-2]))
	if err == nil {
		t.Error("expected error for truncated stream")
	}
}
