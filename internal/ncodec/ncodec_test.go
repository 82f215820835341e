package ncodec

import (
	"testing"

	"github.com/kstaniek/go-ncodec/internal/canframe"
	"github.com/kstaniek/go-ncodec/internal/ncstream"
	"github.com/kstaniek/go-ncodec/internal/pdu"
)

func TestOpenSelectsCANCodec(t *testing.T) {
	stream := ncstream.NewMemoryStream(256)
	inst, err := Open("application/x-automotive-bus; interface=stream; type=frame; bus=can; schema=fbs; bus_id=1; node_id=2; interface_id=3", stream)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if inst.Kind() != KindCAN {
		t.Fatalf("Kind = %v, want KindCAN", inst.Kind())
	}
	if _, err := inst.WriteCANFrame(canframe.CanFrame{FrameID: 1, Payload: []byte("x")}); err != nil {
		t.Fatalf("WriteCANFrame: %v", err)
	}
	if _, err := inst.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestOpenSelectsPDUCodec(t *testing.T) {
	stream := ncstream.NewMemoryStream(256)
	inst, err := Open("application/x-automotive-bus; interface=stream; type=pdu; schema=fbs; swc_id=4; ecu_id=5", stream)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if inst.Kind() != KindPDU {
		t.Fatalf("Kind = %v, want KindPDU", inst.Kind())
	}
	if _, err := inst.WritePDU(pdu.PDU{ID: 1, Payload: []byte("x")}); err != nil {
		t.Fatalf("WritePDU: %v", err)
	}
	if _, err := inst.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestOpenRejectsMissingFields(t *testing.T) {
	cases := []string{
		"application/x-automotive-bus; type=frame; bus=can; schema=fbs",
		"application/x-automotive-bus; interface=stream; bus=can; schema=fbs",
		"application/x-automotive-bus; interface=stream; type=frame; bus=can",
		"application/x-automotive-bus; interface=stream; type=frame; bus=lin; schema=fbs",
		"application/x-automotive-bus; interface=stream; type=frame; schema=fbs",
		"application/x-automotive-bus; interface=socket; type=frame; bus=can; schema=fbs",
	}
	for _, mime := range cases {
		stream := ncstream.NewMemoryStream(64)
		if inst, err := Open(mime, stream); err == nil {
			t.Fatalf("Open(%q) = (%v,nil), want error", mime, inst)
		}
	}
}

func TestStatIterationOrder(t *testing.T) {
	stream := ncstream.NewMemoryStream(64)
	inst, err := Open("application/x-automotive-bus; interface=stream; type=pdu; schema=fbs; swc_id=4", stream)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var keys []string
	idx := 0
	for idx != -1 {
		item, next := inst.Stat(idx)
		keys = append(keys, item.Key)
		idx = next
	}
	want := []string{"interface", "type", "schema", "swc_id"}
	if len(keys) != len(want) {
		t.Fatalf("Stat keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Stat keys = %v, want %v", keys, want)
		}
	}

	item, next := inst.Stat(len(want))
	if next != -1 || item != (ConfigItem{}) {
		t.Fatalf("Stat past end = (%+v,%d), want (ConfigItem{},-1)", item, next)
	}
}

func TestConfigOverridesSwcID(t *testing.T) {
	stream := ncstream.NewMemoryStream(256)
	inst, err := Open("application/x-automotive-bus; interface=stream; type=pdu; schema=fbs; swc_id=4", stream)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := inst.Config("swc_id", "9"); err != nil {
		t.Fatalf("Config: %v", err)
	}
	if _, err := inst.WritePDU(pdu.PDU{ID: 1, Payload: []byte("x")}); err != nil {
		t.Fatalf("WritePDU: %v", err)
	}
	if _, err := inst.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	reader, err := Open("application/x-automotive-bus; interface=stream; type=pdu; schema=fbs", stream)
	if err != nil {
		t.Fatalf("Open reader: %v", err)
	}
	msg, err := reader.ReadPDU()
	if err != nil {
		t.Fatalf("ReadPDU: %v", err)
	}
	if msg.SwcID != 9 {
		t.Fatalf("SwcID = %d, want 9 (post-override)", msg.SwcID)
	}
}
