package bustopology

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kstaniek/go-ncodec/internal/ncodec"
	"github.com/kstaniek/go-ncodec/internal/ncstream"
)

const testModelDescription = `<?xml version="1.0"?>
<fmiModelDescription>
  <ModelVariables>
    <ScalarVariable name="can_rx" valueReference="1" causality="input">
      <Annotations>
        <Tool name="dse.standards.fmi-ls-bus-topology">
          <Annotation name="bus_id">can0</Annotation>
        </Tool>
      </Annotations>
    </ScalarVariable>
    <ScalarVariable name="can_tx" valueReference="2" causality="output">
      <Annotations>
        <Tool name="dse.standards.fmi-ls-bus-topology">
          <Annotation name="bus_id">can0</Annotation>
        </Tool>
      </Annotations>
    </ScalarVariable>
    <ScalarVariable name="can_tx_text" valueReference="3" causality="output">
      <Annotations>
        <Tool name="dse.standards.fmi-ls-bus-topology">
          <Annotation name="bus_id">can1</Annotation>
        </Tool>
        <Tool name="dse.standards.fmi-ls-binary-to-text">
          <Annotation name="encoding">ascii85</Annotation>
        </Tool>
      </Annotations>
    </ScalarVariable>
  </ModelVariables>
</fmiModelDescription>`

func mustParse(t *testing.T) *ModelDescription {
	t.Helper()
	md, err := ParseModelDescription(strings.NewReader(testModelDescription))
	if err != nil {
		t.Fatalf("ParseModelDescription: %v", err)
	}
	return md
}

func openStreamInstance(t *testing.T, cap int) (*ncodec.Instance, ncstream.Stream) {
	t.Helper()
	stream := ncstream.NewMemoryStream(cap)
	inst, err := ncodec.Open("application/x-automotive-bus;interface=stream;type=pdu;schema=fbs", stream)
	if err != nil {
		t.Fatalf("ncodec.Open: %v", err)
	}
	return inst, stream
}

func TestRouterRxTxRoundTrip(t *testing.T) {
	md := mustParse(t)
	r := NewRouter(md)

	inst, _ := openStreamInstance(t, 256)
	r.Add("can0", inst)

	payload := []byte{0x01, 0x02, 0x03, 0x04}
	if err := r.Rx("1", payload); err != nil {
		t.Fatalf("Rx: %v", err)
	}

	out, err := r.Tx("2")
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("Tx = %v, want %v", out, payload)
	}
}

func TestRouterTxEncodesAscii85WhenConfigured(t *testing.T) {
	md := mustParse(t)
	r := NewRouter(md)

	inst, _ := openStreamInstance(t, 256)
	r.Add("can1", inst)

	// vr "1" is bound to can0, not can1, and this instance is registered
	// under can1, so Rx has no rx-index entry for it here. Write directly
	// to the stream instead to exercise Tx's encode path.
	payload := []byte{0x00, 0x00, 0x00, 0x00}
	stream := inst.Stream()
	if _, err := stream.Write(payload); err != nil {
		t.Fatalf("stream.Write: %v", err)
	}
	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("stream.Seek: %v", err)
	}

	out, err := r.Tx("3")
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if string(out) != "z" {
		t.Fatalf("Tx ascii85 = %q, want \"z\"", out)
	}
}

func TestRouterUnknownValueReferenceIsNoop(t *testing.T) {
	md := mustParse(t)
	r := NewRouter(md)

	inst, _ := openStreamInstance(t, 256)
	r.Add("can0", inst)

	if err := r.Rx("999", []byte{1, 2, 3}); err != nil {
		t.Fatalf("Rx unknown vr: %v", err)
	}
	out, err := r.Tx("999")
	if err != nil || out != nil {
		t.Fatalf("Tx unknown vr = (%v, %v), want (nil, nil)", out, err)
	}
}

func TestRouterResetIsIdempotentUntilTx(t *testing.T) {
	md := mustParse(t)
	r := NewRouter(md)

	inst, _ := openStreamInstance(t, 256)
	r.Add("can0", inst)

	// resetPending starts false, so the first Reset actually runs.
	if err := r.Reset(); err != nil {
		t.Fatalf("first Reset: %v", err)
	}
	// Now resetPending is true; a second Reset before any Tx is a no-op.
	if err := r.Reset(); err != nil {
		t.Fatalf("second Reset: %v", err)
	}

	if err := r.Rx("1", []byte{0xaa}); err != nil {
		t.Fatalf("Rx: %v", err)
	}
	// Rx sets resetPending true again, so Reset still no-ops.
	if err := r.Reset(); err != nil {
		t.Fatalf("Reset after Rx: %v", err)
	}
	out, err := r.Tx("2")
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if !bytes.Equal(out, []byte{0xaa}) {
		t.Fatalf("data truncated despite no-op Reset: got %v", out)
	}

	// Tx cleared resetPending, so this Reset actually truncates.
	if err := r.Reset(); err != nil {
		t.Fatalf("Reset after Tx: %v", err)
	}
	out2, err := r.Tx("2")
	if err != nil {
		t.Fatalf("Tx after real reset: %v", err)
	}
	if len(out2) != 0 {
		t.Fatalf("Tx after real reset = %v, want empty", out2)
	}
}

func TestRouterDestroyClosesInstances(t *testing.T) {
	md := mustParse(t)
	r := NewRouter(md)

	inst, _ := openStreamInstance(t, 256)
	r.Add("can0", inst)

	if err := r.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := inst.ReadPDU(); err == nil {
		t.Fatalf("expected error reading from closed instance")
	}
}
