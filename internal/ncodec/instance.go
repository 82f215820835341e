package ncodec

import (
	"github.com/kstaniek/go-ncodec/internal/canframe"
	"github.com/kstaniek/go-ncodec/internal/ncstream"
	"github.com/kstaniek/go-ncodec/internal/pdu"
)

// Kind identifies which concrete codec a Instance was opened against.
type Kind int

const (
	// KindCAN selects the CAN-frame codec (stream/frame/fbs;bus=can).
	KindCAN Kind = iota + 1
	// KindPDU selects the PDU codec (stream/pdu/fbs).
	KindPDU
)

// Instance is a configured, stream-bound codec. It is single-owner: one
// writer/reader at a time, matching the codec instance model.
type Instance struct {
	kind   Kind
	cfg    *Config
	stream ncstream.Stream
	closed bool

	can *canframe.Codec
	pdu *pdu.Codec
}

// Open performs MIME parsing and codec selection, returning a configured
// Instance bound to stream. It returns ErrNoEntry (discoverable via KindOf)
// when the descriptor is missing a required field or names an
// unrecognized codec family/bus — the caller must not use a non-nil error's
// companion Instance, which is always nil.
func Open(mimeType string, stream ncstream.Stream) (*Instance, error) {
	_, cfg := parseMIME(mimeType)
	if cfg.Interface == "" || cfg.Type == "" || cfg.Schema == "" {
		return nil, ErrNoEntry
	}

	switch {
	case cfg.Interface == "stream" && cfg.Type == "frame" && cfg.Schema == "fbs":
		if cfg.Bus != "can" {
			return nil, ErrNoEntry
		}
		cfg.Finalize(canOrder)
		inst := &Instance{kind: KindCAN, cfg: cfg, stream: stream}
		inst.can = canframe.New(stream, canframe.Config{
			Sender: canframe.Sender{BusID: cfg.BusID, NodeID: cfg.NodeID, InterfaceID: cfg.InterfaceID},
		})
		return inst, nil

	case cfg.Interface == "stream" && cfg.Type == "pdu" && cfg.Schema == "fbs":
		cfg.Finalize(pduOrder)
		inst := &Instance{kind: KindPDU, cfg: cfg, stream: stream}
		inst.pdu = pdu.New(stream, pdu.Config{SwcID: cfg.SwcID, EcuID: cfg.EcuID})
		return inst, nil

	default:
		return nil, ErrNoEntry
	}
}

// Kind reports which codec family this instance was opened against.
func (inst *Instance) Kind() Kind { return inst.kind }

// Stream returns the bound stream for callers (the bus-topology router)
// that need to copy raw bytes into or out of it directly, bypassing the
// frame/PDU structure entirely.
func (inst *Instance) Stream() ncstream.Stream { return inst.stream }

// Config applies one configuration override, taking effect on the next
// write/read. Recognized keys reconfigure the bound codec's sender/filter
// identity; unknown keys are accepted and stored for Stat only.
func (inst *Instance) Config(key, value string) error {
	if inst.closed {
		return ncstream.ErrNoStream
	}
	inst.cfg.Set(key, value)
	switch inst.kind {
	case KindCAN:
		inst.cfg.Finalize(canOrder)
		inst.can = canframe.New(inst.stream, canframe.Config{
			Sender: canframe.Sender{BusID: inst.cfg.BusID, NodeID: inst.cfg.NodeID, InterfaceID: inst.cfg.InterfaceID},
		})
	case KindPDU:
		inst.cfg.Finalize(pduOrder)
		inst.pdu = pdu.New(inst.stream, pdu.Config{SwcID: inst.cfg.SwcID, EcuID: inst.cfg.EcuID})
	}
	return nil
}

// Stat iterates configuration items; see Config.Stat.
func (inst *Instance) Stat(index int) (ConfigItem, int) {
	return inst.cfg.Stat(index)
}

// WriteCANFrame appends frame to the pending batch of a CAN-family
// instance. It returns ncstream.ErrInvalidArg if the instance is a PDU
// codec.
func (inst *Instance) WriteCANFrame(frame canframe.CanFrame) (int, error) {
	if inst.closed {
		return 0, ncstream.ErrNoStream
	}
	if inst.kind != KindCAN {
		return 0, ncstream.ErrInvalidArg
	}
	return inst.can.Write(frame)
}

// ReadCANFrame returns the next unfiltered CAN frame of a CAN-family
// instance.
func (inst *Instance) ReadCANFrame() (canframe.Message, error) {
	if inst.closed {
		return canframe.Message{}, ncstream.ErrNoStream
	}
	if inst.kind != KindCAN {
		return canframe.Message{}, ncstream.ErrInvalidArg
	}
	return inst.can.Read()
}

// WritePDU appends item to the pending batch of a PDU-family instance.
func (inst *Instance) WritePDU(item pdu.PDU) (int, error) {
	if inst.closed {
		return 0, ncstream.ErrNoStream
	}
	if inst.kind != KindPDU {
		return 0, ncstream.ErrInvalidArg
	}
	return inst.pdu.Write(item)
}

// ReadPDU returns the next unfiltered PDU of a PDU-family instance.
func (inst *Instance) ReadPDU() (pdu.Message, error) {
	if inst.closed {
		return pdu.Message{}, ncstream.ErrNoStream
	}
	if inst.kind != KindPDU {
		return pdu.Message{}, ncstream.ErrInvalidArg
	}
	return inst.pdu.Read()
}

// Flush finalizes the pending batch, if any, as one outer record.
func (inst *Instance) Flush() (int, error) {
	if inst.closed {
		return 0, ncstream.ErrNoStream
	}
	switch inst.kind {
	case KindCAN:
		return inst.can.Flush()
	case KindPDU:
		return inst.pdu.Flush()
	default:
		return 0, ncstream.ErrInvalidArg
	}
}

// Truncate discards pending writes and zeroes the bound stream's position
// and length.
func (inst *Instance) Truncate() error {
	if inst.closed {
		return ncstream.ErrNoStream
	}
	switch inst.kind {
	case KindCAN:
		return inst.can.Truncate()
	case KindPDU:
		return inst.pdu.Truncate()
	default:
		return ncstream.ErrInvalidArg
	}
}

// Close releases the instance's configuration and codec state. It does not
// close the bound stream, which is externally owned.
func (inst *Instance) Close() error {
	inst.closed = true
	inst.can = nil
	inst.pdu = nil
	inst.stream = nil
	return nil
}
