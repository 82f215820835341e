// Package canframe implements the CAN-frame codec: encoding and decoding a
// stream-vector of CAN frames with sender metadata and loopback filtering.
package canframe

// FrameType enumerates the CAN frame format carried by a CanFrame.
type FrameType uint8

const (
	Base FrameType = iota
	Extended
	FdBase
	FdExtended
)

func (t FrameType) String() string {
	switch t {
	case Base:
		return "BASE"
	case Extended:
		return "EXTENDED"
	case FdBase:
		return "FD_BASE"
	case FdExtended:
		return "FD_EXTENDED"
	default:
		return "UNKNOWN"
	}
}

// Sender identifies the origin of a frame for loopback suppression.
type Sender struct {
	BusID       uint8
	NodeID      uint8
	InterfaceID uint8
}

// Timing holds optional in-memory-only nanosecond timestamps. The wire
// encoding MAY omit them; this codec never emits them (see Flush).
type Timing struct {
	Send int64
	Arb  int64
	Recv int64
}

// CanFrame is one inner item of a CAN stream message.
type CanFrame struct {
	FrameID   uint32
	Payload   []byte
	FrameType FrameType
	Sender    Sender
	Timing    Timing
}

// Message is what Read populates (Write accepts a CanFrame). Buffer aliases the
// underlying stream's memory on read; callers must copy it before any call
// that could invalidate the stream's backing storage.
type Message struct {
	FrameID   uint32
	Buffer    []byte
	FrameType FrameType
}
