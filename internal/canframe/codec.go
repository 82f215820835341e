package canframe

import (
	"errors"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/kstaniek/go-ncodec/internal/framing"
	"github.com/kstaniek/go-ncodec/internal/ncstream"
	"github.com/kstaniek/go-ncodec/internal/trace"
)

// ErrNoMessage is returned by Read once the stream holds no further CAN
// stream messages.
var ErrNoMessage = framing.ErrNoMessage

// Config carries the sender identity an outgoing frame is stamped with, the
// identity used for loopback suppression on read, and an optional observer.
type Config struct {
	Sender Sender
	Trace  trace.Hooks
}

// readState is the two-level (outer-record, inner-index) iterator described
// for the read side: it lives entirely in the codec, not in loose fields.
type readState struct {
	active bool
	table  streamTable
	index  int
	length int
}

// Codec encodes and decodes a stream of CAN frames over a bound Stream.
// It is single-owner: callers must not interleave Write/Flush/Truncate and
// Read from multiple goroutines.
type Codec struct {
	stream ncstream.Stream
	cfg    Config

	// pending is nil when the builder is uninitialized (no writes since the
	// last flush/truncate); a non-nil (possibly empty) slice means a batch
	// is open. This mirrors the "initialized" flag on the outgoing builder.
	pending []CanFrame

	rs readState
}

// New binds a Codec to stream with the given sender/filter configuration.
func New(stream ncstream.Stream, cfg Config) *Codec {
	cfg.Trace = trace.OrNoop(cfg.Trace)
	return &Codec{stream: stream, cfg: cfg}
}

// Write appends frame to the pending outgoing batch, defaulting its
// Sender fields from the codec's configured sender when the frame leaves
// them zero. It never touches the stream; call Flush to emit the batch as
// one outer record.
func (c *Codec) Write(frame CanFrame) (int, error) {
	if c.stream == nil {
		return 0, ncstream.ErrNoStreamResource
	}
	if frame.Sender.BusID == 0 {
		frame.Sender.BusID = c.cfg.Sender.BusID
	}
	if frame.Sender.NodeID == 0 {
		frame.Sender.NodeID = c.cfg.Sender.NodeID
	}
	if frame.Sender.InterfaceID == 0 {
		frame.Sender.InterfaceID = c.cfg.Sender.InterfaceID
	}
	c.pending = append(c.pending, frame)
	n := len(frame.Payload)
	if n > 0 {
		c.cfg.Trace.Write("can", n)
	}
	return n, nil
}

// Flush serializes the pending batch as one size-prefixed outer record and
// writes it to the stream. If no writes are pending it is a no-op returning
// 0, per the builder-lifecycle invariant: flush un-initializes the builder.
func (c *Codec) Flush() (int, error) {
	if c.pending == nil {
		return 0, nil
	}
	if c.stream == nil {
		return 0, ncstream.ErrNoStreamResource
	}

	b := flatbuffers.NewBuilder(0)
	frameOffs := make([]flatbuffers.UOffsetT, len(c.pending))
	for i, item := range c.pending {
		payloadOff := b.CreateByteVector(item.Payload)

		canFrameStart(b)
		canFrameAddInterfaceID(b, item.Sender.InterfaceID)
		canFrameAddNodeID(b, item.Sender.NodeID)
		canFrameAddBusID(b, item.Sender.BusID)
		canFrameAddFrameType(b, byte(item.FrameType))
		canFrameAddPayload(b, payloadOff)
		canFrameAddFrameID(b, item.FrameID)
		cfOff := canFrameEnd(b)

		frameStart(b)
		frameAddItem(b, cfOff)
		frameAddItemType(b, itemTypeCanFrame)
		frameOffs[i] = frameEnd(b)
	}

	b.StartVector(4, len(frameOffs), 4)
	for i := len(frameOffs) - 1; i >= 0; i-- {
		b.PrependUOffsetT(frameOffs[i])
	}
	vecOff := b.EndVector(len(frameOffs))

	streamStart(b)
	streamAddFrame(b, vecOff)
	rootOff := streamEnd(b)

	b.FinishSizePrefixedWithFileIdentifier(rootOff, fileIdentifier[:])
	body := b.FinishedBytes()

	n, err := c.stream.Write(body)
	c.pending = nil
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Truncate discards any pending batch and resets the stream's position and
// length to zero.
func (c *Codec) Truncate() error {
	c.pending = nil
	c.rs = readState{}
	if c.stream == nil {
		return ncstream.ErrNoStreamResource
	}
	_, err := c.stream.Seek(0, ncstream.SeekReset)
	return err
}

// Read returns the next CAN frame not suppressed by loopback filtering. Its
// Buffer field aliases the stream's backing storage; callers must copy it
// before any call that could invalidate that storage.
func (c *Codec) Read() (Message, error) {
	if c.stream == nil {
		return Message{}, ncstream.ErrNoStreamResource
	}
	for {
		if !c.rs.active {
			body, err := framing.FindNext(c.stream, fileIdentifier)
			if errors.Is(err, framing.ErrNoMessage) {
				return Message{}, ErrNoMessage
			}
			if err != nil {
				return Message{}, err
			}
			root := framing.RootTable(body)
			var st streamTable
			st.init(root.Bytes, root.Pos)
			c.rs = readState{active: true, table: st, index: 0, length: st.frameLen()}
		}

		for c.rs.index < c.rs.length {
			f := c.rs.table.frameAt(c.rs.index)
			c.rs.index++
			if f == nil || f.itemType() != itemTypeCanFrame {
				continue
			}
			cf, ok := f.item()
			if !ok {
				continue
			}
			if c.cfg.Sender.NodeID != 0 && cf.nodeID() == c.cfg.Sender.NodeID {
				continue
			}
			buf := cf.payloadBytes()
			if len(buf) > 0 {
				c.cfg.Trace.Read("can", len(buf))
			}
			return Message{
				FrameID:   cf.frameID(),
				Buffer:    buf,
				FrameType: FrameType(cf.frameType()),
			}, nil
		}

		c.rs.active = false
	}
}
