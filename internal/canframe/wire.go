package canframe

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/kstaniek/go-ncodec/internal/framing"
)

// fileIdentifier tags a CAN stream-message body so framing.FindNext can
// distinguish it from a PDU body sharing the same stream.
var fileIdentifier = framing.Identifier{'C', 'F', 'R', '1'}

// Wire layout (vtable slot indices), generated by hand in the style of
// flatc output:
//
//	CanFrame: frame_id(0) payload(1) frame_type(2) bus_id(3) node_id(4) interface_id(5)
//	Frame:    item_type(0) item(1)        -- item_type: 0=None 1=CanFrame
//	Stream:   frame(0)                    -- vector of Frame offsets
const (
	itemTypeNone     byte = 0
	itemTypeCanFrame byte = 1
)

func canFrameStart(b *flatbuffers.Builder) { b.StartObject(6) }
func canFrameAddFrameID(b *flatbuffers.Builder, v uint32) {
	b.PrependUint32Slot(0, v, 0)
}
func canFrameAddPayload(b *flatbuffers.Builder, off flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(1, off, 0)
}
func canFrameAddFrameType(b *flatbuffers.Builder, v byte) {
	b.PrependByteSlot(2, v, 0)
}
func canFrameAddBusID(b *flatbuffers.Builder, v byte)       { b.PrependByteSlot(3, v, 0) }
func canFrameAddNodeID(b *flatbuffers.Builder, v byte)      { b.PrependByteSlot(4, v, 0) }
func canFrameAddInterfaceID(b *flatbuffers.Builder, v byte) { b.PrependByteSlot(5, v, 0) }
func canFrameEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT {
	return b.EndObject()
}

func frameStart(b *flatbuffers.Builder) { b.StartObject(2) }
func frameAddItemType(b *flatbuffers.Builder, v byte) {
	b.PrependByteSlot(0, v, itemTypeNone)
}
func frameAddItem(b *flatbuffers.Builder, off flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(1, off, 0)
}
func frameEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

func streamStart(b *flatbuffers.Builder) { b.StartObject(1) }
func streamAddFrame(b *flatbuffers.Builder, off flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(0, off, 0)
}
func streamEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

// canFrameTable is a read accessor over an encoded CanFrame table.
type canFrameTable struct{ tab flatbuffers.Table }

func (t *canFrameTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }

func (t *canFrameTable) frameID() uint32 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return t.tab.GetUint32(o + t.tab.Pos)
	}
	return 0
}

func (t *canFrameTable) payloadBytes() []byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(6)); o != 0 {
		return t.tab.ByteVector(o + t.tab.Pos)
	}
	return nil
}

func (t *canFrameTable) frameType() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(8)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}

func (t *canFrameTable) busID() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(10)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}

func (t *canFrameTable) nodeID() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(12)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}

func (t *canFrameTable) interfaceID() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(14)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}

// frameTable is a read accessor over one element of the Stream.frame vector.
type frameTable struct{ tab flatbuffers.Table }

func (t *frameTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }

func (t *frameTable) itemType() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return itemTypeNone
}

func (t *frameTable) item() (*canFrameTable, bool) {
	o := flatbuffers.UOffsetT(t.tab.Offset(6))
	if o == 0 {
		return nil, false
	}
	cf := &canFrameTable{}
	cf.init(t.tab.Bytes, t.tab.Indirect(o+t.tab.Pos))
	return cf, true
}

// streamTable is a read accessor over the outer Stream root table.
type streamTable struct{ tab flatbuffers.Table }

func (t *streamTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }

func (t *streamTable) frameLen() int {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return t.tab.VectorLen(o)
	}
	return 0
}

func (t *streamTable) frameAt(j int) *frameTable {
	o := flatbuffers.UOffsetT(t.tab.Offset(4))
	if o == 0 {
		return nil
	}
	a := t.tab.Vector(o)
	f := &frameTable{}
	f.init(t.tab.Bytes, t.tab.Indirect(a+flatbuffers.UOffsetT(j)*4))
	return f
}
