package pdu

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/kstaniek/go-ncodec/internal/framing"
)

// fileIdentifier tags a PDU stream-message body.
var fileIdentifier = framing.Identifier{'P', 'D', 'U', '1'}

const (
	itemTypeNone byte = 0
	itemTypePdu  byte = 1
)

// --- StructMetadata ---------------------------------------------------

func structMetaStart(b *flatbuffers.Builder) { b.StartObject(8) }
func structMetaAddTypeName(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(0, o, 0)
}
func structMetaAddVarName(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(1, o, 0)
}
func structMetaAddEncoding(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(2, o, 0)
}
func structMetaAddPlatformArch(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(3, o, 0)
}
func structMetaAddPlatformOS(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(4, o, 0)
}
func structMetaAddPlatformABI(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(5, o, 0)
}
func structMetaAddAttributeAligned(b *flatbuffers.Builder, v uint16) {
	b.PrependUint16Slot(6, v, 0)
}
func structMetaAddAttributePacked(b *flatbuffers.Builder, v bool) {
	b.PrependBoolSlot(7, v, false)
}
func structMetaEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

type structMetaTable struct{ tab flatbuffers.Table }

func (t *structMetaTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }

func (t *structMetaTable) str(slot int) string {
	if o := flatbuffers.UOffsetT(t.tab.Offset(flatbuffers.VOffsetT(4 + 2*slot))); o != 0 {
		return string(t.tab.ByteVector(o + t.tab.Pos))
	}
	return ""
}
func (t *structMetaTable) typeName() string     { return t.str(0) }
func (t *structMetaTable) varName() string      { return t.str(1) }
func (t *structMetaTable) encoding() string     { return t.str(2) }
func (t *structMetaTable) platformArch() string { return t.str(3) }
func (t *structMetaTable) platformOS() string   { return t.str(4) }
func (t *structMetaTable) platformABI() string  { return t.str(5) }
func (t *structMetaTable) attributeAligned() uint16 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(16)); o != 0 {
		return t.tab.GetUint16(o + t.tab.Pos)
	}
	return 0
}
func (t *structMetaTable) attributePacked() bool {
	if o := flatbuffers.UOffsetT(t.tab.Offset(18)); o != 0 {
		return t.tab.GetBool(o + t.tab.Pos)
	}
	return false
}

// --- CanMessageMetadata -------------------------------------------------

func canMetaStart(b *flatbuffers.Builder) { b.StartObject(4) }
func canMetaAddFrameFormat(b *flatbuffers.Builder, v byte) {
	b.PrependByteSlot(0, v, 0)
}
func canMetaAddFrameType(b *flatbuffers.Builder, v byte) {
	b.PrependByteSlot(1, v, 0)
}
func canMetaAddInterfaceID(b *flatbuffers.Builder, v uint32) {
	b.PrependUint32Slot(2, v, 0)
}
func canMetaAddNetworkID(b *flatbuffers.Builder, v uint32) {
	b.PrependUint32Slot(3, v, 0)
}
func canMetaEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

type canMetaTable struct{ tab flatbuffers.Table }

func (t *canMetaTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }
func (t *canMetaTable) frameFormat() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}
func (t *canMetaTable) frameType() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(6)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}
func (t *canMetaTable) interfaceID() uint32 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(8)); o != 0 {
		return t.tab.GetUint32(o + t.tab.Pos)
	}
	return 0
}
func (t *canMetaTable) networkID() uint32 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(10)); o != 0 {
		return t.tab.GetUint32(o + t.tab.Pos)
	}
	return 0
}

// --- IpV4 / IpV6 ---------------------------------------------------------

func ipV4Start(b *flatbuffers.Builder) { b.StartObject(2) }
func ipV4AddSrc(b *flatbuffers.Builder, v uint32) { b.PrependUint32Slot(0, v, 0) }
func ipV4AddDst(b *flatbuffers.Builder, v uint32) { b.PrependUint32Slot(1, v, 0) }
func ipV4End(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

type ipV4Table struct{ tab flatbuffers.Table }

func (t *ipV4Table) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }
func (t *ipV4Table) src() uint32 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return t.tab.GetUint32(o + t.tab.Pos)
	}
	return 0
}
func (t *ipV4Table) dst() uint32 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(6)); o != 0 {
		return t.tab.GetUint32(o + t.tab.Pos)
	}
	return 0
}

// v6GroupsToBytes/bytesToV6Groups convert the 8-u16 address form to/from the
// big-endian byte vector stored on the wire.
func v6GroupsToBytes(groups [8]uint16) []byte {
	out := make([]byte, 16)
	for i, g := range groups {
		out[i*2] = byte(g >> 8)
		out[i*2+1] = byte(g)
	}
	return out
}

func bytesToV6Groups(b []byte) [8]uint16 {
	var groups [8]uint16
	for i := 0; i < 8 && i*2+1 < len(b); i++ {
		groups[i] = uint16(b[i*2])<<8 | uint16(b[i*2+1])
	}
	return groups
}

func ipV6Start(b *flatbuffers.Builder) { b.StartObject(2) }
func ipV6AddSrc(b *flatbuffers.Builder, o flatbuffers.UOffsetT) { b.PrependUOffsetTSlot(0, o, 0) }
func ipV6AddDst(b *flatbuffers.Builder, o flatbuffers.UOffsetT) { b.PrependUOffsetTSlot(1, o, 0) }
func ipV6End(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

type ipV6Table struct{ tab flatbuffers.Table }

func (t *ipV6Table) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }
func (t *ipV6Table) src() [8]uint16 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return bytesToV6Groups(t.tab.ByteVector(o + t.tab.Pos))
	}
	return [8]uint16{}
}
func (t *ipV6Table) dst() [8]uint16 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(6)); o != 0 {
		return bytesToV6Groups(t.tab.ByteVector(o + t.tab.Pos))
	}
	return [8]uint16{}
}

// --- DoIpMetadata / SomeIpMetadata ---------------------------------------

func doIPStart(b *flatbuffers.Builder) { b.StartObject(2) }
func doIPAddProtocolVersion(b *flatbuffers.Builder, v byte) { b.PrependByteSlot(0, v, 0) }
func doIPAddPayloadType(b *flatbuffers.Builder, v uint16)   { b.PrependUint16Slot(1, v, 0) }
func doIPEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT   { return b.EndObject() }

type doIPTable struct{ tab flatbuffers.Table }

func (t *doIPTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }
func (t *doIPTable) protocolVersion() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}
func (t *doIPTable) payloadType() uint16 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(6)); o != 0 {
		return t.tab.GetUint16(o + t.tab.Pos)
	}
	return 0
}

func someIPStart(b *flatbuffers.Builder) { b.StartObject(7) }
func someIPAddMessageID(b *flatbuffers.Builder, v uint32)   { b.PrependUint32Slot(0, v, 0) }
func someIPAddLength(b *flatbuffers.Builder, v uint32)      { b.PrependUint32Slot(1, v, 0) }
func someIPAddRequestID(b *flatbuffers.Builder, v uint32)   { b.PrependUint32Slot(2, v, 0) }
func someIPAddProtocolVersion(b *flatbuffers.Builder, v byte) {
	b.PrependByteSlot(3, v, 0)
}
func someIPAddInterfaceVersion(b *flatbuffers.Builder, v byte) {
	b.PrependByteSlot(4, v, 0)
}
func someIPAddMessageType(b *flatbuffers.Builder, v byte) { b.PrependByteSlot(5, v, 0) }
func someIPAddReturnCode(b *flatbuffers.Builder, v byte)  { b.PrependByteSlot(6, v, 0) }
func someIPEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

type someIPTable struct{ tab flatbuffers.Table }

func (t *someIPTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }
func (t *someIPTable) u32(slot int) uint32 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(flatbuffers.VOffsetT(4 + 2*slot))); o != 0 {
		return t.tab.GetUint32(o + t.tab.Pos)
	}
	return 0
}
func (t *someIPTable) b8(slot int) byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(flatbuffers.VOffsetT(4 + 2*slot))); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}
func (t *someIPTable) messageID() uint32        { return t.u32(0) }
func (t *someIPTable) length() uint32           { return t.u32(1) }
func (t *someIPTable) requestID() uint32        { return t.u32(2) }
func (t *someIPTable) protocolVersion() byte    { return t.b8(3) }
func (t *someIPTable) interfaceVersion() byte   { return t.b8(4) }
func (t *someIPTable) messageType() byte        { return t.b8(5) }
func (t *someIPTable) returnCode() byte         { return t.b8(6) }

// --- IpMessageMetadata ----------------------------------------------------

func ipMetaStart(b *flatbuffers.Builder) { b.StartObject(13) }
func ipMetaAddEthDstMAC(b *flatbuffers.Builder, v uint64) { b.PrependUint64Slot(0, v, 0) }
func ipMetaAddEthSrcMAC(b *flatbuffers.Builder, v uint64) { b.PrependUint64Slot(1, v, 0) }
func ipMetaAddEthEthertype(b *flatbuffers.Builder, v uint16) { b.PrependUint16Slot(2, v, 0) }
func ipMetaAddEthTCIPCP(b *flatbuffers.Builder, v byte)    { b.PrependByteSlot(3, v, 0) }
func ipMetaAddEthTCIDEI(b *flatbuffers.Builder, v byte)    { b.PrependByteSlot(4, v, 0) }
func ipMetaAddEthTCIVID(b *flatbuffers.Builder, v uint16)  { b.PrependUint16Slot(5, v, 0) }
func ipMetaAddIPProtocol(b *flatbuffers.Builder, v byte)   { b.PrependByteSlot(6, v, 0) }
func ipMetaAddIPAddrType(b *flatbuffers.Builder, v byte)   { b.PrependByteSlot(7, v, 0) }
func ipMetaAddIPAddr(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(8, o, 0)
}
func ipMetaAddIPSrcPort(b *flatbuffers.Builder, v uint16) { b.PrependUint16Slot(9, v, 0) }
func ipMetaAddIPDstPort(b *flatbuffers.Builder, v uint16) { b.PrependUint16Slot(10, v, 0) }
func ipMetaAddSocketAdapterType(b *flatbuffers.Builder, v byte) {
	b.PrependByteSlot(11, v, 0)
}
func ipMetaAddSocketAdapter(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(12, o, 0)
}
func ipMetaEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

type ipMetaTable struct{ tab flatbuffers.Table }

func (t *ipMetaTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }
func (t *ipMetaTable) u64(slot int) uint64 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(flatbuffers.VOffsetT(4 + 2*slot))); o != 0 {
		return t.tab.GetUint64(o + t.tab.Pos)
	}
	return 0
}
func (t *ipMetaTable) u16(slot int) uint16 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(flatbuffers.VOffsetT(4 + 2*slot))); o != 0 {
		return t.tab.GetUint16(o + t.tab.Pos)
	}
	return 0
}
func (t *ipMetaTable) b8(slot int) byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(flatbuffers.VOffsetT(4 + 2*slot))); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}
func (t *ipMetaTable) ethDstMAC() uint64    { return t.u64(0) }
func (t *ipMetaTable) ethSrcMAC() uint64    { return t.u64(1) }
func (t *ipMetaTable) ethEthertype() uint16 { return t.u16(2) }
func (t *ipMetaTable) ethTCIPCP() byte      { return t.b8(3) }
func (t *ipMetaTable) ethTCIDEI() byte      { return t.b8(4) }
func (t *ipMetaTable) ethTCIVID() uint16    { return t.u16(5) }
func (t *ipMetaTable) ipProtocol() byte     { return t.b8(6) }
func (t *ipMetaTable) ipAddrType() byte     { return t.b8(7) }
func (t *ipMetaTable) ipSrcPort() uint16    { return t.u16(9) }
func (t *ipMetaTable) ipDstPort() uint16    { return t.u16(10) }
func (t *ipMetaTable) socketAdapterType() byte { return t.b8(11) }

func (t *ipMetaTable) ipAddrV4() (*ipV4Table, bool) {
	o := flatbuffers.UOffsetT(t.tab.Offset(4 + 2*8))
	if o == 0 {
		return nil, false
	}
	v := &ipV4Table{}
	v.init(t.tab.Bytes, t.tab.Indirect(o+t.tab.Pos))
	return v, true
}

func (t *ipMetaTable) ipAddrV6() (*ipV6Table, bool) {
	o := flatbuffers.UOffsetT(t.tab.Offset(4 + 2*8))
	if o == 0 {
		return nil, false
	}
	v := &ipV6Table{}
	v.init(t.tab.Bytes, t.tab.Indirect(o+t.tab.Pos))
	return v, true
}

func (t *ipMetaTable) socketAdapterDoIP() (*doIPTable, bool) {
	o := flatbuffers.UOffsetT(t.tab.Offset(4 + 2*12))
	if o == 0 {
		return nil, false
	}
	v := &doIPTable{}
	v.init(t.tab.Bytes, t.tab.Indirect(o+t.tab.Pos))
	return v, true
}

func (t *ipMetaTable) socketAdapterSomeIP() (*someIPTable, bool) {
	o := flatbuffers.UOffsetT(t.tab.Offset(4 + 2*12))
	if o == 0 {
		return nil, false
	}
	v := &someIPTable{}
	v.init(t.tab.Bytes, t.tab.Indirect(o+t.tab.Pos))
	return v, true
}

// --- Pdu / PduItem / Stream ----------------------------------------------

func pduStart(b *flatbuffers.Builder) { b.StartObject(6) }
func pduAddID(b *flatbuffers.Builder, v uint32)      { b.PrependUint32Slot(0, v, 0) }
func pduAddPayload(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(1, o, 0)
}
func pduAddSwcID(b *flatbuffers.Builder, v uint32) { b.PrependUint32Slot(2, v, 0) }
func pduAddEcuID(b *flatbuffers.Builder, v uint32) { b.PrependUint32Slot(3, v, 0) }
func pduAddTransportType(b *flatbuffers.Builder, v byte) {
	b.PrependByteSlot(4, v, 0)
}
func pduAddTransport(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(5, o, 0)
}
func pduEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

type pduTable struct{ tab flatbuffers.Table }

func (t *pduTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }
func (t *pduTable) id() uint32 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return t.tab.GetUint32(o + t.tab.Pos)
	}
	return 0
}
func (t *pduTable) payloadBytes() []byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(6)); o != 0 {
		return t.tab.ByteVector(o + t.tab.Pos)
	}
	return nil
}
func (t *pduTable) swcID() uint32 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(8)); o != 0 {
		return t.tab.GetUint32(o + t.tab.Pos)
	}
	return 0
}
func (t *pduTable) ecuID() uint32 {
	if o := flatbuffers.UOffsetT(t.tab.Offset(10)); o != 0 {
		return t.tab.GetUint32(o + t.tab.Pos)
	}
	return 0
}
func (t *pduTable) transportType() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(12)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return 0
}
func (t *pduTable) canMeta() (*canMetaTable, bool) {
	o := flatbuffers.UOffsetT(t.tab.Offset(14))
	if o == 0 {
		return nil, false
	}
	v := &canMetaTable{}
	v.init(t.tab.Bytes, t.tab.Indirect(o+t.tab.Pos))
	return v, true
}
func (t *pduTable) ipMeta() (*ipMetaTable, bool) {
	o := flatbuffers.UOffsetT(t.tab.Offset(14))
	if o == 0 {
		return nil, false
	}
	v := &ipMetaTable{}
	v.init(t.tab.Bytes, t.tab.Indirect(o+t.tab.Pos))
	return v, true
}
func (t *pduTable) structMeta() (*structMetaTable, bool) {
	o := flatbuffers.UOffsetT(t.tab.Offset(14))
	if o == 0 {
		return nil, false
	}
	v := &structMetaTable{}
	v.init(t.tab.Bytes, t.tab.Indirect(o+t.tab.Pos))
	return v, true
}

func pduItemStart(b *flatbuffers.Builder) { b.StartObject(2) }
func pduItemAddItemType(b *flatbuffers.Builder, v byte) {
	b.PrependByteSlot(0, v, itemTypeNone)
}
func pduItemAddItem(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(1, o, 0)
}
func pduItemEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

type pduItemTable struct{ tab flatbuffers.Table }

func (t *pduItemTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }
func (t *pduItemTable) itemType() byte {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return t.tab.GetByte(o + t.tab.Pos)
	}
	return itemTypeNone
}
func (t *pduItemTable) item() (*pduTable, bool) {
	o := flatbuffers.UOffsetT(t.tab.Offset(6))
	if o == 0 {
		return nil, false
	}
	v := &pduTable{}
	v.init(t.tab.Bytes, t.tab.Indirect(o+t.tab.Pos))
	return v, true
}

func pduStreamStart(b *flatbuffers.Builder) { b.StartObject(1) }
func pduStreamAddPdu(b *flatbuffers.Builder, o flatbuffers.UOffsetT) {
	b.PrependUOffsetTSlot(0, o, 0)
}
func pduStreamEnd(b *flatbuffers.Builder) flatbuffers.UOffsetT { return b.EndObject() }

type pduStreamTable struct{ tab flatbuffers.Table }

func (t *pduStreamTable) init(buf []byte, i flatbuffers.UOffsetT) { t.tab.Bytes = buf; t.tab.Pos = i }
func (t *pduStreamTable) pduLen() int {
	if o := flatbuffers.UOffsetT(t.tab.Offset(4)); o != 0 {
		return t.tab.VectorLen(o)
	}
	return 0
}
func (t *pduStreamTable) pduAt(j int) *pduItemTable {
	o := flatbuffers.UOffsetT(t.tab.Offset(4))
	if o == 0 {
		return nil
	}
	a := t.tab.Vector(o)
	it := &pduItemTable{}
	it.init(t.tab.Bytes, t.tab.Indirect(a+flatbuffers.UOffsetT(j)*4))
	return it
}
