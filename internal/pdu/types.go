// Package pdu implements the PDU codec: encoding and decoding a
// stream-vector of PDUs carrying CAN, IP (v4/v6, DoIP/SomeIP), or
// struct-object transport metadata.
package pdu

// IPProtocol enumerates the transport-layer protocol of an IP PDU.
type IPProtocol uint8

const (
	IPProtocolNone IPProtocol = 0
	IPProtocolTCP  IPProtocol = 6
	IPProtocolUDP  IPProtocol = 17
)

// CANFrameFormat mirrors the CAN identifier format of a CAN-transport PDU.
type CANFrameFormat uint8

const (
	FrameFormatBase CANFrameFormat = iota
	FrameFormatExtended
	FrameFormatFdBase
	FrameFormatFdExtended
)

// CANFrameType mirrors the CAN frame class of a CAN-transport PDU.
type CANFrameType uint8

const (
	FrameTypeData CANFrameType = iota
	FrameTypeRemote
	FrameTypeError
	FrameTypeOverload
)

// CanMeta is the transport metadata for a PDU carried over CAN.
type CanMeta struct {
	FrameFormat CANFrameFormat
	FrameType   CANFrameType
	InterfaceID uint32
	NetworkID   uint32
}

// IPv4Addr holds source/destination IPv4 addresses in network-endian u32 form.
type IPv4Addr struct {
	Src, Dst uint32
}

// IPv6Addr holds source/destination IPv6 addresses, each 8 u16 groups.
type IPv6Addr struct {
	Src, Dst [8]uint16
}

// ipAddrTag is the union tag for IpMessageMetadata.ip_addr.
type ipAddrTag uint8

const (
	ipAddrNone ipAddrTag = iota
	ipAddrV4
	ipAddrV6
)

// DoIPMeta is the DoIP (ISO 13400) socket-adapter variant.
type DoIPMeta struct {
	ProtocolVersion uint8
	PayloadType     uint16
}

// SomeIPMeta is the SOME/IP (AUTOSAR) socket-adapter variant.
type SomeIPMeta struct {
	MessageID        uint32
	Length           uint32
	RequestID        uint32
	ProtocolVersion  uint8
	InterfaceVersion uint8
	MessageType      uint8
	ReturnCode       uint8
}

// socketAdapterTag is the union tag for IpMessageMetadata.socket_adapter.
type socketAdapterTag uint8

const (
	socketAdapterNone socketAdapterTag = iota
	socketAdapterDoIP
	socketAdapterSomeIP
)

// IPMeta is the transport metadata for a PDU carried over IP/Ethernet.
type IPMeta struct {
	EthDstMAC   uint64
	EthSrcMAC   uint64
	EthType     uint16
	EthTCIPCP   uint8
	EthTCIDEI   uint8
	EthTCIVID   uint16
	IPProtocol  IPProtocol
	HasV4       bool
	V4          IPv4Addr
	HasV6       bool
	V6          IPv6Addr
	SrcPort     uint16
	DstPort     uint16
	HasDoIP     bool
	DoIP        DoIPMeta
	HasSomeIP   bool
	SomeIP      SomeIPMeta
}

// StructMeta is the transport metadata for a PDU carried as an in-process
// struct object, e.g. between co-located signal-based components.
type StructMeta struct {
	TypeName          string
	VarName           string
	Encoding          string
	PlatformArch      string
	PlatformOS        string
	PlatformABI       string
	AttributeAligned  uint16
	AttributePacked   bool
}

// transportTag is the PDU transport union tag.
type transportTag uint8

const (
	transportNone transportTag = iota
	transportCan
	transportIP
	transportStruct
)

// Transport is the tagged transport union carried by a PDU. At most one of
// Can, IP, Struct is meaningful, selected by the unexported tag (the zero
// value is the None variant); readers must check IsCan/IsIP/IsStruct
// before consulting a variant.
type Transport struct {
	tag    transportTag
	Can    CanMeta
	IP     IPMeta
	Struct StructMeta
}

// IsCan reports whether the transport is the CAN variant.
func (t Transport) IsCan() bool { return t.tag == transportCan }

// IsIP reports whether the transport is the IP variant.
func (t Transport) IsIP() bool { return t.tag == transportIP }

// IsStruct reports whether the transport is the struct-object variant.
func (t Transport) IsStruct() bool { return t.tag == transportStruct }

// TransportCan builds a CAN-transport union value.
func TransportCan(m CanMeta) Transport { return Transport{tag: transportCan, Can: m} }

// TransportIP builds an IP-transport union value.
func TransportIP(m IPMeta) Transport { return Transport{tag: transportIP, IP: m} }

// TransportStruct builds a struct-transport union value.
func TransportStruct(m StructMeta) Transport { return Transport{tag: transportStruct, Struct: m} }

// PDU is one inner item of a PDU stream message.
type PDU struct {
	ID        uint32
	Payload   []byte
	SwcID     uint32
	EcuID     uint32
	Transport Transport
}

// Message is what Read populates. Buffer aliases the underlying stream's
// memory; callers must copy it before any call that could invalidate the
// stream's backing storage.
type Message struct {
	ID        uint32
	Buffer    []byte
	SwcID     uint32
	EcuID     uint32
	Transport Transport
}
