package pdu

import (
	"errors"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/kstaniek/go-ncodec/internal/framing"
	"github.com/kstaniek/go-ncodec/internal/ncstream"
	"github.com/kstaniek/go-ncodec/internal/trace"
)

// ErrNoMessage is returned by Read once the stream holds no further PDU
// stream messages.
var ErrNoMessage = framing.ErrNoMessage

// Config carries the codec's own swc_id/ecu_id, used both to fill in a
// message's zero-valued identifiers on write and to filter loopback on
// read, and an optional observer.
type Config struct {
	SwcID uint32
	EcuID uint32
	Trace trace.Hooks
}

type readState struct {
	active bool
	table  pduStreamTable
	index  int
	length int
}

// Codec encodes and decodes a stream of PDUs over a bound Stream.
type Codec struct {
	stream ncstream.Stream
	cfg    Config

	pending []PDU
	rs      readState
}

// New binds a Codec to stream with the given swc_id/ecu_id configuration.
func New(stream ncstream.Stream, cfg Config) *Codec {
	cfg.Trace = trace.OrNoop(cfg.Trace)
	return &Codec{stream: stream, cfg: cfg}
}

// Write appends pdu to the pending outgoing batch, defaulting SwcID/EcuID
// from the codec's configuration when the message leaves them zero.
func (c *Codec) Write(item PDU) (int, error) {
	if c.stream == nil {
		return 0, ncstream.ErrNoStreamResource
	}
	if item.SwcID == 0 {
		item.SwcID = c.cfg.SwcID
	}
	if item.EcuID == 0 {
		item.EcuID = c.cfg.EcuID
	}
	c.pending = append(c.pending, item)
	n := len(item.Payload)
	if n > 0 {
		c.cfg.Trace.Write("pdu", n)
	}
	return n, nil
}

// Flush serializes the pending batch as one size-prefixed outer record.
func (c *Codec) Flush() (int, error) {
	if c.pending == nil {
		return 0, nil
	}
	if c.stream == nil {
		return 0, ncstream.ErrNoStreamResource
	}

	b := flatbuffers.NewBuilder(0)
	itemOffs := make([]flatbuffers.UOffsetT, len(c.pending))
	for i, item := range c.pending {
		transportOff, transportType := buildTransport(b, item.Transport)
		payloadOff := b.CreateByteVector(item.Payload)

		pduStart(b)
		if transportOff != 0 {
			pduAddTransport(b, transportOff)
		}
		pduAddTransportType(b, transportType)
		pduAddEcuID(b, item.EcuID)
		pduAddSwcID(b, item.SwcID)
		pduAddPayload(b, payloadOff)
		pduAddID(b, item.ID)
		pduOff := pduEnd(b)

		pduItemStart(b)
		pduItemAddItem(b, pduOff)
		pduItemAddItemType(b, itemTypePdu)
		itemOffs[i] = pduItemEnd(b)
	}

	b.StartVector(4, len(itemOffs), 4)
	for i := len(itemOffs) - 1; i >= 0; i-- {
		b.PrependUOffsetT(itemOffs[i])
	}
	vecOff := b.EndVector(len(itemOffs))

	pduStreamStart(b)
	pduStreamAddPdu(b, vecOff)
	rootOff := pduStreamEnd(b)

	b.FinishSizePrefixedWithFileIdentifier(rootOff, fileIdentifier[:])
	body := b.FinishedBytes()

	n, err := c.stream.Write(body)
	c.pending = nil
	if err != nil {
		return 0, err
	}
	return n, nil
}

// buildTransport emits the nested transport-metadata table (if any) fully
// before returning its offset, per the requirement that FlatBuffer children
// are built before the object that references them.
func buildTransport(b *flatbuffers.Builder, tr Transport) (flatbuffers.UOffsetT, byte) {
	switch {
	case tr.IsCan():
		canMetaStart(b)
		canMetaAddNetworkID(b, tr.Can.NetworkID)
		canMetaAddInterfaceID(b, tr.Can.InterfaceID)
		canMetaAddFrameType(b, byte(tr.Can.FrameType))
		canMetaAddFrameFormat(b, byte(tr.Can.FrameFormat))
		return canMetaEnd(b), byte(transportCan)

	case tr.IsIP():
		var addrOff flatbuffers.UOffsetT
		var addrType byte
		switch {
		case tr.IP.HasV4:
			ipV4Start(b)
			ipV4AddDst(b, tr.IP.V4.Dst)
			ipV4AddSrc(b, tr.IP.V4.Src)
			addrOff = ipV4End(b)
			addrType = byte(ipAddrV4)
		case tr.IP.HasV6:
			dstOff := b.CreateByteVector(v6GroupsToBytes(tr.IP.V6.Dst))
			srcOff := b.CreateByteVector(v6GroupsToBytes(tr.IP.V6.Src))
			ipV6Start(b)
			ipV6AddDst(b, dstOff)
			ipV6AddSrc(b, srcOff)
			addrOff = ipV6End(b)
			addrType = byte(ipAddrV6)
		}

		var adapterOff flatbuffers.UOffsetT
		var adapterType byte
		switch {
		case tr.IP.HasDoIP:
			doIPStart(b)
			doIPAddPayloadType(b, tr.IP.DoIP.PayloadType)
			doIPAddProtocolVersion(b, tr.IP.DoIP.ProtocolVersion)
			adapterOff = doIPEnd(b)
			adapterType = byte(socketAdapterDoIP)
		case tr.IP.HasSomeIP:
			someIPStart(b)
			someIPAddReturnCode(b, tr.IP.SomeIP.ReturnCode)
			someIPAddMessageType(b, tr.IP.SomeIP.MessageType)
			someIPAddInterfaceVersion(b, tr.IP.SomeIP.InterfaceVersion)
			someIPAddProtocolVersion(b, tr.IP.SomeIP.ProtocolVersion)
			someIPAddRequestID(b, tr.IP.SomeIP.RequestID)
			someIPAddLength(b, tr.IP.SomeIP.Length)
			someIPAddMessageID(b, tr.IP.SomeIP.MessageID)
			adapterOff = someIPEnd(b)
			adapterType = byte(socketAdapterSomeIP)
		}

		ipMetaStart(b)
		if adapterOff != 0 {
			ipMetaAddSocketAdapter(b, adapterOff)
		}
		ipMetaAddSocketAdapterType(b, adapterType)
		ipMetaAddIPDstPort(b, tr.IP.DstPort)
		ipMetaAddIPSrcPort(b, tr.IP.SrcPort)
		if addrOff != 0 {
			ipMetaAddIPAddr(b, addrOff)
		}
		ipMetaAddIPAddrType(b, addrType)
		ipMetaAddIPProtocol(b, byte(tr.IP.IPProtocol))
		ipMetaAddEthTCIVID(b, tr.IP.EthTCIVID)
		ipMetaAddEthTCIDEI(b, tr.IP.EthTCIDEI)
		ipMetaAddEthTCIPCP(b, tr.IP.EthTCIPCP)
		ipMetaAddEthEthertype(b, tr.IP.EthType)
		ipMetaAddEthSrcMAC(b, tr.IP.EthSrcMAC)
		ipMetaAddEthDstMAC(b, tr.IP.EthDstMAC)
		return ipMetaEnd(b), byte(transportIP)

	case tr.IsStruct():
		typeNameOff := b.CreateString(tr.Struct.TypeName)
		varNameOff := b.CreateString(tr.Struct.VarName)
		encodingOff := b.CreateString(tr.Struct.Encoding)
		archOff := b.CreateString(tr.Struct.PlatformArch)
		osOff := b.CreateString(tr.Struct.PlatformOS)
		abiOff := b.CreateString(tr.Struct.PlatformABI)

		structMetaStart(b)
		structMetaAddAttributePacked(b, tr.Struct.AttributePacked)
		structMetaAddAttributeAligned(b, tr.Struct.AttributeAligned)
		structMetaAddPlatformABI(b, abiOff)
		structMetaAddPlatformOS(b, osOff)
		structMetaAddPlatformArch(b, archOff)
		structMetaAddEncoding(b, encodingOff)
		structMetaAddVarName(b, varNameOff)
		structMetaAddTypeName(b, typeNameOff)
		return structMetaEnd(b), byte(transportStruct)

	default:
		return 0, byte(transportNone)
	}
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

// Read returns the next PDU not suppressed by loopback filtering. Its Buffer
// field aliases the stream's backing storage; callers must copy it before
// any call that could invalidate that storage.
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
			var st pduStreamTable
			st.init(root.Bytes, root.Pos)
			c.rs = readState{active: true, table: st, index: 0, length: st.pduLen()}
		}

		for c.rs.index < c.rs.length {
			it := c.rs.table.pduAt(c.rs.index)
			c.rs.index++
			if it == nil || it.itemType() != itemTypePdu {
				continue
			}
			p, ok := it.item()
			if !ok {
				continue
			}
			swc := p.swcID()
			if c.cfg.SwcID != 0 && swc != 0 && swc == c.cfg.SwcID {
				continue
			}
			buf := p.payloadBytes()
			if len(buf) > 0 {
				c.cfg.Trace.Read("pdu", len(buf))
			}
			return Message{
				ID:        p.id(),
				Buffer:    buf,
				SwcID:     swc,
				EcuID:     p.ecuID(),
				Transport: decodeTransport(p),
			}, nil
		}

		c.rs.active = false
	}
}

func decodeTransport(p *pduTable) Transport {
	switch p.transportType() {
	case byte(transportCan):
		m, ok := p.canMeta()
		if !ok {
			return Transport{}
		}
		return TransportCan(CanMeta{
			FrameFormat: CANFrameFormat(m.frameFormat()),
			FrameType:   CANFrameType(m.frameType()),
			InterfaceID: m.interfaceID(),
			NetworkID:   m.networkID(),
		})

	case byte(transportIP):
		m, ok := p.ipMeta()
		if !ok {
			return Transport{}
		}
		ip := IPMeta{
			EthDstMAC:  m.ethDstMAC(),
			EthSrcMAC:  m.ethSrcMAC(),
			EthType:    m.ethEthertype(),
			EthTCIPCP:  m.ethTCIPCP(),
			EthTCIDEI:  m.ethTCIDEI(),
			EthTCIVID:  m.ethTCIVID(),
			IPProtocol: IPProtocol(m.ipProtocol()),
			SrcPort:    m.ipSrcPort(),
			DstPort:    m.ipDstPort(),
		}
		switch m.ipAddrType() {
		case byte(ipAddrV4):
			if v4, ok := m.ipAddrV4(); ok {
				ip.HasV4 = true
				ip.V4 = IPv4Addr{Src: v4.src(), Dst: v4.dst()}
			}
		case byte(ipAddrV6):
			if v6, ok := m.ipAddrV6(); ok {
				ip.HasV6 = true
				ip.V6 = IPv6Addr{Src: v6.src(), Dst: v6.dst()}
			}
		}
		switch m.socketAdapterType() {
		case byte(socketAdapterDoIP):
			if d, ok := m.socketAdapterDoIP(); ok {
				ip.HasDoIP = true
				ip.DoIP = DoIPMeta{ProtocolVersion: d.protocolVersion(), PayloadType: d.payloadType()}
			}
		case byte(socketAdapterSomeIP):
			if s, ok := m.socketAdapterSomeIP(); ok {
				ip.HasSomeIP = true
				ip.SomeIP = SomeIPMeta{
					MessageID:        s.messageID(),
					Length:           s.length(),
					RequestID:        s.requestID(),
					ProtocolVersion:  s.protocolVersion(),
					InterfaceVersion: s.interfaceVersion(),
					MessageType:      s.messageType(),
					ReturnCode:       s.returnCode(),
				}
			}
		}
		return TransportIP(ip)

	case byte(transportStruct):
		m, ok := p.structMeta()
		if !ok {
			return Transport{}
		}
		return TransportStruct(StructMeta{
			TypeName:         m.typeName(),
			VarName:          m.varName(),
			Encoding:         m.encoding(),
			PlatformArch:     m.platformArch(),
			PlatformOS:       m.platformOS(),
			PlatformABI:      m.platformABI(),
			AttributeAligned: m.attributeAligned(),
			AttributePacked:  m.attributePacked(),
		})

	default:
		return Transport{}
	}
}
