package pdu

import (
	"bytes"
	"testing"

	"github.com/kstaniek/go-ncodec/internal/ncstream"
)

func TestWriteFlushReadRoundTripPlain(t *testing.T) {
	stream := ncstream.NewMemoryStream(256)
	writer := New(stream, Config{SwcID: 4, EcuID: 5})

	if _, err := writer.Write(PDU{ID: 42, Payload: []byte("Hello World")}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	reader := New(stream, Config{})
	msg, err := reader.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if msg.ID != 42 || !bytes.Equal(msg.Buffer, []byte("Hello World")) || msg.SwcID != 4 || msg.EcuID != 5 {
		t.Fatalf("Read = %+v", msg)
	}
}

func TestWriteTwoFlushesAppendTwoRecords(t *testing.T) {
	stream := ncstream.NewMemoryStream(256)
	writer := New(stream, Config{SwcID: 4, EcuID: 5})

	if _, err := writer.Write(PDU{ID: 42, Payload: []byte("Hello World")}); err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	if _, err := writer.Flush(); err != nil {
		t.Fatalf("Flush 1: %v", err)
	}
	if _, err := writer.Write(PDU{ID: 43, Payload: []byte("second")}); err != nil {
		t.Fatalf("Write 2: %v", err)
	}
	if _, err := writer.Flush(); err != nil {
		t.Fatalf("Flush 2: %v", err)
	}

	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	reader := New(stream, Config{})
	first, err := reader.Read()
	if err != nil || first.ID != 42 {
		t.Fatalf("first read = (%+v,%v)", first, err)
	}
	second, err := reader.Read()
	if err != nil || second.ID != 43 {
		t.Fatalf("second read = (%+v,%v)", second, err)
	}
	if _, err := reader.Read(); err != ErrNoMessage {
		t.Fatalf("third read = %v, want ErrNoMessage", err)
	}
}

func TestLoopbackSuppressedBySwcID(t *testing.T) {
	stream := ncstream.NewMemoryStream(256)
	writer := New(stream, Config{SwcID: 4})
	if _, err := writer.Write(PDU{ID: 1, Payload: []byte("x")}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	self := New(stream, Config{SwcID: 4})
	if _, err := self.Read(); err != ErrNoMessage {
		t.Fatalf("Read with matching swc_id = %v, want ErrNoMessage", err)
	}

	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	peer := New(stream, Config{SwcID: 9})
	msg, err := peer.Read()
	if err != nil || msg.ID != 1 {
		t.Fatalf("Read from peer = (%+v,%v)", msg, err)
	}
}

func TestCanTransportRoundTrip(t *testing.T) {
	stream := ncstream.NewMemoryStream(256)
	writer := New(stream, Config{})
	tr := TransportCan(CanMeta{FrameFormat: FrameFormatExtended, FrameType: FrameTypeRemote, InterfaceID: 7, NetworkID: 9})
	if _, err := writer.Write(PDU{ID: 1, Payload: []byte("x"), Transport: tr}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	reader := New(stream, Config{})
	msg, err := reader.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !msg.Transport.IsCan() {
		t.Fatalf("Transport is not CAN: %+v", msg.Transport)
	}
	if msg.Transport.Can != (CanMeta{FrameFormat: FrameFormatExtended, FrameType: FrameTypeRemote, InterfaceID: 7, NetworkID: 9}) {
		t.Fatalf("CanMeta = %+v", msg.Transport.Can)
	}
}

func TestIPTransportV4DoIPRoundTrip(t *testing.T) {
	stream := ncstream.NewMemoryStream(512)
	writer := New(stream, Config{})
	ip := IPMeta{
		EthDstMAC:  0x0102030405,
		EthSrcMAC:  0x0a0b0c0d0e,
		EthType:    0x0800,
		IPProtocol: IPProtocolUDP,
		HasV4:      true,
		V4:         IPv4Addr{Src: 0xC0A80001, Dst: 0xC0A80002},
		SrcPort:    13400,
		DstPort:    13401,
		HasDoIP:    true,
		DoIP:       DoIPMeta{ProtocolVersion: 2, PayloadType: 0x8001},
	}
	if _, err := writer.Write(PDU{ID: 2, Payload: []byte("y"), Transport: TransportIP(ip)}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	reader := New(stream, Config{})
	msg, err := reader.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !msg.Transport.IsIP() {
		t.Fatalf("Transport is not IP: %+v", msg.Transport)
	}
	got := msg.Transport.IP
	if !got.HasV4 || got.V4 != ip.V4 || !got.HasDoIP || got.DoIP != ip.DoIP || got.SrcPort != ip.SrcPort {
		t.Fatalf("IPMeta round trip = %+v, want %+v", got, ip)
	}
}

func TestIPTransportV6SomeIPRoundTrip(t *testing.T) {
	stream := ncstream.NewMemoryStream(512)
	writer := New(stream, Config{})
	ip := IPMeta{
		IPProtocol: IPProtocolTCP,
		HasV6:      true,
		V6: IPv6Addr{
			Src: [8]uint16{0x2001, 0xdb8, 0, 0, 0, 0, 0, 1},
			Dst: [8]uint16{0x2001, 0xdb8, 0, 0, 0, 0, 0, 2},
		},
		HasSomeIP: true,
		SomeIP: SomeIPMeta{
			MessageID: 0x1234, Length: 8, RequestID: 0xaabb,
			ProtocolVersion: 1, InterfaceVersion: 1, MessageType: 2, ReturnCode: 0,
		},
	}
	if _, err := writer.Write(PDU{ID: 3, Payload: []byte("z"), Transport: TransportIP(ip)}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	reader := New(stream, Config{})
	msg, err := reader.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	got := msg.Transport.IP
	if !got.HasV6 || got.V6 != ip.V6 || !got.HasSomeIP || got.SomeIP != ip.SomeIP {
		t.Fatalf("IPMeta v6/someip round trip = %+v, want %+v", got, ip)
	}
}

func TestStructTransportRoundTrip(t *testing.T) {
	stream := ncstream.NewMemoryStream(512)
	writer := New(stream, Config{})
	sm := StructMeta{
		TypeName: "VehicleSpeed", VarName: "speed", Encoding: "le",
		PlatformArch: "x86_64", PlatformOS: "linux", PlatformABI: "gnu",
		AttributeAligned: 4, AttributePacked: true,
	}
	if _, err := writer.Write(PDU{ID: 4, Payload: []byte("w"), Transport: TransportStruct(sm)}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	reader := New(stream, Config{})
	msg, err := reader.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !msg.Transport.IsStruct() || msg.Transport.Struct != sm {
		t.Fatalf("Struct round trip = %+v, want %+v", msg.Transport.Struct, sm)
	}
}
