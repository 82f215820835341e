// Package framing locates, validates, and iterates the size-prefixed outer
// records that make up a codec's wire stream (spec §4.3).
//
// An outer record is `u32 LE size` followed by `size` bytes of body; the
// body is a FlatBuffer buffer whose first four bytes are a root-table
// uoffset and whose next four bytes (at a fixed location, independent of
// the root table's own layout) are a 4-byte ASCII file identifier used to
// validate the record belongs to the expected schema.
package framing

import (
	"encoding/binary"
	"errors"

	"github.com/google/flatbuffers/go"

	"github.com/kstaniek/go-ncodec/internal/ncstream"
)

// ErrNoMessage is returned when the stream holds no more valid outer
// records, matching spec §7's NoMessage kind.
var ErrNoMessage = errors.New("framing: no message in stream")

// Identifier is the 4-byte ASCII file identifier carried by a FlatBuffer
// body, e.g. "CFR1" or "PDU1".
type Identifier [4]byte

// FindNext scans the stream's unread bytes for the next outer record whose
// body carries the expected identifier, advancing the stream's read cursor
// past every record it inspects (matched or not) per spec §4.3's
// find-next algorithm. On success it returns the record's body (the bytes
// between the size prefix and the next record, not a copy: callers must
// not mutate it and must copy before any call that could invalidate the
// stream's backing storage). On exhaustion it seeks the stream to its end
// and returns ErrNoMessage.
func FindNext(s ncstream.Stream, id Identifier) ([]byte, error) {
	data, err := s.Read(ncstream.PosNoChange)
	if err != nil {
		return nil, err
	}

	idx := 0
	for idx+4 <= len(data) {
		size := int(binary.LittleEndian.Uint32(data[idx : idx+4]))
		if size == 0 {
			break
		}
		bodyStart := idx + 4
		bodyEnd := bodyStart + size
		if bodyEnd > len(data) {
			break
		}
		body := data[bodyStart:bodyEnd]
		if _, err := s.Seek(size+4, ncstream.SeekCur); err != nil {
			return nil, err
		}
		if hasIdentifier(body, id) {
			return body, nil
		}
		idx = bodyEnd
	}

	if _, err := s.Seek(0, ncstream.SeekEnd); err != nil {
		return nil, err
	}
	return nil, ErrNoMessage
}

func hasIdentifier(body []byte, id Identifier) bool {
	if len(body) < 8 {
		return false
	}
	return body[4] == id[0] && body[5] == id[1] && body[6] == id[2] && body[7] == id[3]
}

// RootTable returns a flatbuffers.Table positioned at the root table of a
// body returned by FindNext.
func RootTable(body []byte) flatbuffers.Table {
	n := flatbuffers.GetUOffsetT(body)
	return flatbuffers.Table{Bytes: body, Pos: n}
}

// WrapSizePrefix prepends a little-endian u32 length prefix to a finished
// FlatBuffer body, forming one outer record. Builders that already produce
// a size-prefixed buffer (via FinishSizePrefixedWithFileIdentifier) do not
// need this helper; it is for callers composing bodies by hand. Nothing in
// this module calls it.
func WrapSizePrefix(body []byte) []byte {
	out := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(out, uint32(len(body)))
	copy(out[4:], body)
	return out
}
