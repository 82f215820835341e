package ncodec

import (
	"errors"

	"github.com/kstaniek/go-ncodec/internal/canframe"
	"github.com/kstaniek/go-ncodec/internal/ncstream"
	"github.com/kstaniek/go-ncodec/internal/pdu"
)

// ErrKind mirrors the small negative-integer error kinds of the original
// C ABI, for callers that need a stable numeric code rather than a Go
// error value (trace/metrics labeling, cross-language bridging).
type ErrKind int

const (
	KindOK               ErrKind = 0
	KindNoStream         ErrKind = -1
	KindNoStreamResource ErrKind = -2
	KindInvalidArg       ErrKind = -3
	KindNoMessage        ErrKind = -4
	KindMessageSize      ErrKind = -5
	KindLibAccess        ErrKind = -6
	KindNoEntry          ErrKind = -7
	KindNoData           ErrKind = -8
)

// ErrLibAccess, ErrNoEntry and ErrNoData cover registry/binding failures
// that have no counterpart in internal/ncstream (there is nothing to bind
// to a dynamic library in this port; these exist so Open can report a
// discoverable kind for a malformed MIME descriptor without inventing a
// new error type per failure).
var (
	ErrLibAccess = errors.New("ncodec: codec implementation unavailable")
	ErrNoEntry   = errors.New("ncodec: no codec registered for media type")
	ErrNoData    = errors.New("ncodec: configuration item absent")
)

// KindOf maps an error returned by this package or its dependents to its
// symbolic kind, defaulting to KindInvalidArg for anything unrecognized.
func KindOf(err error) ErrKind {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ncstream.ErrNoStream):
		return KindNoStream
	case errors.Is(err, ncstream.ErrNoStreamResource):
		return KindNoStreamResource
	case errors.Is(err, ncstream.ErrInvalidArg):
		return KindInvalidArg
	case errors.Is(err, ncstream.ErrMessageSize):
		return KindMessageSize
	case errors.Is(err, canframe.ErrNoMessage), errors.Is(err, pdu.ErrNoMessage):
		return KindNoMessage
	case errors.Is(err, ErrLibAccess):
		return KindLibAccess
	case errors.Is(err, ErrNoEntry):
		return KindNoEntry
	case errors.Is(err, ErrNoData):
		return KindNoData
	default:
		return KindInvalidArg
	}
}
