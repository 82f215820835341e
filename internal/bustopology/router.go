package bustopology

import (
	"github.com/kstaniek/go-ncodec/internal/ascii85"
	"github.com/kstaniek/go-ncodec/internal/ncodec"
	"github.com/kstaniek/go-ncodec/internal/ncstream"
)

// Router binds FMI value references to codec streams, per a parsed
// modelDescription.xml, and performs the byte copies a co-simulation host
// needs at each RX/TX step.
type Router struct {
	md *ModelDescription

	busNcodec map[string]*ncodec.Instance
	rxIndex   map[string]*ncodec.Instance
	txIndex   map[string]*ncodec.Instance
	decodeVR  map[string]bool
	encodeVR  map[string]bool
	freeList  [][]byte

	// resetPending tracks whether a reset is owed. It starts false so the
	// first Reset call actually runs. Tx clears it (a reset is owed again
	// before the next Tx batch); Rx sets it (so a stray Reset call during
	// an in-progress Rx cycle does not truncate data just written). Reset
	// no-ops when it is already true and sets it true after running.
	resetPending bool
}

// NewRouter creates a Router against an already-parsed modelDescription.
func NewRouter(md *ModelDescription) *Router {
	return &Router{
		md:        md,
		busNcodec: make(map[string]*ncodec.Instance),
		rxIndex:   make(map[string]*ncodec.Instance),
		txIndex:   make(map[string]*ncodec.Instance),
		decodeVR:  make(map[string]bool),
		encodeVR:  make(map[string]bool),
	}
}

// Add registers codec under bus_id and indexes every ScalarVariable whose
// bus-topology annotation names this bus into rx/tx, and every
// binary-to-text annotation of ascii85 into the encode/decode sets.
func (r *Router) Add(busID string, codec *ncodec.Instance) {
	r.busNcodec[busID] = codec

	for _, sv := range r.md.ModelVariables.ScalarVariable {
		if sv.ValueReference == "" {
			continue
		}
		if anno, ok := sv.toolAnno(busTopologyTool, busIDAnnotation); ok && anno == busID {
			switch sv.Causality {
			case causalityInput:
				r.rxIndex[sv.ValueReference] = codec
			case causalityOutput:
				r.txIndex[sv.ValueReference] = codec
			}
		}
		if enc, ok := sv.toolAnno(binaryToTextTool, encodingAnnotation); ok && enc == ascii85Encoding {
			switch sv.Causality {
			case causalityInput:
				r.decodeVR[sv.ValueReference] = true
			case causalityOutput:
				r.encodeVR[sv.ValueReference] = true
			}
		}
	}
}

// Rx copies data into the stream of the codec bound to vr, decoding it from
// Ascii85 first if vr is configured for that. Absent a matching index entry
// it returns silently.
func (r *Router) Rx(vr string, data []byte) error {
	inst, ok := r.rxIndex[vr]
	if !ok {
		return nil
	}
	stream := inst.Stream()
	if stream == nil {
		return nil
	}

	payload := data
	if r.decodeVR[vr] {
		payload = ascii85.Decode(data)
	}

	if _, err := stream.Seek(0, ncstream.SeekEnd); err != nil {
		return err
	}
	if _, err := stream.Write(payload); err != nil {
		return err
	}
	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		return err
	}
	r.resetPending = true
	return nil
}

// Tx reads the unread span from the stream of the codec bound to vr,
// copies it into a fresh buffer owned by the router (released on the next
// Reset), encoding it to Ascii85 first if vr is configured for that.
// Absent a matching index entry it returns (nil, nil).
func (r *Router) Tx(vr string) ([]byte, error) {
	inst, ok := r.txIndex[vr]
	if !ok {
		return nil, nil
	}
	stream := inst.Stream()
	if stream == nil {
		return nil, nil
	}
	r.resetPending = false

	if _, err := stream.Seek(0, ncstream.SeekSet); err != nil {
		return nil, err
	}
	raw, err := stream.Read(ncstream.PosUpdate)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	if r.encodeVR[vr] {
		out = ascii85.Encode(out)
	}

	r.freeList = append(r.freeList, out)
	return out, nil
}

// Reset truncates every registered codec and releases every buffer
// produced by Tx since the last Reset. It is a no-op if called again
// before the next Tx batch (or while an Rx cycle is in progress).
func (r *Router) Reset() error {
	if r.resetPending {
		return nil
	}
	for _, inst := range r.busNcodec {
		if err := inst.Truncate(); err != nil {
			return err
		}
	}
	r.freeList = nil
	r.resetPending = true
	return nil
}

// Destroy closes every registered codec and drops the router's indexes.
func (r *Router) Destroy() error {
	for _, inst := range r.busNcodec {
		if err := inst.Close(); err != nil {
			return err
		}
	}
	r.busNcodec = nil
	r.rxIndex = nil
	r.txIndex = nil
	r.decodeVR = nil
	r.encodeVR = nil
	r.freeList = nil
	return nil
}
