package trace

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Local mirrored counters, read by Snap for cheap periodic logging without
// scraping Prometheus in-process.
var (
	localCanWrites, localCanReads         uint64
	localPduWrites, localPduReads         uint64
	localCanWriteBytes, localCanReadBytes uint64
	localPduWriteBytes, localPduReadBytes uint64
)

// Snapshot is a cheap copy of the local mirrored counters.
type Snapshot struct {
	CanWrites, CanReads         uint64
	PduWrites, PduReads         uint64
	CanWriteBytes, CanReadBytes uint64
	PduWriteBytes, PduReadBytes uint64
}

// Snap returns the current local counters.
func Snap() Snapshot {
	return Snapshot{
		CanWrites:     atomic.LoadUint64(&localCanWrites),
		CanReads:      atomic.LoadUint64(&localCanReads),
		PduWrites:     atomic.LoadUint64(&localPduWrites),
		PduReads:      atomic.LoadUint64(&localPduReads),
		CanWriteBytes: atomic.LoadUint64(&localCanWriteBytes),
		CanReadBytes:  atomic.LoadUint64(&localCanReadBytes),
		PduWriteBytes: atomic.LoadUint64(&localPduWriteBytes),
		PduReadBytes:  atomic.LoadUint64(&localPduReadBytes),
	}
}

var (
	writesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ncodec_writes_total",
		Help: "Total successful codec writes, by codec kind.",
	}, []string{"kind"})
	readsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ncodec_reads_total",
		Help: "Total successful codec reads, by codec kind.",
	}, []string{"kind"})
	writeBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ncodec_write_bytes_total",
		Help: "Total payload bytes written, by codec kind.",
	}, []string{"kind"})
	readBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ncodec_read_bytes_total",
		Help: "Total payload bytes read, by codec kind.",
	}, []string{"kind"})
)

// PrometheusHooks records per-kind write/read counts and byte totals.
// Pre-registering the "can"/"pdu" label series avoids a registration-latency
// blip on first use of each kind.
type PrometheusHooks struct{}

// NewPrometheusHooks pre-registers the known codec-kind label series and
// returns a Hooks backed by them.
func NewPrometheusHooks() PrometheusHooks {
	for _, kind := range []string{"can", "pdu"} {
		writesTotal.WithLabelValues(kind).Add(0)
		readsTotal.WithLabelValues(kind).Add(0)
		writeBytesTotal.WithLabelValues(kind).Add(0)
		readBytesTotal.WithLabelValues(kind).Add(0)
	}
	return PrometheusHooks{}
}

func (PrometheusHooks) Write(kind string, n int) {
	writesTotal.WithLabelValues(kind).Inc()
	writeBytesTotal.WithLabelValues(kind).Add(float64(n))
	switch kind {
	case "can":
		atomic.AddUint64(&localCanWrites, 1)
		atomic.AddUint64(&localCanWriteBytes, uint64(n))
	case "pdu":
		atomic.AddUint64(&localPduWrites, 1)
		atomic.AddUint64(&localPduWriteBytes, uint64(n))
	}
}

func (PrometheusHooks) Read(kind string, n int) {
	readsTotal.WithLabelValues(kind).Inc()
	readBytesTotal.WithLabelValues(kind).Add(float64(n))
	switch kind {
	case "can":
		atomic.AddUint64(&localCanReads, 1)
		atomic.AddUint64(&localCanReadBytes, uint64(n))
	case "pdu":
		atomic.AddUint64(&localPduReads, 1)
		atomic.AddUint64(&localPduReadBytes, uint64(n))
	}
}
