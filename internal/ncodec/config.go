// Package ncodec parses the MIME-type descriptor used to select and
// configure a CAN-frame or PDU codec instance, and exposes the unified
// open/config/stat surface that binds a codec implementation to a stream.
package ncodec

import (
	"strconv"
	"strings"
)

// ConfigItem is one key/value pair of a codec's configuration, as surfaced
// by Stat.
type ConfigItem struct {
	Key   string
	Value string
}

// Config holds every configuration item of a codec instance: the
// codec-selection fields stored as strings, the integer-valued selectors
// stored in both string and numeric form, and any unrecognized keys (kept
// for Stat but otherwise inert).
type Config struct {
	Interface string
	Type      string
	Bus       string
	Schema    string

	BusID       uint8
	NodeID      uint8
	InterfaceID uint8

	SwcID uint32
	EcuID uint32

	order []string
	items map[string]string
}

func newConfig() *Config {
	return &Config{items: make(map[string]string)}
}

// Set applies one key=value configuration item, updating the Config's typed
// fields for recognized keys and recording the item (in first-seen order)
// for Stat. A later call for the same key updates its value in place rather
// than appending a new entry, matching "a subsequent config call overrides
// the MIME-type value".
func (c *Config) Set(key, value string) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if _, exists := c.items[key]; !exists {
		c.order = append(c.order, key)
	}
	c.items[key] = value

	switch key {
	case "interface":
		c.Interface = value
	case "type":
		c.Type = value
	case "bus":
		c.Bus = value
	case "schema":
		c.Schema = value
	case "bus_id":
		c.BusID = parseU8(value)
	case "node_id":
		c.NodeID = parseU8(value)
	case "interface_id":
		c.InterfaceID = parseU8(value)
	case "swc_id":
		c.SwcID = parseU32(value)
	case "ecu_id":
		c.EcuID = parseU32(value)
	}
}

// Get returns the raw string value of a configuration item and whether it
// was ever set.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.items[key]
	return v, ok
}

// canOrder and pduOrder are the fixed Stat iteration field order per codec
// kind (codec.c's ncodec_stat), rather than an unordered map iteration.
var (
	canOrder = []string{"interface", "type", "bus", "schema", "bus_id", "node_id", "interface_id"}
	pduOrder = []string{"interface", "type", "schema", "swc_id", "ecu_id"}
)

// Finalize reorders the items actually present to the canonical per-kind
// field order, then appends any remaining items (unrecognized keys, or a
// later Config call for a key outside the canonical set) in first-seen
// order after it. It does not add items that were never set.
func (c *Config) Finalize(order []string) {
	fixed := make([]string, 0, len(c.order))
	seen := make(map[string]bool, len(c.order))
	for _, key := range order {
		if _, ok := c.items[key]; ok {
			fixed = append(fixed, key)
			seen[key] = true
		}
	}
	for _, key := range c.order {
		if !seen[key] {
			fixed = append(fixed, key)
			seen[key] = true
		}
	}
	c.order = fixed
}

// Stat returns the configuration item at index and the index of the next
// item, or ("", "", -1) once index passes the last item.
func (c *Config) Stat(index int) (ConfigItem, int) {
	if index < 0 || index >= len(c.order) {
		return ConfigItem{}, -1
	}
	key := c.order[index]
	item := ConfigItem{Key: key, Value: c.items[key]}
	next := index + 1
	if next >= len(c.order) {
		next = -1
	}
	return item, next
}

// parseU8/parseU32 treat an unparseable value as 0, matching the registry's
// tolerant "garbage in, zero out" parsing of integer selectors.
func parseU8(s string) uint8 {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

func parseU32(s string) uint32 {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

// parseMIME splits a MIME-type descriptor of the form
// "mediatype; k1=v1; k2=v2; ..." into its media type and an ordered Config
// built from the parameter list. Parameters without "=" are ignored.
func parseMIME(mime string) (mediaType string, cfg *Config) {
	parts := strings.Split(mime, ";")
	mediaType = strings.TrimSpace(parts[0])
	cfg = newConfig()
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		cfg.Set(kv[0], kv[1])
	}
	return mediaType, cfg
}
