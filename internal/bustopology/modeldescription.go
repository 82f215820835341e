// Package bustopology maps FMI modelDescription.xml variable references to
// codec streams and copies bytes between them on the host's RX/TX cycle,
// optionally through an Ascii85 binary-to-text transform.
package bustopology

import (
	"encoding/xml"
	"io"
)

const (
	busTopologyTool   = "dse.standards.fmi-ls-bus-topology"
	binaryToTextTool  = "dse.standards.fmi-ls-binary-to-text"
	busIDAnnotation   = "bus_id"
	encodingAnnotation = "encoding"
	ascii85Encoding   = "ascii85"

	causalityInput  = "input"
	causalityOutput = "output"
)

// ModelDescription is the subset of an FMI modelDescription.xml this
// package reads: the ScalarVariable list and its tool annotations.
type ModelDescription struct {
	XMLName        xml.Name       `xml:"fmiModelDescription"`
	ModelVariables modelVariables `xml:"ModelVariables"`
}

type modelVariables struct {
	ScalarVariable []scalarVariable `xml:"ScalarVariable"`
}

type scalarVariable struct {
	Name           string      `xml:"name,attr"`
	ValueReference string      `xml:"valueReference,attr"`
	Causality      string      `xml:"causality,attr"`
	Annotations    annotations `xml:"Annotations"`
}

type annotations struct {
	Tool []tool `xml:"Tool"`
}

type tool struct {
	Name       string       `xml:"name,attr"`
	Annotation []annotation `xml:"Annotation"`
}

type annotation struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// toolAnno returns the text of the named annotation under the named tool
// namespace, mirroring the source's XPath-based parse_tool_anno lookup.
func (sv scalarVariable) toolAnno(toolName, annoName string) (string, bool) {
	for _, t := range sv.Annotations.Tool {
		if t.Name != toolName {
			continue
		}
		for _, a := range t.Annotation {
			if a.Name == annoName {
				return a.Value, true
			}
		}
	}
	return "", false
}

// ParseModelDescription reads and parses an FMI modelDescription.xml.
func ParseModelDescription(r io.Reader) (*ModelDescription, error) {
	var md ModelDescription
	if err := xml.NewDecoder(r).Decode(&md); err != nil {
		return nil, err
	}
	return &md, nil
}
