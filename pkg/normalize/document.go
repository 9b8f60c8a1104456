package normalize

import (
	"encoding/json"
	"fmt"
	"io"
)

// DocumentKey is the single top-level key of a rendered document.
const DocumentKey = "S"

// Document is the serialized form of a normalized matrix: {"S": [[...]]}.
type Document struct {
	S Matrix `json:"S"`
}

// Render encodes the document as compact JSON. The output is stable for a
// given matrix.
func (d Document) Render() ([]byte, error) {
	if d.S == nil {
		d.S = Matrix{}
	}
	return json.Marshal(d)
}

// ReadDocument decodes a rendered document and checks that its matrix is
// square.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	for i, row := range d.S {
		if len(row) != len(d.S) {
			return nil, fmt.Errorf("decode document: row %d has %d columns, want %d", i, len(row), len(d.S))
		}
	}
	return &d, nil
}
