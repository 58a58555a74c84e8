package ir

import "encoding/json"

// ToJSON renders the document as JSON for tooling that manipulates
// runs outside the TAP text form, such as json-patch.
func ToJSON(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// FromJSON decodes a document produced by ToJSON.
func FromJSON(data []byte) (*Document, error) {
	d := &Document{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, err
	}
	if d.Version == 0 {
		d.Version = DefaultVersion
	}
	return d, nil
}
