package crptapi

import (
	"encoding/json"
)

// Encoder serializes a document into a request body
type Encoder interface {
	Encode(doc *Document) ([]byte, error)
}

// JSONEncoder encodes documents as JSON, the format the registry accepts
type JSONEncoder struct{}

func (JSONEncoder) Encode(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, NewEncodingError("", ErrNilDocument)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, NewEncodingError(doc.DocID, err)
	}
	return data, nil
}

// EncoderFunc adapts a function to the Encoder interface
type EncoderFunc func(doc *Document) ([]byte, error)

func (f EncoderFunc) Encode(doc *Document) ([]byte, error) {
	return f(doc)
}
