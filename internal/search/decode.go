package search

import (
	"bytes"
	"encoding/json"
	"fmt"

	"searchwidget/internal/config"
	"searchwidget/internal/domain"
)

// decoder turns a response body into result items
type decoder func(body []byte) ([]domain.SearchResultItem, error)

func decoderFor(shape string) (decoder, error) {
	switch shape {
	case "", config.ShapeArray:
		return decodeArray, nil
	case config.ShapeEnvelope:
		return decodeEnvelope, nil
	default:
		return nil, fmt.Errorf("unknown response shape %q", shape)
	}
}

// decodeArray reads the canonical flat array contract. Valid JSON that is
// not an array carries no items.
func decodeArray(body []byte) ([]domain.SearchResultItem, error) {
	if !json.Valid(body) {
		return nil, &ParseError{Err: syntaxError(body)}
	}
	if firstByte(body) != '[' {
		return nil, nil
	}
	var items []domain.SearchResultItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &ParseError{Err: err, Mismatch: true}
	}
	return items, nil
}

// decodeEnvelope reads the older { "items": [...] } contract. A missing or
// null items field carries no items.
func decodeEnvelope(body []byte) ([]domain.SearchResultItem, error) {
	if !json.Valid(body) {
		return nil, &ParseError{Err: syntaxError(body)}
	}
	if firstByte(body) != '{' {
		return nil, nil
	}
	var env struct {
		Items []domain.SearchResultItem `json:"items"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ParseError{Err: err, Mismatch: true}
	}
	return env.Items, nil
}

func firstByte(body []byte) byte {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// syntaxError recovers the decoder's own message for an invalid body
func syntaxError(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	return fmt.Errorf("invalid json")
}
