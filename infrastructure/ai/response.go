package ai

import (
	"encoding/json"
	"strings"

	"account_connector/domain/entities"
)

const (
	fenceOpen  = "```json\n"
	fenceClose = "\n```"
)

// StripFence removes the json code fence markers the model wraps its answer in.
func StripFence(text string) string {
	text = strings.ReplaceAll(text, fenceOpen, "")
	return strings.ReplaceAll(text, fenceClose, "")
}

// DecodeFencedJSON decodes a fenced JSON answer into v.
// Malformed payloads are returned as *entities.ParseError.
func DecodeFencedJSON(text string, v any) error {
	payload := StripFence(text)
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &entities.ParseError{Payload: payload, Err: err}
	}
	return nil
}
