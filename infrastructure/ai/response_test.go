package ai

import (
	"errors"
	"testing"

	"account_connector/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFencedJSON(t *testing.T) {
	text := "```json\n{\"description\":\"a cat\",\"objects\":[\"cat\",\"sofa\"],\"count\":2}\n```"

	var got map[string]any
	require.NoError(t, DecodeFencedJSON(text, &got))

	assert.Equal(t, map[string]any{
		"description": "a cat",
		"objects":     []any{"cat", "sofa"},
		"count":       float64(2),
	}, got)
}

func TestDecodeFencedJSON_Unfenced(t *testing.T) {
	var got map[string]any
	require.NoError(t, DecodeFencedJSON(`{"ok":true}`, &got))
	assert.Equal(t, true, got["ok"])
}

func TestDecodeFencedJSON_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose", "The image shows a cat."},
		{"broken json", "```json\n{\"description\": \n```"},
		{"other fence", "```\n{\"a\":1}\n```"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			err := DecodeFencedJSON(tt.text, &got)
			require.Error(t, err)

			var parseErr *entities.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, StripFence(tt.text), parseErr.Payload)
		})
	}
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, "plain", StripFence("plain"))
}
