package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripJSONFence_FencedBlock(t *testing.T) {
	input := "```json\n{\"body\": \"text\"}\n```"
	assert.Equal(t, `{"body": "text"}`, StripJSONFence(input))
}

func TestStripJSONFence_BareFence(t *testing.T) {
	input := "```\n{\"body\": \"text\"}\n```"
	assert.Equal(t, `{"body": "text"}`, StripJSONFence(input))
}

func TestStripJSONFence_PlainJSONUntouched(t *testing.T) {
	input := `{"body": "text"}`
	assert.Equal(t, input, StripJSONFence(input))
}

func TestStripJSONFence_Whitespace(t *testing.T) {
	assert.Equal(t, `{}`, StripJSONFence("  {}  \n"))
}
