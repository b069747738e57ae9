package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain object",
			input: `{"name": "Jane", "skill": ["Go"]}`,
			want:  `{"name": "Jane", "skill": ["Go"]}`,
		},
		{
			name:  "markdown fence",
			input: "```json\n{\"email\": \"a@x.com\"}\n```",
			want:  `{"email": "a@x.com"}`,
		},
		{
			name:  "think tags and prose",
			input: "<think>\nthe candidate {maybe}\n</think>\nHere you go: {\"company\": \"Acme\"} hope this helps",
			want:  `{"company": "Acme"}`,
		},
		{
			name:  "braces inside strings",
			input: `{"short_description": "uses {templates} and \"quotes\""}`,
			want:  `{"short_description": "uses {templates} and \"quotes\""}`,
		},
		{
			name:  "invalid first candidate",
			input: `see {not json} then {"name": "Jane"}`,
			want:  `{"name": "Jane"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	for _, input := range []string{"", "I could not read the resume.", `["Go", "SQL"]`, `{"name": "unterminated"`} {
		_, err := ExtractJSON(input)
		assert.Error(t, err, "input %q", input)
	}
}
