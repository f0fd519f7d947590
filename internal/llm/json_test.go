package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw json object",
			input:    `{"suggestions": []}`,
			expected: `{"suggestions": []}`,
		},
		{
			name:     "json with leading text",
			input:    `Here is the response: {"suggestions": [{"date": "2026-09-08"}]}`,
			expected: `{"suggestions": [{"date": "2026-09-08"}]}`,
		},
		{
			name:     "json in code block",
			input:    "```json\n{\"suggestions\": []}\n```",
			expected: `{"suggestions": []}`,
		},
		{
			name:     "json in plain code block",
			input:    "```\n{\"suggestions\": []}\n```",
			expected: `{"suggestions": []}`,
		},
		{
			name:     "json array",
			input:    `[{"id": 1}, {"id": 2}]`,
			expected: `[{"id": 1}, {"id": 2}]`,
		},
		{
			name:     "nested json",
			input:    `{"outer": {"inner": {"deep": true}}}`,
			expected: `{"outer": {"inner": {"deep": true}}}`,
		},
		{
			name: "markdown with explanation",
			input: `Here are my picks:

` + "```json" + `
{
  "suggestions": [
    {"date": "2026-09-08", "time": "10:00"}
  ]
}
` + "```" + `

Let me know if you need anything else.`,
			expected: `{
  "suggestions": [
    {"date": "2026-09-08", "time": "10:00"}
  ]
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}
