package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"plain", `{"a":1}`, `{"a":1}`, true},
		{"markdown fence", "Here:\n```json\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`, true},
		{"largest wins", `{"x":1} and {"y":{"z":[1,2,3]}}`, `{"y":{"z":[1,2,3]}}`, true},
		{"unquoted keys", `{sugar: {healthCategory: "RED"}}`, `{"sugar": {"healthCategory": "RED"}}`, true},
		{"no object", "nothing to see", "", false},
		{"broken", `{"a": `, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(`{"a":1,"b":2}`, &v))
	assert.Equal(t, 1, v.A)

	assert.Error(t, ParseJSONStrict(`{"a":1,"b":2}`, &v))
	assert.Error(t, ParseJSON(`{"a":1} {"a":2}`, &v))
}
