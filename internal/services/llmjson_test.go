package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	text := "Here is the analysis:\n```json\n{\"score\": 80}\n```\nHope that helps!"

	extracted, ok := ExtractJSON(text)
	require.True(t, ok)
	assert.JSONEq(t, `{"score": 80}`, extracted)
}

func TestExtractJSONFencedBlockWithoutLanguage(t *testing.T) {
	text := "```\n{\"score\": 80}\n```"

	extracted, ok := ExtractJSON(text)
	require.True(t, ok)
	assert.JSONEq(t, `{"score": 80}`, extracted)
}

func TestExtractJSONObjectSpanInProse(t *testing.T) {
	text := `Sure! The result is {"verdict": "Strong Match", "nested": {"x": 1}} as requested.`

	extracted, ok := ExtractJSON(text)
	require.True(t, ok)
	assert.JSONEq(t, `{"verdict": "Strong Match", "nested": {"x": 1}}`, extracted)
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	text := `prefix {"note": "uses { and } inside", "ok": true} suffix`

	extracted, ok := ExtractJSON(text)
	require.True(t, ok)
	assert.JSONEq(t, `{"note": "uses { and } inside", "ok": true}`, extracted)
}

func TestExtractJSONWholeResponse(t *testing.T) {
	extracted, ok := ExtractJSON(`  {"plain": true}  `)
	require.True(t, ok)
	assert.JSONEq(t, `{"plain": true}`, extracted)
}

func TestExtractJSONFailure(t *testing.T) {
	_, ok := ExtractJSON("no json here at all")
	assert.False(t, ok)

	_, ok = ExtractJSON("{broken: json")
	assert.False(t, ok)
}

func TestParseObject(t *testing.T) {
	var target struct {
		Score float64 `json:"score"`
	}

	err := ParseObject("```json\n{\"score\": 42}\n```", &target)
	require.NoError(t, err)
	assert.Equal(t, 42.0, target.Score)
}

func TestParseObjectMalformed(t *testing.T) {
	var target map[string]interface{}

	err := ParseObject("not json", &target)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
