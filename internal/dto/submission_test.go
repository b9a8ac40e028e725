package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketCountCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"integer", `7`, 7},
		{"quoted integer", `"12"`, 12},
		{"quoted with spaces", `" 3 "`, 3},
		{"float truncates", `4.9`, 4},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage", `"abc"`, 0},
		{"negative clamps", `-5`, 0},
		{"quoted negative clamps", `"-5"`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var count TicketCount
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &count))
			assert.Equal(t, tc.want, count.Int())
		})
	}
}

func TestDailySaleInputDecodesMixedTypes(t *testing.T) {
	payload := `{"brandName":"Sasiri","monday":10,"tuesday":"5","wednesday":null,"thursday":"junk"}`

	var input DailySaleInput
	require.NoError(t, json.Unmarshal([]byte(payload), &input))
	assert.Equal(t, "Sasiri", input.BrandName)
	assert.Equal(t, 10, input.Monday.Int())
	assert.Equal(t, 5, input.Tuesday.Int())
	assert.Equal(t, 0, input.Wednesday.Int())
	assert.Equal(t, 0, input.Thursday.Int())
}

func TestSubmissionRequestDraftDefaultsTrue(t *testing.T) {
	var req SubmissionRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.True(t, req.Draft())

	require.NoError(t, json.Unmarshal([]byte(`{"isDraft":false}`), &req))
	assert.False(t, req.Draft())
}
