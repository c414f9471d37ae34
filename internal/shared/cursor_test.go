package shared

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []Cursor{
		{CreatedAt: time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC), ID: uuid.New().String()},
		{CreatedAt: time.Date(2025, 9, 6, 12, 0, 0, 123456789, time.UTC), ID: "m2"},
		{CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 678000000, time.UTC), ID: "abc_DEF-123"},
		// Non-UTC input normalizes to UTC but must denote the same instant
		{CreatedAt: time.Date(2025, 9, 6, 14, 0, 0, 500000000, time.FixedZone("CEST", 2*3600)), ID: "m1"},
	}

	for _, c := range cases {
		token := EncodeCursor(c)

		decoded, err := DecodeCursor(token)
		require.NoError(t, err)
		assert.True(t, decoded.CreatedAt.Equal(c.CreatedAt), "instant must round-trip exactly")
		assert.Equal(t, c.ID, decoded.ID)
	}
}

func TestEncodeCursor_IsOpaqueBase64(t *testing.T) {
	token := EncodeCursor(Cursor{CreatedAt: time.Now().UTC(), ID: "m1"})

	payload, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "|")
}

func TestDecodeCursor_Rejects(t *testing.T) {
	b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	cases := map[string]string{
		"empty":               "",
		"whitespace only":     "   ",
		"not base64":          "not-base64!!",
		"no delimiter":        b64("2025-09-06T12:00:00Z"),
		"too many delimiters": b64("2025-09-06T12:00:00Z|a|b"),
		"bad timestamp":       b64("yesterday|abcdef1234"),
		"empty timestamp":     b64("|abcdef1234"),
		"id too short":        b64("2025-09-06T12:00:00Z|a"),
		"id bad charset":      b64("2025-09-06T12:00:00Z|abc$def"),
		"id leading dash":     b64("2025-09-06T12:00:00Z|-abcdef"),
		"empty id":            b64("2025-09-06T12:00:00Z|"),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCursor(token)
			assert.ErrorIs(t, err, ErrInvalidCursor)
		})
	}
}

func TestDecodeCursor_IDLengthBounds(t *testing.T) {
	ts := "2025-09-06T12:00:00Z"
	b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	longest := make([]byte, 64)
	for i := range longest {
		longest[i] = 'a'
	}

	_, err := DecodeCursor(b64(ts + "|" + string(longest)))
	assert.NoError(t, err, "64-char id is within the allow-list")

	_, err = DecodeCursor(b64(ts + "|" + string(longest) + "a"))
	assert.ErrorIs(t, err, ErrInvalidCursor, "65-char id exceeds the allow-list")
}
