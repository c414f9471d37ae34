package shared

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidCursor is returned when a pagination cursor fails structural,
// encoding, or semantic validation. Callers map it to a 400 response; an
// invalid cursor must never silently fall back to the first page.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the keyset position "the last item already seen": the creation
// timestamp of the last row on a page plus its id as a stable tiebreaker.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// idPattern is a conservative allow-list for the id half of a cursor.
// 2..64 chars of [A-Za-z0-9_-] covers uuid/cuid/hex style ids while bounding
// injection risk.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{1,63}$`)

// EncodeCursor serializes the cursor as base64("RFC3339Nano|id").
// The timestamp is normalized to UTC so encoding is timezone-unambiguous and
// round-trips exactly, including sub-second precision.
func EncodeCursor(cur Cursor) string {
	payload := cur.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + cur.ID
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// DecodeCursor reverses EncodeCursor. It fails with ErrInvalidCursor when the
// token is not valid base64, the payload does not split into exactly two
// parts on '|', the timestamp does not parse, or the id violates the
// allow-list.
func DecodeCursor(token string) (Cursor, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Cursor{}, ErrInvalidCursor
	}

	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	parts := strings.Split(string(decoded), "|")
	if len(parts) != 2 {
		return Cursor{}, ErrInvalidCursor
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	if !idPattern.MatchString(parts[1]) {
		return Cursor{}, ErrInvalidCursor
	}

	return Cursor{CreatedAt: createdAt, ID: parts[1]}, nil
}
