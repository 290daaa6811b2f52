package tudu

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// EncodeCursor encodes the id of the last returned task into an opaque
// pagination cursor.
func EncodeCursor(id int64) string {
	return base64.URLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeCursor decodes a pagination cursor back to a task id. An empty
// cursor decodes to zero, meaning start from the beginning.
func DecodeCursor(cursor string) (int64, error) {
	if cursor == "" {
		return 0, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: invalid encoding: %w", err)
	}

	id, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: invalid id: %w", err)
	}

	if id <= 0 {
		return 0, fmt.Errorf("decode cursor: id out of range")
	}

	return id, nil
}
