package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeItems parses a JSON array or JSON Lines of objects. Array elements
// that are not objects are ignored. At most limit items are returned when
// limit is positive.
func decodeItems(data []byte, limit int) ([]map[string]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var values []any
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		items := make([]map[string]any, 0, len(values))
		for _, v := range values {
			if m, ok := v.(map[string]any); ok {
				items = append(items, m)
			}
			if limit > 0 && len(items) == limit {
				break
			}
		}
		return items, nil
	}

	var items []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var item map[string]any
		if err := json.Unmarshal(text, &item); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFormat, line, err)
		}
		items = append(items, item)
		if limit > 0 && len(items) == limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return items, nil
}
