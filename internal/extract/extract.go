// Package extract pulls the classification record out of free-form AI
// output. Model output is unreliable: a malformed response is a normal
// outcome here, reported through the ok result, never as an error.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/belegwerk-dev/belegwerk/internal/model"
)

// Parse locates a JSON object in raw output and decodes it into a
// DocumentRecord. The span runs greedily from the first "{" to the last "}"
// so that objects with embedded newlines or trailing chatter survive; a
// non-greedy match would stop at the first nested close brace.
func Parse(raw string) (model.DocumentRecord, bool) {
	span, ok := jsonSpan(raw)
	if !ok {
		return model.DocumentRecord{}, false
	}

	var rec model.DocumentRecord
	if err := json.Unmarshal([]byte(span), &rec); err != nil {
		return model.DocumentRecord{}, false
	}
	return rec, true
}

func jsonSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}
