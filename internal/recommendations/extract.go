package recommendations

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// arrayStart matches the opening of an array whose first object begins with a "category" key.
var arrayStart = regexp.MustCompile(`\[\s*\{\s*"category"`)

// ExtractRecommendations reads the first JSON value starting at the recommendation array, or at
// offset 0 when no such array is found. Text after the value, such as a closing code fence, is ignored.
func ExtractRecommendations(content string) ([]Recommendation, error) {
	start := 0
	if loc := arrayStart.FindStringIndex(content); loc != nil {
		start = loc[0]
	}

	dec := json.NewDecoder(strings.NewReader(content[start:]))
	var out []Recommendation
	if err := dec.Decode(&out); err != nil {
		return nil, &MalformedResponseError{Content: content, Err: err}
	}
	if out == nil {
		return nil, &MalformedResponseError{Content: content, Err: errors.New("expected a JSON array")}
	}
	return out, nil
}
