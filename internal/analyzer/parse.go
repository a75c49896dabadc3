package analyzer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/models"
	"github.com/mamadousow/clipsentry/pkg/utils"
)

// ExtractFirstJSONObject returns the first balanced top-level JSON object in
// s. Models wrap their answer in prose or code fences often enough that a
// plain Unmarshal of the whole response is not an option.
func ExtractFirstJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}
	return "", false
}

// ParseReport turns a raw model response into a schema complete report. A
// response with no JSON object, malformed JSON, or any missing required
// field is an analysis failure, never retried and never defaulted.
func ParseReport(ctx context.Context, raw string) (*models.AnalysisReport, error) {
	obj, ok := ExtractFirstJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: model response contains no JSON object", analysis.ErrAnalysisFailed)
	}

	report := &models.AnalysisReport{}
	if err := json.Unmarshal([]byte(obj), report); err != nil {
		return nil, fmt.Errorf("%w: model returned malformed JSON", analysis.ErrAnalysisFailed)
	}

	if err := utils.ValidateStruct(ctx, report); err != nil {
		return nil, fmt.Errorf("%w: model response is missing required fields", analysis.ErrAnalysisFailed)
	}
	return report, nil
}
