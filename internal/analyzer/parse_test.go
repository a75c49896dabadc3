package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadousow/clipsentry/internal/analysis"
)

const validReportJSON = `{
	"summary": "A commentator criticizes rising fuel prices in Dakar.",
	"key_points": ["fuel prices doubled", "calls for government response"],
	"sentiment": "negative",
	"topics": ["economy", "politics"],
	"risk_flags": [],
	"credibility_score": 72,
	"misinformation_flags": [],
	"content_type": "opinion",
	"detected_languages": ["fr", "wo"],
	"hate_speech": false,
	"violence_incitation": false,
	"risk_level": "low",
	"regional_context": {
		"political_content": true,
		"tribal_references": false,
		"economic_concerns": true,
		"security_threats": false,
		"regional_references": ["Dakar"]
	},
	"linguistic_profile": {
		"french": true,
		"arabic": false,
		"local_language": true,
		"mixed_language": true
	}
}`

func TestExtractFirstJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			in:   `{"a":1}`,
			want: `{"a":1}`,
			ok:   true,
		},
		{
			name: "prose around the object",
			in:   "Here is the analysis:\n{\"a\":1}\nLet me know if you need more.",
			want: `{"a":1}`,
			ok:   true,
		},
		{
			name: "code fence",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
			ok:   true,
		},
		{
			name: "nested objects",
			in:   `{"a":{"b":2}}`,
			want: `{"a":{"b":2}}`,
			ok:   true,
		},
		{
			name: "braces inside strings",
			in:   `{"a":"}{","b":1}`,
			want: `{"a":"}{","b":1}`,
			ok:   true,
		},
		{
			name: "escaped quote inside string",
			in:   `{"a":"he said \"}\"","b":1}`,
			want: `{"a":"he said \"}\"","b":1}`,
			ok:   true,
		},
		{
			name: "first of two objects",
			in:   `{"a":1} {"b":2}`,
			want: `{"a":1}`,
			ok:   true,
		},
		{
			name: "no object",
			in:   "the model refused to answer",
			ok:   false,
		},
		{
			name: "unbalanced",
			in:   `{"a":1`,
			ok:   false,
		},
		{
			name: "empty",
			in:   "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractFirstJSONObject(tc.in)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseReportValid(t *testing.T) {
	report, err := ParseReport(context.Background(), "Sure, here it is:\n"+validReportJSON)
	require.NoError(t, err)
	assert.Equal(t, "negative", report.Sentiment)
	assert.Equal(t, "low", report.RiskLevel)
	require.NotNil(t, report.CredibilityScore)
	assert.Equal(t, float64(72), *report.CredibilityScore)
	require.NotNil(t, report.HateSpeech)
	assert.False(t, *report.HateSpeech)
	require.NotNil(t, report.ViolenceIncitation)
	assert.False(t, *report.ViolenceIncitation)
	assert.True(t, report.RegionalContext.PoliticalContent)
	assert.True(t, report.LinguisticProfile.MixedLanguage)
}

// A zero-valued score or flag must be distinguishable from an absent one:
// a response omitting any of them is a parse failure, never a default.
func TestParseReportOmittedScoreAndFlags(t *testing.T) {
	base := `{
		"summary": "x",
		"key_points": ["k"],
		"sentiment": "neutral",
		"topics": ["t"],
		"risk_flags": [],
		"misinformation_flags": [],
		"content_type": "opinion",
		"detected_languages": ["fr"],
		"risk_level": "low",
		"regional_context": {"political_content": true, "regional_references": ["Dakar"]},
		"linguistic_profile": {"french": true}
		%s
	}`

	cases := []struct {
		name  string
		extra string
	}{
		{name: "all three omitted", extra: ""},
		{name: "score omitted", extra: `,"hate_speech": false, "violence_incitation": false`},
		{name: "hate speech omitted", extra: `,"credibility_score": 50, "violence_incitation": false`},
		{name: "violence incitation omitted", extra: `,"credibility_score": 50, "hate_speech": false`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseReport(context.Background(), fmt.Sprintf(base, tc.extra))
			assert.ErrorIs(t, err, analysis.ErrAnalysisFailed)
		})
	}

	// The same payload with all three present parses cleanly.
	report, err := ParseReport(context.Background(),
		fmt.Sprintf(base, `,"credibility_score": 0, "hate_speech": false, "violence_incitation": false`))
	require.NoError(t, err)
	require.NotNil(t, report.CredibilityScore)
	assert.Equal(t, float64(0), *report.CredibilityScore)
}

func TestParseReportNoJSON(t *testing.T) {
	_, err := ParseReport(context.Background(), "I cannot analyze this video.")
	assert.ErrorIs(t, err, analysis.ErrAnalysisFailed)
}

func TestParseReportMalformedJSON(t *testing.T) {
	_, err := ParseReport(context.Background(), `{"summary": "x", "credibility_score": "high"}`)
	assert.ErrorIs(t, err, analysis.ErrAnalysisFailed)
}

func TestParseReportMissingRequiredFields(t *testing.T) {
	_, err := ParseReport(context.Background(), `{"summary": "only a summary"}`)
	assert.ErrorIs(t, err, analysis.ErrAnalysisFailed)
}

func TestParseReportInvalidEnumValues(t *testing.T) {
	_, err := ParseReport(context.Background(), `{
		"summary": "x",
		"key_points": ["k"],
		"sentiment": "furious",
		"topics": ["t"],
		"credibility_score": 50,
		"content_type": "opinion",
		"detected_languages": ["fr"],
		"risk_level": "low"
	}`)
	assert.ErrorIs(t, err, analysis.ErrAnalysisFailed)
}
