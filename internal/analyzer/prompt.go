package analyzer

import (
	"fmt"
	"strings"
)

// The analytical rubric is fixed: politics, security, language mix, hate
// speech and misinformation dimensions, answered as one JSON object.
const rubricTemplate = `You are a content risk analyst for short-form social video from francophone West Africa.
Analyze the content below and answer with a single JSON object, nothing else, using exactly these fields:

{
  "summary": "<2-3 sentence free-text summary>",
  "key_points": ["..."],
  "sentiment": "positive|neutral|negative|mixed",
  "topics": ["..."],
  "risk_flags": ["..."],
  "credibility_score": <0-100>,
  "misinformation_flags": ["..."],
  "content_type": "<news|opinion|entertainment|propaganda|other>",
  "detected_languages": ["..."],
  "hate_speech": <bool>,
  "violence_incitation": <bool>,
  "risk_level": "low|medium|high",
  "regional_context": {
    "political_content": <bool>,
    "tribal_references": <bool>,
    "economic_concerns": <bool>,
    "security_threats": <bool>,
    "regional_references": ["..."]
  },
  "linguistic_profile": {
    "french": <bool>,
    "arabic": <bool>,
    "local_language": <bool>,
    "mixed_language": <bool>
  }
}

Use empty arrays, never null, when a list has no entries.

Video title: %s
Channel: %s
%s`

func buildTranscriptPrompt(transcript, title, channel string) string {
	content := "Transcript:\n" + strings.TrimSpace(transcript)
	return fmt.Sprintf(rubricTemplate, title, channel, content)
}

func buildURLPrompt(title, channel string) string {
	content := "Analyze the attached video directly."
	return fmt.Sprintf(rubricTemplate, title, channel, content)
}
