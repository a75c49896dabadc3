package models

// AnalysisReport is the terminal result of content analysis. Every field
// tagged required must be present in the model output; a missing field is
// a parse failure, not a tolerated default. Score and boolean fields are
// pointers so an omitted field is distinguishable from a legitimate zero.
type AnalysisReport struct {
	Summary             string            `json:"summary" validate:"required"`
	KeyPoints           []string          `json:"key_points" validate:"required"`
	Sentiment           string            `json:"sentiment" validate:"required,oneof=positive neutral negative mixed"`
	Topics              []string          `json:"topics" validate:"required"`
	RiskFlags           []string          `json:"risk_flags" validate:"required"`
	CredibilityScore    *float64          `json:"credibility_score" validate:"required,min=0,max=100"`
	MisinformationFlags []string          `json:"misinformation_flags" validate:"required"`
	ContentType         string            `json:"content_type" validate:"required"`
	DetectedLanguages   []string          `json:"detected_languages" validate:"required"`
	HateSpeech          *bool             `json:"hate_speech" validate:"required"`
	ViolenceIncitation  *bool             `json:"violence_incitation" validate:"required"`
	RiskLevel           string            `json:"risk_level" validate:"required,oneof=low medium high"`
	RegionalContext     RegionalContext   `json:"regional_context" validate:"required"`
	LinguisticProfile   LinguisticProfile `json:"linguistic_profile" validate:"required"`
}

// RegionalContext captures the region specific dimensions of the rubric.
type RegionalContext struct {
	PoliticalContent   bool     `json:"political_content"`
	TribalReferences   bool     `json:"tribal_references"`
	EconomicConcerns   bool     `json:"economic_concerns"`
	SecurityThreats    bool     `json:"security_threats"`
	RegionalReferences []string `json:"regional_references" validate:"required"`
}

// LinguisticProfile describes which languages appear in the content.
type LinguisticProfile struct {
	French        bool `json:"french"`
	Arabic        bool `json:"arabic"`
	LocalLanguage bool `json:"local_language"`
	MixedLanguage bool `json:"mixed_language"`
}

// ShortSummary derives the cheap polling summary from a full report. The
// report must have passed schema validation, so the pointer fields are set.
func (r *AnalysisReport) ShortSummary() *JobSummary {
	return &JobSummary{
		ContentType:        r.ContentType,
		Sentiment:          r.Sentiment,
		Languages:          r.DetectedLanguages,
		HateSpeech:         *r.HateSpeech,
		ViolenceIncitation: *r.ViolenceIncitation,
		RiskLevel:          r.RiskLevel,
		Summary:            r.Summary,
	}
}
