package domain

// AnalysisType tells the client whether Data holds a structured record
type AnalysisType string

const (
	AnalysisTypeJSON AnalysisType = "json"
	AnalysisTypeText AnalysisType = "text"
)

// Analysis is the classified outcome of one image analysis.
// Data is the extracted document for AnalysisTypeJSON and the raw
// completion string for AnalysisTypeText.
type Analysis struct {
	Type AnalysisType `json:"type"`
	Data any          `json:"data"`
}

// TextAnalysis wraps a raw completion as the fallback payload
func TextAnalysis(text string) *Analysis {
	return &Analysis{Type: AnalysisTypeText, Data: text}
}
