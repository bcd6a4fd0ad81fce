package model

// ValidityResult is the outcome of the product-name plausibility heuristic
type ValidityResult struct {
	IsValid bool     `json:"is_valid"`
	Score   int      `json:"score"`   // Signed, can be negative
	Reasons []string `json:"reasons"` // One entry per signal that fired, in check order
}

// Mention is a validated, source-attributed product reference ready for ranking
type Mention struct {
	Product        string     `json:"product"`
	Engagement     Engagement `json:"engagement"`
	Sentiment      float64    `json:"sentiment"`
	Source         string     `json:"source"`
	Description    string     `json:"description"` // Raw excerpt, before synthesis
	ValidityScore  int        `json:"validity_score"`
	ValidityReason string     `json:"validity_reason"`
	ProductType    string     `json:"product_type"`
	Attributes     []string   `json:"attributes"`
	Title          string     `json:"title,omitempty"` // Video stream only
	RankScore      float64    `json:"rank_score"`      // Zero until ranked
}
