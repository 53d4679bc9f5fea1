package domain

// Document is the single source text the service answers questions about.
// It is loaded once at startup and never mutated afterwards.
type Document struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

// Chunk is a contiguous segment of the document used as a retrieval unit.
// Start and End are rune offsets into the document text; Text is exactly
// that rune range, so chunks taken in Index order cover the document with
// no dropped characters.
type Chunk struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Index int    `json:"index"`
}
