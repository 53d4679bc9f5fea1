package domain

// RetrievedChunk is one ranked retrieval hit for a query.
type RetrievedChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// Answer is the grounded response to a question. Found reports whether the
// answer was actually grounded in retrieved context: it is false both when
// retrieval came back empty and when the model signalled that the context
// does not contain the answer. Callers must branch on Found, not on the
// wording of Text.
type Answer struct {
	Text    string           `json:"text"`
	Found   bool             `json:"found"`
	Sources []RetrievedChunk `json:"sources"`
}
