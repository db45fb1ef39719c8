package gemini

// GenerateOptions controls a single generation call.
type GenerateOptions struct {
	// Temperature overrides the model default when non-nil.
	Temperature *float64
	// GroundingSearch enables retrieval-augmented generation backed by
	// web search. Responses may then carry grounding chunks.
	GroundingSearch bool
}

// Result represents a completed non-streaming generation.
type Result struct {
	// Text is the concatenated text of the first candidate.
	Text string
	// Candidates holds every candidate returned by the service,
	// including grounding metadata when search grounding was enabled.
	Candidates []Candidate
}

// generateRequest represents the Gemini generateContent request format.
type generateRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
	Tools            []Tool            `json:"tools,omitempty"`
}

// Content represents a message in the conversation.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part represents a piece of content.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig holds per-request model tuning.
type GenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

// Tool enables an optional model capability.
type Tool struct {
	GoogleSearch *GoogleSearch `json:"google_search,omitempty"`
}

// GoogleSearch enables search grounding. It has no parameters.
type GoogleSearch struct{}

// generateResponse represents the Gemini generateContent response format.
// Streaming responses use the same shape, one object per SSE data line.
type generateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate represents one generated candidate.
type Candidate struct {
	Content           Content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// GroundingMetadata carries the citations backing a grounded response.
type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks"`
}

// GroundingChunk is a single retrieved citation.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// WebSource identifies a web citation by URI and title.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}
