package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Document is a unit of retrievable content with optional metadata.
// Score is populated by a vector store when the document is returned
// from a similarity search.
type Document struct {
	ID       string         `json:"id,omitempty"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitzero"`
	Score    float64        `json:"score,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewDocument creates a document from text content
func NewDocument(content string) Document {
	return Document{Content: content}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (d Document) String() string {
	return stringify(d)
}
