package model

// RawRecord is one element of a source JSON array, as decoded
// Fields are looked up by name; absent or non-string values read as ""
type RawRecord map[string]any

// Field returns the string value stored under key, or "" when the key is
// missing, null, or not a string
func (r RawRecord) Field(key string) string {
	if r == nil {
		return ""
	}
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// CanonicalRecord is the unified instruction-tuning record every source is
// normalized into. Field order here is the serialized order.
type CanonicalRecord struct {
	Instruction string `json:"instruction"` // Fixed prompt chosen per source
	Input       string `json:"input"`       // Sanitized query text
	Output      string `json:"output"`      // Sanitized answer text
}

// Dataset is the ordered sequence of canonical records built in one run
type Dataset []CanonicalRecord

// SourceStats describes what a single source contributed to a run
type SourceStats struct {
	ID     string `json:"id"`      // Adapter identifier (e.g., "icliniq")
	Path   string `json:"path"`    // Resolved file path
	Found  bool   `json:"found"`   // Whether the file existed
	InFile int    `json:"in_file"` // Records present in the file
	Taken  int    `json:"taken"`   // Records appended to the dataset
}
