package adapters

import "github.com/ppiankov/medprep/internal/model"

// HealthCareMagicInstruction is the prompt attached to HealthCareMagic records
const HealthCareMagicInstruction = "respond to the medical query professionally, informatively, and empathetically"

// NewHealthCareMagicAdapter reads the "input" and "output" fields
func NewHealthCareMagicAdapter(cleaner Cleaner) Adapter {
	return &fieldAdapter{
		name:        model.SourceHealthCareMagic,
		instruction: HealthCareMagicInstruction,
		inputField:  "input",
		outputField: "output",
		cleaner:     cleaner,
	}
}
