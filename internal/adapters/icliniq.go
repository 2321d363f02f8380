package adapters

import "github.com/ppiankov/medprep/internal/model"

// ICliniqInstruction is the prompt attached to iCliniq records
const ICliniqInstruction = "act as a virtual medical assistant; analyze symptoms and suggest clinical conduct based on protocols"

// NewICliniqAdapter reads "input" and the ChatDoctor answer. The dataset also
// carries answer_icliniq and answer_chatgpt; those are ignored.
func NewICliniqAdapter(cleaner Cleaner) Adapter {
	return &fieldAdapter{
		name:        model.SourceICliniq,
		instruction: ICliniqInstruction,
		inputField:  "input",
		outputField: "answer_chatdoctor",
		cleaner:     cleaner,
	}
}
