package questiongen

import "github.com/abhisek/adaptiquiz/internal/llm"

// QuestionSchema is the structured output requested from the model.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "One multiple-choice quiz question with a single correct option",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the player",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 distinct answer options",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The text of the correct option, copied exactly from options",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two sentences on why the answer is correct",
			},
		},
		"required":             []any{"question", "options", "correct_answer", "explanation"},
		"additionalProperties": false,
	},
}

// output is the decoded model reply.
type output struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}
