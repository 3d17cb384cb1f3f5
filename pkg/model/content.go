package model

// Question types supported by the exam engine.
const (
	QuestionTypeSingle   = "single"
	QuestionTypeMulti    = "multi"
	QuestionTypeScenario = "scenario"
	QuestionTypeOrder    = "order"
)

// Difficulty levels.
const (
	DifficultyEasy = "easy"
	DifficultyMed  = "med"
	DifficultyHard = "hard"
)

// Choice is a single answer option of a question.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a raw question record parsed from a pack's questions file.
type Question struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Stem         string   `json:"stem"`
	TopicIDs     []string `json:"topicIds"`
	Difficulty   string   `json:"difficulty"`
	Choices      []Choice `json:"choices,omitempty"`
	Correct      []string `json:"correct,omitempty"`
	CorrectOrder []string `json:"correctOrder,omitempty"`
	Exhibits     []string `json:"exhibits,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

// DifficultyMix declares the proportion of easy/med/hard questions a template
// section draws. The three proportions are expected to sum to 1.0.
type DifficultyMix struct {
	Easy float64 `json:"easy"`
	Med  float64 `json:"med"`
	Hard float64 `json:"hard"`
}

// TemplateSection is one section of an exam template.
type TemplateSection struct {
	TopicIDs      []string       `json:"topicIds"`
	Count         int            `json:"count"`
	DifficultyMix *DifficultyMix `json:"difficultyMix,omitempty"`
}

// ExamTemplate is a raw exam template record parsed from a pack.
type ExamTemplate struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	DurationMinutes int               `json:"durationMinutes"`
	Sections        []TemplateSection `json:"sections"`
	CalculatorRules string            `json:"calculatorRules,omitempty"`
}

// Tip is a raw study tip record parsed from a pack.
type Tip struct {
	ID                 string   `json:"id"`
	TopicIDs           []string `json:"topicIds"`
	Title              string   `json:"title"`
	Body               string   `json:"body"`
	Tags               []string `json:"tags,omitempty"`
	RelatedQuestionIDs []string `json:"relatedQuestionIds,omitempty"`
}
