package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepstack/packman/pkg/model"
)

func validManifest() *model.Manifest {
	return &model.Manifest{
		ID:            "biology-101",
		Version:       "1.2.0",
		Name:          "Biology Fundamentals",
		Description:   "Core biology question bank",
		Author:        "PrepStack Content Team",
		MinAppVersion: "2.0.0",
		Checksum:      strings.Repeat("ab", 32),
		Signature:     "c2lnbmF0dXJl",
		CreatedAt:     1700000000000,
		Files: model.ManifestFiles{
			Questions:     "content/questions.json",
			ExamTemplates: "content/templates.json",
			Tips:          "content/tips.json",
		},
		Metadata: model.ManifestMetadata{
			TotalQuestions:     2,
			Topics:             []string{"cells"},
			SupportedLanguages: []string{"en", "pt-BR"},
		},
	}
}

func validQuestion(id string) model.Question {
	return model.Question{
		ID:         id,
		Type:       model.QuestionTypeSingle,
		Stem:       "Which organelle produces most of the cell's ATP?",
		TopicIDs:   []string{"cells"},
		Difficulty: model.DifficultyMed,
		Choices: []model.Choice{
			{ID: "a", Text: "Mitochondrion"},
			{ID: "b", Text: "Ribosome"},
		},
		Correct: []string{"a"},
	}
}

func validTemplate(id string) model.ExamTemplate {
	return model.ExamTemplate{
		ID:              id,
		Name:            "Midterm Practice",
		DurationMinutes: 90,
		Sections: []model.TemplateSection{
			{
				TopicIDs:      []string{"cells"},
				Count:         10,
				DifficultyMix: &model.DifficultyMix{Easy: 0.3, Med: 0.5, Hard: 0.2},
			},
		},
	}
}

func validTip(id string) model.Tip {
	return model.Tip{
		ID:       id,
		TopicIDs: []string{"cells"},
		Title:    "Remember the powerhouse",
		Body:     "Mitochondria questions almost always hinge on ATP production.",
	}
}

func TestValidateManifest_Valid(t *testing.T) {
	result := NewValidator().ValidateManifest(validManifest())
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateManifest_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *model.Manifest)
		field   string
		message string
	}{
		{
			name:   "missing id",
			mutate: func(m *model.Manifest) { m.ID = "" },
			field:  "id",
		},
		{
			name:   "id with illegal characters",
			mutate: func(m *model.Manifest) { m.ID = "bad pack!" },
			field:  "id",
		},
		{
			name:   "version not semver",
			mutate: func(m *model.Manifest) { m.Version = "1.2" },
			field:  "version",
		},
		{
			name:   "checksum wrong length",
			mutate: func(m *model.Manifest) { m.Checksum = "abcd" },
			field:  "checksum",
		},
		{
			name:   "missing questions file",
			mutate: func(m *model.Manifest) { m.Files.Questions = "" },
			field:  "files.questions",
		},
		{
			name:   "invalid language tag",
			mutate: func(m *model.Manifest) { m.Metadata.SupportedLanguages = []string{"english"} },
			field:  "metadata.supportedLanguages[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifest := validManifest()
			tt.mutate(manifest)

			result := NewValidator().ValidateManifest(manifest)
			require.False(t, result.IsValid)

			found := false
			for _, issue := range result.Errors {
				if strings.Contains(issue.Field, tt.field) {
					found = true
				}
			}
			assert.True(t, found, "expected an error mentioning %q, got %v", tt.field, result.Errors)
		})
	}
}

func TestValidateManifest_NegativeQuestionCountWarns(t *testing.T) {
	manifest := validManifest()
	manifest.Metadata.TotalQuestions = 0

	result := NewValidator().ValidateManifest(manifest)
	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "not positive")
}

func TestValidateManifest_Nil(t *testing.T) {
	result := NewValidator().ValidateManifest(nil)
	assert.False(t, result.IsValid)
}

func TestValidateQuestions_Valid(t *testing.T) {
	questions := []model.Question{validQuestion("q1"), validQuestion("q2")}
	result := NewValidator().ValidateQuestions(questions)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestValidateQuestions_DuplicateID(t *testing.T) {
	questions := []model.Question{validQuestion("q1"), validQuestion("q1")}
	result := NewValidator().ValidateQuestions(questions)

	require.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, `duplicate question id "q1"`)
	assert.Contains(t, result.Errors[0].Message, "index 0")
	assert.Equal(t, "[1].id", result.Errors[0].Field)
}

func TestValidateQuestions_AnswerRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(q *model.Question)
		wantError string
		wantWarn  string
	}{
		{
			name:      "single with one choice",
			mutate:    func(q *model.Question) { q.Choices = q.Choices[:1] },
			wantError: "at least 2 choices",
		},
		{
			name:      "multi without correct answers",
			mutate:    func(q *model.Question) { q.Type = model.QuestionTypeMulti; q.Correct = nil },
			wantError: "at least one correct answer",
		},
		{
			name:     "single with two correct answers warns",
			mutate:   func(q *model.Question) { q.Correct = []string{"a", "b"} },
			wantWarn: "declares 2 correct answers",
		},
		{
			name: "order with short correctOrder",
			mutate: func(q *model.Question) {
				q.Type = model.QuestionTypeOrder
				q.Choices = nil
				q.Correct = nil
				q.CorrectOrder = []string{"a"}
			},
			wantError: "at least 2 entries",
		},
		{
			name:     "non-image exhibit warns",
			mutate:   func(q *model.Question) { q.Exhibits = []string{"diagram.pdf"} },
			wantWarn: "image file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion("q1")
			tt.mutate(&q)

			result := NewValidator().ValidateQuestions([]model.Question{q})
			if tt.wantError != "" {
				require.False(t, result.IsValid)
				assert.Contains(t, joinMessages(result.Errors), tt.wantError)
			} else {
				assert.True(t, result.IsValid)
			}
			if tt.wantWarn != "" {
				assert.Contains(t, joinMessages(result.Warnings), tt.wantWarn)
			}
		})
	}
}

func TestValidateQuestions_SchemaErrors(t *testing.T) {
	q := validQuestion("q1")
	q.Stem = "too short"
	q.Difficulty = "impossible"
	q.TopicIDs = nil

	result := NewValidator().ValidateQuestions([]model.Question{q})
	require.False(t, result.IsValid)

	messages := joinMessages(result.Errors)
	assert.Contains(t, messages, "at least 10 characters")
	assert.Contains(t, messages, "one of")
}

func TestValidateExamTemplates_DifficultyMix(t *testing.T) {
	tests := []struct {
		name     string
		mix      model.DifficultyMix
		wantWarn bool
	}{
		{name: "sums to one", mix: model.DifficultyMix{Easy: 0.3, Med: 0.5, Hard: 0.2}, wantWarn: false},
		{name: "sums to 0.99", mix: model.DifficultyMix{Easy: 0.3, Med: 0.5, Hard: 0.19}, wantWarn: true},
		{name: "float noise within tolerance", mix: model.DifficultyMix{Easy: 0.1, Med: 0.2, Hard: 0.7}, wantWarn: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := validTemplate("t1")
			tpl.Sections[0].DifficultyMix = &tt.mix

			result := NewValidator().ValidateExamTemplates([]model.ExamTemplate{tpl})
			assert.True(t, result.IsValid)
			if tt.wantWarn {
				require.NotEmpty(t, result.Warnings)
				assert.Contains(t, result.Warnings[0].Message, "expected 1.0")
			} else {
				assert.Empty(t, result.Warnings)
			}
		})
	}
}

func TestValidateExamTemplates_Errors(t *testing.T) {
	tpl := validTemplate("t1")
	tpl.DurationMinutes = 0
	tpl.Sections = nil

	result := NewValidator().ValidateExamTemplates([]model.ExamTemplate{tpl, validTemplate("t1")})
	require.False(t, result.IsValid)

	messages := joinMessages(result.Errors)
	assert.Contains(t, messages, "must be >= 1")
	assert.Contains(t, messages, "at least 1 items")
	assert.Contains(t, messages, `duplicate template id "t1"`)
}

func TestValidateTips(t *testing.T) {
	short := validTip("tip2")
	short.Body = "too short"

	result := NewValidator().ValidateTips([]model.Tip{validTip("tip1"), short, validTip("tip1")})
	require.False(t, result.IsValid)

	messages := joinMessages(result.Errors)
	assert.Contains(t, messages, "at least 10 characters")
	assert.Contains(t, messages, `duplicate tip id "tip1"`)
}

func TestValidateEntirePack(t *testing.T) {
	manifest := validManifest()
	questions := []model.Question{validQuestion("q1"), validQuestion("q2")}
	templates := []model.ExamTemplate{validTemplate("t1")}
	tips := []model.Tip{validTip("tip1")}

	result := NewValidator().ValidateEntirePack(manifest, questions, templates, tips)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestValidateEntirePack_CountMismatchWarns(t *testing.T) {
	manifest := validManifest()
	manifest.Metadata.TotalQuestions = 5

	result := NewValidator().ValidateEntirePack(manifest, []model.Question{validQuestion("q1")}, []model.ExamTemplate{validTemplate("t1")}, []model.Tip{validTip("tip1")})
	assert.True(t, result.IsValid)
	assert.Contains(t, joinMessages(result.Warnings), "declares 5 questions but pack contains 1")
}

func TestValidateEntirePack_MergesErrors(t *testing.T) {
	manifest := validManifest()
	manifest.Version = "not-semver"
	q := validQuestion("q1")
	q.Choices = nil
	q.Correct = nil

	result := NewValidator().ValidateEntirePack(manifest, []model.Question{q}, nil, nil)
	require.False(t, result.IsValid)
	assert.GreaterOrEqual(t, len(result.Errors), 3)
}

func joinMessages(issues []model.Issue) string {
	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString(issue.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}
