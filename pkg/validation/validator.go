package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/prepstack/packman/pkg/model"
)

// File labels attached to validation issues.
const (
	manifestFile  = "manifest.json"
	questionsFile = "questions"
	templatesFile = "examTemplates"
	tipsFile      = "tips"
)

// difficultyMixTolerance is how far the three difficultyMix proportions may
// deviate from summing to exactly 1.0 before a warning is emitted.
const difficultyMixTolerance = 0.001

// imageExtensions are the exhibit filename extensions accepted without warning.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".webp": true, ".svg": true, ".bmp": true,
}

// Validator checks pack manifests and content items against their declared
// schemas and business rules. It holds no state and is safe for concurrent use.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateManifest checks a manifest against the manifest schema and records
// a warning when the declared question count is not positive.
func (v *Validator) ValidateManifest(manifest *model.Manifest) *model.ValidationResult {
	result := model.NewValidationResult()
	if manifest == nil {
		result.AddError(model.Issue{File: manifestFile, Field: "", Message: "manifest is missing"})
		return result
	}

	for _, is := range checkAgainstSchema(manifestSchema, manifest, "") {
		is.File = manifestFile
		result.AddError(is)
	}

	if manifest.Metadata.TotalQuestions <= 0 {
		result.AddWarning(model.Issue{
			File:    manifestFile,
			Field:   "metadata.totalQuestions",
			Message: "declared question count is not positive",
		})
	}

	return result
}

// ValidateQuestions schema-checks every question and enforces the
// type-specific business rules: duplicate ids are errors, answer cardinality
// rules depend on the question type, and non-image exhibits warn.
func (v *Validator) ValidateQuestions(items []model.Question) *model.ValidationResult {
	result := model.NewValidationResult()
	seen := make(map[string]int, len(items))

	for i, q := range items {
		path := fmt.Sprintf("[%d]", i)
		for _, is := range checkAgainstSchema(questionSchema, q, path) {
			is.File = questionsFile
			result.AddError(is)
		}

		if q.ID != "" {
			if first, dup := seen[q.ID]; dup {
				result.AddError(model.Issue{
					File:    questionsFile,
					Field:   path + ".id",
					Message: fmt.Sprintf("duplicate question id %q (first used at index %d)", q.ID, first),
				})
			} else {
				seen[q.ID] = i
			}
		}

		v.checkQuestionAnswers(result, q, path)

		for j, exhibit := range q.Exhibits {
			ext := strings.ToLower(filepath.Ext(exhibit))
			if !imageExtensions[ext] {
				result.AddWarning(model.Issue{
					File:    questionsFile,
					Field:   fmt.Sprintf("%s.exhibits[%d]", path, j),
					Message: fmt.Sprintf("exhibit %q does not have an image file extension", exhibit),
				})
			}
		}
	}

	return result
}

func (v *Validator) checkQuestionAnswers(result *model.ValidationResult, q model.Question, path string) {
	switch q.Type {
	case model.QuestionTypeSingle, model.QuestionTypeMulti, model.QuestionTypeScenario:
		if len(q.Choices) < 2 {
			result.AddError(model.Issue{
				File:    questionsFile,
				Field:   path + ".choices",
				Message: fmt.Sprintf("%s questions need at least 2 choices, got %d", q.Type, len(q.Choices)),
			})
		}
		if len(q.Correct) == 0 {
			result.AddError(model.Issue{
				File:    questionsFile,
				Field:   path + ".correct",
				Message: fmt.Sprintf("%s questions need at least one correct answer", q.Type),
			})
		}
		if q.Type == model.QuestionTypeSingle && len(q.Correct) > 1 {
			result.AddWarning(model.Issue{
				File:    questionsFile,
				Field:   path + ".correct",
				Message: fmt.Sprintf("single-answer question declares %d correct answers", len(q.Correct)),
			})
		}
	case model.QuestionTypeOrder:
		if len(q.CorrectOrder) < 2 {
			result.AddError(model.Issue{
				File:    questionsFile,
				Field:   path + ".correctOrder",
				Message: fmt.Sprintf("order questions need at least 2 entries in correctOrder, got %d", len(q.CorrectOrder)),
			})
		}
	}
}

// ValidateExamTemplates schema-checks every template, detects duplicate ids
// and warns when a section's difficultyMix does not sum to 1.0.
func (v *Validator) ValidateExamTemplates(items []model.ExamTemplate) *model.ValidationResult {
	result := model.NewValidationResult()
	seen := make(map[string]int, len(items))

	for i, tpl := range items {
		path := fmt.Sprintf("[%d]", i)
		for _, is := range checkAgainstSchema(examTemplateSchema, tpl, path) {
			is.File = templatesFile
			result.AddError(is)
		}

		if tpl.ID != "" {
			if first, dup := seen[tpl.ID]; dup {
				result.AddError(model.Issue{
					File:    templatesFile,
					Field:   path + ".id",
					Message: fmt.Sprintf("duplicate template id %q (first used at index %d)", tpl.ID, first),
				})
			} else {
				seen[tpl.ID] = i
			}
		}

		for j, section := range tpl.Sections {
			mix := section.DifficultyMix
			if mix == nil {
				continue
			}
			sum := mix.Easy + mix.Med + mix.Hard
			if math.Abs(sum-1.0) > difficultyMixTolerance {
				result.AddWarning(model.Issue{
					File:    templatesFile,
					Field:   fmt.Sprintf("%s.sections[%d].difficultyMix", path, j),
					Message: fmt.Sprintf("difficulty proportions sum to %.3f, expected 1.0", sum),
				})
			}
		}
	}

	return result
}

// ValidateTips schema-checks every tip and detects duplicate ids.
func (v *Validator) ValidateTips(items []model.Tip) *model.ValidationResult {
	result := model.NewValidationResult()
	seen := make(map[string]int, len(items))

	for i, tip := range items {
		path := fmt.Sprintf("[%d]", i)
		for _, is := range checkAgainstSchema(tipSchema, tip, path) {
			is.File = tipsFile
			result.AddError(is)
		}

		if tip.ID != "" {
			if first, dup := seen[tip.ID]; dup {
				result.AddError(model.Issue{
					File:    tipsFile,
					Field:   path + ".id",
					Message: fmt.Sprintf("duplicate tip id %q (first used at index %d)", tip.ID, first),
				})
			} else {
				seen[tip.ID] = i
			}
		}
	}

	return result
}

// ValidateEntirePack unions the manifest and content validations and adds the
// cross-reference checks between declared counts and actual content. Count
// mismatches are warnings only; they do not block installation.
func (v *Validator) ValidateEntirePack(manifest *model.Manifest, questions []model.Question, templates []model.ExamTemplate, tips []model.Tip) *model.ValidationResult {
	result := model.NewValidationResult()
	result.Merge(v.ValidateManifest(manifest))
	result.Merge(v.ValidateQuestions(questions))
	result.Merge(v.ValidateExamTemplates(templates))
	result.Merge(v.ValidateTips(tips))

	if manifest != nil && manifest.Metadata.TotalQuestions != len(questions) {
		result.AddWarning(model.Issue{
			File:    manifestFile,
			Field:   "metadata.totalQuestions",
			Message: fmt.Sprintf("manifest declares %d questions but pack contains %d", manifest.Metadata.TotalQuestions, len(questions)),
		})
	}

	return result
}

// checkAgainstSchema runs the generic schema walk over the JSON shape of a
// typed value. The marshal round-trip yields exactly the decoded-JSON types
// the walker expects, so one walker serves manifests and all content types.
func checkAgainstSchema(schema Schema, value any, path string) []model.Issue {
	data, err := json.Marshal(value)
	if err != nil {
		return []model.Issue{{Field: path, Message: fmt.Sprintf("value is not representable as JSON: %v", err)}}
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return []model.Issue{{Field: path, Message: fmt.Sprintf("value is not valid JSON: %v", err)}}
	}
	return Check(schema, decoded, path)
}
