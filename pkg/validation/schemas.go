package validation

import "regexp"

// Patterns shared by the declared schemas.
var (
	packIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	semverPattern   = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	checksumPattern = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)
	languagePattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
)

// manifestSchema describes manifest.json. maxAppVersion and metadata are
// optional; everything else is required.
var manifestSchema = Object{
	Required: []string{
		"id", "version", "name", "description", "author",
		"minAppVersion", "checksum", "signature", "createdAt", "files",
	},
	Properties: map[string]Schema{
		"id":            String{MinLen: 1, MaxLen: 64, Pattern: packIDPattern},
		"version":       String{Pattern: semverPattern},
		"name":          String{MinLen: 1, MaxLen: 100},
		"description":   String{MinLen: 1, MaxLen: 1000},
		"author":        String{MinLen: 1, MaxLen: 100},
		"minAppVersion": String{Pattern: semverPattern},
		"maxAppVersion": String{Pattern: semverPattern},
		"checksum":      String{Pattern: checksumPattern},
		"signature":     String{MinLen: 1},
		"createdAt":     Number{Min: Bound(0)},
		"files": Object{
			Required: []string{"questions", "examTemplates", "tips"},
			Properties: map[string]Schema{
				"questions":     String{MinLen: 1},
				"examTemplates": String{MinLen: 1},
				"tips":          String{MinLen: 1},
				"media":         Array{Items: String{MinLen: 1}},
			},
		},
		"metadata": Object{
			Properties: map[string]Schema{
				"totalQuestions":     Number{Min: Bound(0), Integer: true},
				"totalTips":          Number{Min: Bound(0), Integer: true},
				"totalTemplates":     Number{Min: Bound(0), Integer: true},
				"topics":             Array{Items: String{MinLen: 1}},
				"supportedLanguages": Array{Items: String{Pattern: languagePattern}},
			},
		},
	},
}

var questionSchema = Object{
	Required: []string{"id", "type", "stem", "topicIds", "difficulty"},
	Properties: map[string]Schema{
		"id":         String{MinLen: 1},
		"type":       String{Enum: []string{"single", "multi", "scenario", "order"}},
		"stem":       String{MinLen: 10},
		"topicIds":   Array{MinItems: 1, Items: String{MinLen: 1}},
		"difficulty": String{Enum: []string{"easy", "med", "hard"}},
		"choices": Array{Items: Object{
			Required: []string{"id", "text"},
			Properties: map[string]Schema{
				"id":   String{MinLen: 1},
				"text": String{MinLen: 1},
			},
		}},
		"correct":      Array{Items: String{MinLen: 1}},
		"correctOrder": Array{Items: String{MinLen: 1}},
		"exhibits":     Array{Items: String{MinLen: 1}},
		"explanation":  String{},
	},
}

var examTemplateSchema = Object{
	Required: []string{"id", "name", "durationMinutes", "sections"},
	Properties: map[string]Schema{
		"id":              String{MinLen: 1},
		"name":            String{MinLen: 1},
		"durationMinutes": Number{Min: Bound(1), Max: Bound(600), Integer: true},
		"sections": Array{MinItems: 1, Items: Object{
			Required: []string{"topicIds", "count"},
			Properties: map[string]Schema{
				"topicIds": Array{MinItems: 1, Items: String{MinLen: 1}},
				"count":    Number{Min: Bound(1), Integer: true},
				"difficultyMix": Object{
					Required: []string{"easy", "med", "hard"},
					Properties: map[string]Schema{
						"easy": Number{Min: Bound(0), Max: Bound(1)},
						"med":  Number{Min: Bound(0), Max: Bound(1)},
						"hard": Number{Min: Bound(0), Max: Bound(1)},
					},
				},
			},
		}},
		"calculatorRules": String{},
	},
}

var tipSchema = Object{
	Required: []string{"id", "topicIds", "title", "body"},
	Properties: map[string]Schema{
		"id":                 String{MinLen: 1},
		"topicIds":           Array{MinItems: 1, Items: String{MinLen: 1}},
		"title":              String{MinLen: 1, MaxLen: 200},
		"body":               String{MinLen: 10},
		"tags":               Array{Items: String{MinLen: 1}},
		"relatedQuestionIds": Array{Items: String{MinLen: 1}},
	},
}
