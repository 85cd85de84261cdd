package service

import "testing"

func TestNewGenerationSettings(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want GenerationSettings
	}{
		{
			name: "empty input uses defaults",
			raw:  map[string]interface{}{},
			want: GenerationSettings{NumQuestions: 5, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "valid values pass through",
			raw: map[string]interface{}{
				"numQuestions":  10,
				"difficulty":    "hard",
				"questionTypes": "mcq",
				"title":         "Chapter 3 Review",
			},
			want: GenerationSettings{NumQuestions: 10, Difficulty: "hard", QuestionTypes: "mcq", Title: "Chapter 3 Review"},
		},
		{
			name: "numeric string is coerced",
			raw:  map[string]interface{}{"numQuestions": "7"},
			want: GenerationSettings{NumQuestions: 7, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "json number arrives as float64",
			raw:  map[string]interface{}{"numQuestions": float64(12)},
			want: GenerationSettings{NumQuestions: 12, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "non-numeric count falls back to default",
			raw:  map[string]interface{}{"numQuestions": "lots"},
			want: GenerationSettings{NumQuestions: 5, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "count clamped to upper bound",
			raw:  map[string]interface{}{"numQuestions": 100},
			want: GenerationSettings{NumQuestions: 20, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "count clamped to lower bound",
			raw:  map[string]interface{}{"numQuestions": -3},
			want: GenerationSettings{NumQuestions: 1, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "invalid difficulty coerced to medium",
			raw:  map[string]interface{}{"difficulty": "impossible"},
			want: GenerationSettings{NumQuestions: 5, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "difficulty is case-insensitive",
			raw:  map[string]interface{}{"difficulty": "EASY"},
			want: GenerationSettings{NumQuestions: 5, Difficulty: "easy", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "invalid question types coerced to mixed",
			raw:  map[string]interface{}{"questionTypes": "matching"},
			want: GenerationSettings{NumQuestions: 5, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "blank title falls back to default",
			raw:  map[string]interface{}{"title": "   "},
			want: GenerationSettings{NumQuestions: 5, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
		{
			name: "title is trimmed",
			raw:  map[string]interface{}{"title": "  My Quiz  "},
			want: GenerationSettings{NumQuestions: 5, Difficulty: "medium", QuestionTypes: "mixed", Title: "My Quiz"},
		},
		{
			name: "wrong types never panic",
			raw: map[string]interface{}{
				"numQuestions":  []string{"5"},
				"difficulty":    42,
				"questionTypes": true,
				"title":         nil,
			},
			want: GenerationSettings{NumQuestions: 5, Difficulty: "medium", QuestionTypes: "mixed", Title: "AI Generated Quiz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewGenerationSettings(tt.raw)
			if got != tt.want {
				t.Errorf("NewGenerationSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
