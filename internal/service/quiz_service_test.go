package service

import "testing"

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare array",
			raw:  `[{"question":"q"}]`,
			want: `[{"question":"q"}]`,
		},
		{
			name: "fenced json",
			raw:  "```json\n[1,2,3]\n```",
			want: "[1,2,3]",
		},
		{
			name: "prose around array",
			raw:  "Here are your questions:\n[1,2]\nEnjoy!",
			want: "[1,2]",
		},
		{
			name: "no array",
			raw:  "sorry, I cannot do that",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONArray(tt.raw); got != tt.want {
				t.Errorf("extractJSONArray(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseQuizQuestions(t *testing.T) {
	raw := "```json\n" +
		`[{"question":"2+2?","options":["3","4","5","6"],"answer":1,"explanation":"basic addition"}]` +
		"\n```"

	questions, err := parseQuizQuestions(raw)
	if err != nil {
		t.Fatalf("parseQuizQuestions returned error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0].Answer != 1 {
		t.Errorf("answer index = %d, want 1", questions[0].Answer)
	}
	if len(questions[0].Options) != 4 {
		t.Errorf("got %d options, want 4", len(questions[0].Options))
	}
}

func TestParseQuizQuestionsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no array", "I refuse"},
		{"empty set", "[]"},
		{"missing options", `[{"question":"q","options":["only one"],"answer":0}]`},
		{"answer out of range", `[{"question":"q","options":["a","b"],"answer":5}]`},
		{"negative answer", `[{"question":"q","options":["a","b"],"answer":-1}]`},
		{"invalid json", "[{broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseQuizQuestions(tt.raw); err == nil {
				t.Errorf("parseQuizQuestions(%q) succeeded, want error", tt.raw)
			}
		})
	}
}
