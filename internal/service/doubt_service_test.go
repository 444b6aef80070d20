package service

import "testing"

func TestParseStepVerdict(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		wantCorrect  bool
		wantFeedback string
	}{
		{
			name:         "correct with feedback",
			reply:        "VERDICT: CORRECT\nGood use of the chain rule.",
			wantCorrect:  true,
			wantFeedback: "Good use of the chain rule.",
		},
		{
			name:         "incorrect with feedback",
			reply:        "VERDICT: INCORRECT\nYou dropped a minus sign.",
			wantCorrect:  false,
			wantFeedback: "You dropped a minus sign.",
		},
		{
			name:         "lowercase verdict",
			reply:        "verdict: correct\nNice.",
			wantCorrect:  true,
			wantFeedback: "Nice.",
		},
		{
			name:         "leading whitespace",
			reply:        "  VERDICT: CORRECT  well done",
			wantCorrect:  true,
			wantFeedback: "well done",
		},
		{
			name:         "no verdict defaults to incorrect",
			reply:        "That step looks interesting.",
			wantCorrect:  false,
			wantFeedback: "That step looks interesting.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, feedback := parseStepVerdict(tt.reply)
			if correct != tt.wantCorrect {
				t.Errorf("correct = %v, want %v", correct, tt.wantCorrect)
			}
			if feedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", feedback, tt.wantFeedback)
			}
		})
	}
}
