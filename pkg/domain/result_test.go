package domain

import "testing"

func TestResultMergePreservesOrder(t *testing.T) {
	var result Result
	result.Add("schooling_group", "first")
	result.Merge(Result{Warnings: []Warning{{Rule: "parameter_overlap", Message: "second"}, {Rule: "aggressive_mix", Message: "third"}}})
	got := result.Messages()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestResultMergeEmptyInput(t *testing.T) {
	original := Result{Warnings: []Warning{{Rule: "existing", Message: "kept"}}}
	original.Merge(Result{})
	if len(original.Warnings) != 1 || original.Warnings[0].Rule != "existing" {
		t.Fatalf("expected original warnings to remain, got %+v", original.Warnings)
	}
}

func TestResultMessagesEmpty(t *testing.T) {
	var result Result
	if msgs := result.Messages(); msgs == nil || len(msgs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", msgs)
	}
}
