package chat

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPolicyAnswer_FirstWordTrigger(t *testing.T) {
	rules := []BehaviorRule{
		{When: "installment payment question", Then: "Explain that we accept full payment only, no installments."},
		{When: "wholesale inquiry", Then: "State that wholesale orders go through our store team directly."},
	}

	got := policyAnswer(rules, "do you take installment plans?")
	if got != rules[0].Then {
		t.Errorf("answer = %q, want the installment rule", got)
	}
	if got := policyAnswer(rules, "can I buy wholesale?"); got != rules[1].Then {
		t.Errorf("answer = %q, want the wholesale rule", got)
	}
}

func TestPolicyAnswer_NonPolicyOutcomeSkipped(t *testing.T) {
	rules := []BehaviorRule{
		{Rule: "greeting style", Then: "Be warm and casual."},
	}
	if got := policyAnswer(rules, "what greeting do you use?"); got != "" {
		t.Errorf("expected non-policy outcome skipped, got %q", got)
	}
}

func TestPolicyAnswer_NoMatch(t *testing.T) {
	rules := []BehaviorRule{
		{When: "wholesale inquiry", Then: "State that wholesale orders go through our store team."},
	}
	if got := policyAnswer(rules, "do you have serums?"); got != "" {
		t.Errorf("expected no answer, got %q", got)
	}
	if got := policyAnswer(nil, "anything"); got != "" {
		t.Errorf("expected no answer for an empty table, got %q", got)
	}
}

func TestLoadBehaviorRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	data := `[{"when":"wholesale inquiry","then":"State that wholesale orders go through our store team."}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadBehaviorRules(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 1 || rules[0].When != "wholesale inquiry" {
		t.Errorf("unexpected rules %+v", rules)
	}
}

func TestLoadBehaviorRules_EmptyPath(t *testing.T) {
	rules, err := LoadBehaviorRules("")
	if err != nil {
		t.Fatal(err)
	}
	if rules != nil {
		t.Errorf("expected no rules, got %+v", rules)
	}
}

func TestLoadBehaviorRules_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBehaviorRules(path); err == nil {
		t.Error("expected a parse error")
	}
}
