package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// BehaviorRule is one entry of the store's editable prompt-rule table.
// When or Rule names the trigger; Then holds the outcome text. Rules whose
// outcome reads like store policy are answered directly, the same way the
// FAQ table short-circuits a completion.
type BehaviorRule struct {
	When string `json:"when,omitempty"`
	Rule string `json:"rule,omitempty"`
	Then string `json:"then,omitempty"`
}

// policyOutcome marks rule outcomes that can stand alone as an answer.
var policyOutcome = regexp.MustCompile(`(?i)respond|state|explain|clarify|guide|acknowledge|mention|provide|say|answer|clearly|policy|process|address|location|hours|delivery|return|refund|exchange|shipping|contact|store`)

// LoadBehaviorRules reads the rule table from a JSON file. An empty path
// yields an empty table.
func LoadBehaviorRules(path string) ([]BehaviorRule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read behavior rules: %w", err)
	}
	var rules []BehaviorRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse behavior rules: %w", err)
	}
	return rules, nil
}

// matchingRules returns rules whose trigger fires on the text. A trigger
// fires when its first word occurs anywhere in the lowered query.
func matchingRules(rules []BehaviorRule, text string) []BehaviorRule {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var matched []BehaviorRule
	for _, r := range rules {
		if triggerFires(r.When, lower) || triggerFires(r.Rule, lower) {
			matched = append(matched, r)
		}
	}
	return matched
}

func triggerFires(trigger, lowerQuery string) bool {
	trigger = strings.ToLower(strings.TrimSpace(trigger))
	if trigger == "" {
		return false
	}
	first, _, _ := strings.Cut(trigger, " ")
	return strings.Contains(lowerQuery, first)
}

// policyAnswer returns the outcome of the first matching policy-like rule,
// or "".
func policyAnswer(rules []BehaviorRule, text string) string {
	for _, r := range matchingRules(rules, text) {
		if r.Then != "" && policyOutcome.MatchString(r.Then) {
			return r.Then
		}
	}
	return ""
}
