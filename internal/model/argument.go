package model

import (
	"encoding/json"

	"github.com/quasar/mc-installer/internal/launcherr"
)

// ArgumentShape discriminates the three grammar productions an Argument can
// take, grounded in the original's untagged Argument enum (json.rs):
// a bare string, a rule-guarded single value, or a rule-guarded multi-value
// list.
type ArgumentShape int

const (
	ShapePlain ArgumentShape = iota
	ShapeRuleSingle
	ShapeRuleMulti
)

// Argument is the sum-typed entry found in arguments.game/arguments.jvm.
// The three productions are distinguished at unmarshal time: a bare JSON
// string is Plain; a JSON object is RuleSingle when its "value" is a
// string and RuleMulti when "value" is an array.
type Argument struct {
	Shape  ArgumentShape
	Plain  string
	Rules  []Rule
	Single string
	Multi  []string
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Shape = ShapePlain
		a.Plain = s
		return nil
	}

	var obj struct {
		Rules []Rule          `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return launcherr.ParseJSON("decoding argument", err)
	}
	a.Rules = obj.Rules

	var single string
	if err := json.Unmarshal(obj.Value, &single); err == nil {
		a.Shape = ShapeRuleSingle
		a.Single = single
		return nil
	}

	var multi []string
	if err := json.Unmarshal(obj.Value, &multi); err != nil {
		return launcherr.ParseJSON("decoding argument value", err)
	}
	a.Shape = ShapeRuleMulti
	a.Multi = multi
	return nil
}

func (a Argument) MarshalJSON() ([]byte, error) {
	switch a.Shape {
	case ShapePlain:
		return json.Marshal(a.Plain)
	case ShapeRuleSingle:
		return json.Marshal(struct {
			Rules []Rule `json:"rules,omitempty"`
			Value string `json:"value"`
		}{a.Rules, a.Single})
	case ShapeRuleMulti:
		return json.Marshal(struct {
			Rules []Rule   `json:"rules,omitempty"`
			Value []string `json:"value"`
		}{a.Rules, a.Multi})
	default:
		return json.Marshal(a.Plain)
	}
}
