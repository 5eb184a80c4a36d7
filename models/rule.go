package models

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// StringList accepts either a single scalar or a sequence of scalars.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = StringList{value.Value}
	case yaml.SequenceNode:
		items := make(StringList, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected a scalar list item", item.Line)
			}
			items = append(items, item.Value)
		}
		*l = items
	default:
		return fmt.Errorf("line %d: expected a scalar or a list of scalars", value.Line)
	}
	return nil
}

type Rule struct {
	Check StringList `yaml:"check" json:"check"`
	Text  StringList `yaml:"text,omitempty" json:"text,omitempty"`
	Time  StringList `yaml:"time,omitempty" json:"time,omitempty"`
	Day   StringList `yaml:"day,omitempty" json:"day,omitempty"`
	Start string     `yaml:"start,omitempty" json:"start,omitempty"`
	End   string     `yaml:"end,omitempty" json:"end,omitempty"`
	Func  StringList `yaml:"func,omitempty" json:"func,omitempty"`
	Group StringList `yaml:"group,omitempty" json:"group,omitempty"`
	Where StringList `yaml:"where,omitempty" json:"where,omitempty"`
	Pass  bool       `yaml:"pass,omitempty" json:"pass,omitempty"`
	Field string     `yaml:"field,omitempty" json:"field,omitempty"`
}

// TextFor returns the alert text for the check branch that matched. A text
// list with one entry per check is read per branch, anything else is joined.
func (r *Rule) TextFor(branch int) string {
	switch {
	case len(r.Text) == 0:
		return ""
	case len(r.Text) == len(r.Check) && branch >= 0 && branch < len(r.Text):
		return r.Text[branch]
	case len(r.Text) == 1:
		return r.Text[0]
	}
	text := r.Text[0]
	for _, t := range r.Text[1:] {
		text += "; " + t
	}
	return text
}
