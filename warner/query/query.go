// Package query turns the declarative parts of a rule into a store query.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/store"
)

var (
	ErrInvalidFunc  = errors.New("invalid func")
	ErrInvalidWhere = errors.New("invalid where")
)

var (
	funcPattern   = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)\s*$`)
	numberPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

var operators = map[string]bool{
	"=": true, "!=": true, "<>": true,
	"<": true, "<=": true, ">": true, ">=": true,
	"=~": true, "!~": true,
}

type Function struct {
	Name string
	Args []string
}

type Condition struct {
	Field    string
	Operator string
	Value    interface{}
}

// Spec is a rule's query parsed once. Build applies it to a fresh handle.
type Spec struct {
	Measurement string
	Start       string
	End         string
	Functions   []Function
	Groups      []string
	Conditions  []Condition
}

func Parse(measurement string, rule *models.Rule) (*Spec, error) {
	spec := &Spec{
		Measurement: measurement,
		Start:       rule.Start,
		End:         rule.End,
		Groups:      append([]string(nil), rule.Group...),
	}
	for _, f := range rule.Func {
		function, err := ParseFunction(f)
		if err != nil {
			return nil, err
		}
		spec.Functions = append(spec.Functions, function)
	}
	for _, w := range rule.Where {
		condition, err := ParseCondition(w)
		if err != nil {
			return nil, err
		}
		spec.Conditions = append(spec.Conditions, condition)
	}
	return spec, nil
}

// ParseFunction reads "name(arg, ...)".
func ParseFunction(s string) (Function, error) {
	m := funcPattern.FindStringSubmatch(s)
	if m == nil {
		return Function{}, fmt.Errorf("%w: %q is not name(args)", ErrInvalidFunc, s)
	}
	var args []string
	for _, arg := range strings.Split(m[2], ",") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return Function{}, fmt.Errorf("%w: %q has an empty argument", ErrInvalidFunc, s)
		}
		args = append(args, arg)
	}
	return Function{Name: m[1], Args: args}, nil
}

// ParseCondition reads "field operator value". Values that look like
// unsigned decimals become float64.
func ParseCondition(s string) (Condition, error) {
	tokens := strings.Fields(s)
	if len(tokens) != 3 {
		return Condition{}, fmt.Errorf("%w: %q must be \"field operator value\"", ErrInvalidWhere, s)
	}
	if !operators[tokens[1]] {
		return Condition{}, fmt.Errorf("%w: %q has unknown operator %q", ErrInvalidWhere, s, tokens[1])
	}
	var value interface{} = tokens[2]
	if numberPattern.MatchString(tokens[2]) {
		f, err := strconv.ParseFloat(tokens[2], 64)
		if err != nil {
			return Condition{}, fmt.Errorf("%w: %q: %s", ErrInvalidWhere, s, err)
		}
		value = f
	}
	return Condition{Field: tokens[0], Operator: tokens[1], Value: value}, nil
}

func (s *Spec) Build(conn store.Connector) store.QueryHandle {
	handle := conn.Query(s.Measurement)
	if s.Start != "" || s.End != "" {
		handle.SetTimeRange(s.Start, s.End)
	}
	for _, f := range s.Functions {
		handle.AddFunction(f.Name, f.Args...)
	}
	for _, g := range s.Groups {
		handle.AddGroup(g)
	}
	for _, c := range s.Conditions {
		handle.Where(c.Field, c.Value, c.Operator)
	}
	handle.SetFormat(store.FormatJSON)
	return handle
}
