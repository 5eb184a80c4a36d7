// Package expression evaluates the boolean checks of a rule against one row.
//
// The language covers literals, row field identifiers, arithmetic,
// comparison and logical operators, and assignment to the matched and valid
// accumulators. Nothing outside the row and the accumulators is reachable.
package expression

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSyntax              = errors.New("invalid expression")
	ErrUndefinedIdentifier = errors.New("undefined identifier")
	ErrType                = errors.New("invalid operand")
)

var accumulatorNames = "matched and valid"

func isAccumulator(name string) bool {
	return name == "matched" || name == "valid"
}

type Program struct {
	source     string
	statements []node
}

func Compile(src string) (*Program, error) {
	statements, err := parse(src)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", src, err)
	}
	return &Program{source: src, statements: statements}, nil
}

func (p *Program) String() string {
	return p.source
}

// run executes every statement and yields the value of the last one.
func (p *Program) run(s *scope) (interface{}, error) {
	var result interface{}
	for _, stmt := range p.statements {
		v, err := stmt.eval(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p.source, err)
		}
		result = v
	}
	return result, nil
}

// Checks are OR'ed together, evaluated left to right in one scope.
type Checks []*Program

func CompileChecks(sources []string) (Checks, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no check defined", ErrSyntax)
	}
	checks := make(Checks, 0, len(sources))
	var errs []string
	for _, src := range sources {
		program, err := Compile(src)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		checks = append(checks, program)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, strings.Join(errs, "; "))
	}
	return checks, nil
}

// Evaluate runs the checks against a fresh scope built from row. It returns
// the verdict and the index of the check that produced it, or -1.
func (c Checks) Evaluate(row map[string]interface{}) (bool, int, error) {
	s := newScope(row)
	for i, check := range c {
		v, err := check.run(s)
		if err != nil {
			return false, -1, err
		}
		if truthy(v) {
			return true, i, nil
		}
	}
	return false, -1, nil
}

// Evaluate compiles and runs checks in one go.
func Evaluate(checks []string, row map[string]interface{}) (bool, int, error) {
	compiled, err := CompileChecks(checks)
	if err != nil {
		return false, -1, err
	}
	return compiled.Evaluate(row)
}

type scope struct {
	vars map[string]interface{}
}

func newScope(row map[string]interface{}) *scope {
	vars := make(map[string]interface{}, len(row)+2)
	vars["matched"] = false
	vars["valid"] = false
	for k, v := range row {
		vars[k] = normalize(v)
	}
	return &scope{vars: vars}
}
