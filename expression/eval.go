package expression

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

func (n literal) eval(*scope) (interface{}, error) {
	return n.value, nil
}

func (n identifier) eval(s *scope) (interface{}, error) {
	v, ok := s.vars[n.name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefinedIdentifier, n.name)
	}
	return v, nil
}

func (n assignment) eval(s *scope) (interface{}, error) {
	v, err := n.value.eval(s)
	if err != nil {
		return nil, err
	}
	s.vars[n.name] = v
	return v, nil
}

func (n unary) eval(s *scope) (interface{}, error) {
	v, err := n.operand.eval(s)
	if err != nil {
		return nil, err
	}
	if n.op == "!" {
		return !truthy(v), nil
	}
	num, ok := toNumber(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s%v", ErrType, n.op, v)
	}
	if n.op == "-" {
		return -num, nil
	}
	return num, nil
}

func (n logical) eval(s *scope) (interface{}, error) {
	left, err := n.left.eval(s)
	if err != nil {
		return nil, err
	}
	if n.op == "||" && truthy(left) || n.op == "&&" && !truthy(left) {
		return left, nil
	}
	return n.right.eval(s)
}

func (n binary) eval(s *scope) (interface{}, error) {
	left, err := n.left.eval(s)
	if err != nil {
		return nil, err
	}
	right, err := n.right.eval(s)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case "==":
		return looseEqual(left, right), nil
	case "!=":
		return !looseEqual(left, right), nil
	case "===":
		return strictEqual(left, right), nil
	case "!==":
		return !strictEqual(left, right), nil
	case "<", "<=", ">", ">=":
		return compare(n.op, left, right), nil
	case "+":
		ls, lok := left.(string)
		rs, rok := right.(string)
		if lok || rok {
			if !lok {
				ls = toString(left)
			}
			if !rok {
				rs = toString(right)
			}
			return ls + rs, nil
		}
	}

	l, lok := toNumber(left)
	r, rok := toNumber(right)
	if !lok || !rok {
		return nil, fmt.Errorf("%w: %v %s %v", ErrType, left, n.op, right)
	}
	switch n.op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		return l / r, nil
	case "%":
		return math.Mod(l, r), nil
	}
	return nil, fmt.Errorf("%w: unknown operator %s", ErrSyntax, n.op)
}

// normalize maps row values onto the four value kinds the language knows:
// nil, bool, float64 and string.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case nil, bool, float64, string:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	}
	return true
}

func toNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case float64:
		return t, true
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return f, err == nil
	}
	return 0, false
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	}
	return fmt.Sprint(v)
}

func strictEqual(a, b interface{}) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	}
	return false
}

func looseEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if strictEqual(a, b) {
		return true
	}
	_, aString := a.(string)
	_, bString := b.(string)
	if aString && bString {
		return false
	}
	x, xok := toNumber(a)
	y, yok := toNumber(b)
	return xok && yok && x == y
}

func compare(op string, a, b interface{}) bool {
	as, aString := a.(string)
	bs, bString := b.(string)
	if aString && bString {
		switch op {
		case "<":
			return as < bs
		case "<=":
			return as <= bs
		case ">":
			return as > bs
		}
		return as >= bs
	}
	x, xok := toNumber(a)
	y, yok := toNumber(b)
	if !xok || !yok {
		return false
	}
	switch op {
	case "<":
		return x < y
	case "<=":
		return x <= y
	case ">":
		return x > y
	}
	return x >= y
}
