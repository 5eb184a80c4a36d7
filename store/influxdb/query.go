package influxdb

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/store"

	"code.cloudfoundry.org/lager/v3"
)

var (
	relativeTime = regexp.MustCompile(`^([+-])\s*(\d+(?:ns|u|µ|ms|s|m|h|d|w))$`)
	rawArgument  = regexp.MustCompile(`^(\*|-?\d+(\.\d+)?|'.*'|".*"|/.*/|\w+\(.*\))$`)
	aliasUnsafe  = regexp.MustCompile(`\W+`)
)

type function struct {
	name string
	args []string
}

type condition struct {
	field    string
	operator string
	value    interface{}
}

// Query renders InfluxQL select statements.
type Query struct {
	connector   *Connector
	measurement string
	start, end  string
	functions   []function
	groups      []string
	conditions  []condition
	format      store.Format
}

var _ store.QueryHandle = &Query{}

func newQuery(connector *Connector, measurement string) *Query {
	return &Query{
		connector:   connector,
		measurement: measurement,
		format:      store.FormatJSON,
	}
}

func (q *Query) SetTimeRange(start, end string) {
	q.start = start
	q.end = end
}

func (q *Query) AddFunction(name string, args ...string) {
	q.functions = append(q.functions, function{name: name, args: args})
}

func (q *Query) AddGroup(tag string) {
	q.groups = append(q.groups, tag)
}

func (q *Query) Where(field string, value interface{}, operator string) {
	if operator == "" {
		operator = "="
	}
	q.conditions = append(q.conditions, condition{field: field, operator: operator, value: value})
}

func (q *Query) SetFormat(format store.Format) {
	q.format = format
}

func (q *Query) String() string {
	var b strings.Builder
	b.WriteString("select ")
	if len(q.functions) == 0 {
		b.WriteString("*")
	}
	for i, f := range q.functions {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(f.render())
	}
	b.WriteString(" from ")
	b.WriteString(quoteIdent(q.measurement))

	var clauses []string
	for _, c := range q.conditions {
		clauses = append(clauses, c.render())
	}
	if q.start != "" {
		clauses = append(clauses, "time >= "+renderTime(q.start))
	}
	if q.end != "" {
		clauses = append(clauses, "time <= "+renderTime(q.end))
	}
	if len(clauses) > 0 {
		b.WriteString(" where ")
		b.WriteString(strings.Join(clauses, " and "))
	}

	if len(q.groups) > 0 {
		groups := make([]string, 0, len(q.groups))
		for _, g := range q.groups {
			groups = append(groups, renderArgument(g))
		}
		b.WriteString(" group by ")
		b.WriteString(strings.Join(groups, ","))
	}
	return b.String()
}

func (q *Query) Execute(ctx context.Context) (map[string][]models.Row, error) {
	if q.format != store.FormatJSON {
		return nil, store.ErrUnsupportedFormat
	}
	command := q.String()
	q.connector.logger.Debug("query", lager.Data{"ql": command})

	response, err := q.connector.query(ctx, command)
	if err != nil {
		return nil, err
	}
	return toRows(response.Results), nil
}

// Alias names the column of an aggregate: count("account") becomes
// account_count, count(*) stays count.
func (f function) alias() string {
	for _, arg := range f.args {
		arg = strings.Trim(strings.TrimSpace(arg), `"'`)
		if arg == "*" || arg == "" {
			continue
		}
		if _, err := strconv.ParseFloat(arg, 64); err == nil {
			continue
		}
		return strings.Trim(aliasUnsafe.ReplaceAllString(arg, "_"), "_") + "_" + f.name
	}
	return f.name
}

func (f function) render() string {
	args := make([]string, 0, len(f.args))
	for _, arg := range f.args {
		args = append(args, renderArgument(arg))
	}
	return f.name + "(" + strings.Join(args, ",") + ") AS " + quoteIdent(f.alias())
}

func (c condition) render() string {
	return quoteIdent(c.field) + " " + c.operator + " " + renderValue(c.operator, c.value)
}

func renderArgument(arg string) string {
	arg = strings.TrimSpace(arg)
	if rawArgument.MatchString(arg) {
		return arg
	}
	return quoteIdent(arg)
}

func renderValue(operator string, value interface{}) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		if (operator == "=~" || operator == "!~") && len(v) > 1 && strings.HasPrefix(v, "/") && strings.HasSuffix(v, "/") {
			return v
		}
		return quoteString(v)
	}
	return quoteString(toString(value))
}

// renderTime keeps relative offsets relative to now() and quotes absolute
// timestamps.
func renderTime(value string) string {
	value = strings.TrimSpace(value)
	if m := relativeTime.FindStringSubmatch(value); m != nil {
		return "now() " + m[1] + " " + m[2]
	}
	if strings.HasPrefix(value, "now()") {
		return value
	}
	return quoteString(value)
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}

func quoteString(s string) string {
	return `'` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `'`, `\'`) + `'`
}

func toString(v interface{}) string {
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return ""
}
