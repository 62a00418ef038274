// Package sqlscore scores retrieved query-language statements against the
// expected statement.
//
// Each statement is analyzed into the relations, columns and joins it
// references plus the language keywords it uses. A strict parser is tried
// first; when it rejects the text, regular-expression scans recover the same
// features so a score is still produced, and the statement is recorded as
// syntactically invalid.
package sqlscore

import (
	"regexp"
	"slices"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// ParseResult is the outcome of the strict parse: ParsedOK or ParsedFailed.
type ParseResult interface {
	parseResult()
}

// ParsedOK carries the features the strict parser found.
type ParsedOK struct {
	Tables  []string
	Columns []string
	Joins   []string
}

// ParsedFailed records why the strict parser rejected the text.
type ParsedFailed struct {
	Reason string
}

func (ParsedOK) parseResult()     {}
func (ParsedFailed) parseResult() {}

// Analysis is the feature record of one statement.
// Names are lowercase, unqualified and de-duplicated in first-seen order.
type Analysis struct {
	Parse    ParseResult
	Tables   []string
	Columns  []string
	Joins    []string // join kind and right-hand relation, e.g. "left join orders"
	Keywords []string
}

// Valid reports whether the strict parser accepted the statement.
func (a Analysis) Valid() bool {
	_, ok := a.Parse.(ParsedOK)
	return ok
}

var keywordPatterns = compileKeywords(
	"select", "distinct", "from", "where", "group by", "order by", "having",
	"limit", "offset", "join", "inner join", "left join", "right join",
	"full join", "cross join", "on", "using", "union", "union all",
	"intersect", "except", "insert into", "values", "update", "set",
	"delete", "with", "as", "and", "or", "not", "in", "exists", "between",
	"like", "ilike", "is null", "is not null", "case", "when", "then",
	"else", "end", "count", "sum", "avg", "min", "max", "asc", "desc",
	"coalesce", "cast",
)

type keywordPattern struct {
	name string
	re   *regexp.Regexp
}

func compileKeywords(words ...string) []keywordPattern {
	out := make([]keywordPattern, len(words))
	for i, w := range words {
		pattern := `(?i)\b` + strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`) + `\b`
		out[i] = keywordPattern{name: w, re: regexp.MustCompile(pattern)}
	}
	return out
}

var (
	identPattern      = `[a-zA-Z_][\w$]*(?:\.[a-zA-Z_][\w$]*)*`
	tableRe           = regexp.MustCompile(`(?i)\b(?:from|join|into|update)\s+(` + identPattern + `)`)
	joinRe            = regexp.MustCompile(`(?i)\b(?:(natural|inner|cross|(?:left|right|full)(?:\s+outer)?)\s+)?join\s+(` + identPattern + `)`)
	selectListRe      = regexp.MustCompile(`(?is)\bselect\s+(.*?)\s+from\b`)
	comparisonRe      = regexp.MustCompile(`(?i)(` + identPattern + `)\s*(?:=|<>|!=|<=|>=|<|>|\s+(?:not\s+)?(?:like|ilike|in|between|is)\b)`)
	orderGroupRe      = regexp.MustCompile(`(?is)\b(?:group|order)\s+by\s+(.*?)(?:\bhaving\b|\border\b|\blimit\b|\boffset\b|;|$)`)
	aliasRe           = regexp.MustCompile(`(?i)\s+as\s+\w+\s*$`)
	identRe           = regexp.MustCompile(identPattern)
	stringLiteralRe   = regexp.MustCompile(`'(?:[^']|'')*'`)
	reservedForColumn = map[string]bool{
		"select": true, "distinct": true, "from": true, "where": true, "and": true,
		"or": true, "not": true, "as": true, "case": true, "when": true,
		"then": true, "else": true, "end": true, "null": true, "is": true,
		"in": true, "like": true, "ilike": true, "between": true, "asc": true,
		"desc": true, "count": true, "sum": true, "avg": true, "min": true,
		"max": true, "coalesce": true, "cast": true, "true": true, "false": true,
		"on": true, "by": true, "having": true, "limit": true, "exists": true,
	}
)

// Analyze extracts the features of text.
func Analyze(text string) Analysis {
	text = strings.TrimSpace(text)
	a := Analysis{Keywords: extractKeywords(text)}

	parsed, failed := parseStrict(text)
	if failed != nil {
		a.Parse = *failed
		a.Tables, a.Columns, a.Joins = scanFallback(text)
		return a
	}
	a.Parse = parsed
	a.Tables, a.Columns, a.Joins = parsed.Tables, parsed.Columns, parsed.Joins
	return a
}

func parseStrict(text string) (ParsedOK, *ParsedFailed) {
	stmt, err := sqlparser.Parse(strings.TrimRight(text, "; \t\n"))
	if err != nil {
		return ParsedOK{}, &ParsedFailed{Reason: err.Error()}
	}

	var tables, columns, joins orderedSet
	err = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		switch n := node.(type) {
		case *sqlparser.AliasedTableExpr:
			if tn, ok := n.Expr.(sqlparser.TableName); ok && !tn.IsEmpty() {
				tables.add(tn.Name.String())
			}
		case *sqlparser.ColName:
			columns.add(n.Name.String())
			return false, nil
		case *sqlparser.JoinTableExpr:
			right := ""
			if ate, ok := n.RightExpr.(*sqlparser.AliasedTableExpr); ok {
				if tn, ok := ate.Expr.(sqlparser.TableName); ok {
					right = tn.Name.String()
				}
			}
			joins.add(strings.TrimSpace(normalizeJoin(n.Join) + " " + right))
		}
		return true, nil
	}, stmt)
	if err != nil {
		return ParsedOK{}, &ParsedFailed{Reason: err.Error()}
	}

	return ParsedOK{Tables: tables.items(), Columns: columns.items(), Joins: joins.items()}, nil
}

// normalizeJoin maps join spellings onto one canonical form:
// "inner join" becomes "join" and "outer" is dropped.
func normalizeJoin(kind string) string {
	fields := strings.Fields(strings.ToLower(kind))
	out := fields[:0]
	for _, f := range fields {
		if f == "outer" || f == "inner" {
			continue
		}
		out = append(out, f)
	}
	if len(out) == 0 || !strings.HasSuffix(out[len(out)-1], "join") {
		out = append(out, "join")
	}
	return strings.Join(out, " ")
}

func scanFallback(text string) (tables, columns, joins []string) {
	clean := stringLiteralRe.ReplaceAllString(text, "''")

	var ts, cs, js orderedSet
	for _, m := range tableRe.FindAllStringSubmatch(clean, -1) {
		ts.add(lastSegment(m[1]))
	}
	for _, m := range joinRe.FindAllStringSubmatch(clean, -1) {
		js.add(normalizeJoin(m[1]+" join") + " " + lastSegment(m[2]))
	}

	if m := selectListRe.FindStringSubmatch(clean); m != nil {
		for _, item := range splitTopLevel(m[1]) {
			addColumnIdents(&cs, aliasRe.ReplaceAllString(item, ""))
		}
	}
	for _, m := range orderGroupRe.FindAllStringSubmatch(clean, -1) {
		for _, item := range splitTopLevel(m[1]) {
			addColumnIdents(&cs, item)
		}
	}
	for _, m := range comparisonRe.FindAllStringSubmatch(clean, -1) {
		addColumnIdents(&cs, m[1])
	}

	return ts.items(), cs.items(), js.items()
}

func addColumnIdents(set *orderedSet, expr string) {
	for _, ident := range identRe.FindAllString(expr, -1) {
		name := strings.ToLower(lastSegment(ident))
		if reservedForColumn[name] {
			continue
		}
		set.add(name)
	}
}

func splitTopLevel(list string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range list {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, list[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, list[start:])
}

func lastSegment(ident string) string {
	if i := strings.LastIndexByte(ident, '.'); i >= 0 {
		return ident[i+1:]
	}
	return ident
}

func extractKeywords(text string) []string {
	clean := stringLiteralRe.ReplaceAllString(text, "''")
	var out []string
	for _, kw := range keywordPatterns {
		if kw.re.MatchString(clean) {
			out = append(out, kw.name)
		}
	}
	return out
}

// orderedSet keeps lowercase, de-duplicated names in first-seen order.
type orderedSet struct {
	seen  map[string]bool
	order []string
}

func (s *orderedSet) add(name string) {
	name = strings.ToLower(strings.Trim(name, "`\" "))
	if name == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[name] {
		return
	}
	s.seen[name] = true
	s.order = append(s.order, name)
}

func (s *orderedSet) items() []string {
	return slices.Clone(s.order)
}
