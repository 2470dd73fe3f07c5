package schema

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dshills/contractcheck/internal/report"
)

// Error is one reportable engine failure. It implements report.RawError.
type Error struct {
	message    string
	path       []report.Segment
	schemaPath []string
	validator  string

	expected    any
	hasExpected bool
	value       any
	hasValue    bool
}

func (e *Error) Message() string           { return e.message }
func (e *Error) Path() []report.Segment    { return e.path }
func (e *Error) SchemaPath() []string      { return e.schemaPath }
func (e *Error) Validator() string         { return e.validator }
func (e *Error) Expected() (any, bool)     { return e.expected, e.hasExpected }
func (e *Error) InvalidValue() (any, bool) { return e.value, e.hasValue }
func (e *Error) Error() string             { return e.message }

func (v *Validator) newError(ve *jsonschema.ValidationError, payload any) *Error {
	kw := keywordOf(ve)
	e := &Error{
		message:    canonicalMessage(kw, ve.Message),
		schemaPath: splitPointer(ve.KeywordLocation),
		validator:  kw,
	}
	if e.schemaPath == nil {
		e.schemaPath = []string{}
	}
	inst := splitPointer(ve.InstanceLocation)
	e.path, e.value, e.hasValue = walkInstance(payload, inst)
	// propertyNames validates the key, not the member's value.
	if len(inst) > 0 && underPropertyNames(e.schemaPath) {
		e.value, e.hasValue = inst[len(inst)-1], true
	}

	if u, ptr := fragment(ve.AbsoluteKeywordLocation); v.roots[u] {
		e.expected, e.hasExpected = lookup(v.doc, splitPointer(ptr))
	}
	return e
}

// schemaKeywords take a subschema that may be the boolean false.
var schemaKeywords = map[string]bool{
	"items":                 true,
	"additionalItems":       true,
	"additionalProperties":  true,
	"unevaluatedItems":      true,
	"unevaluatedProperties": true,
	"propertyNames":         true,
	"contains":              true,
	"not":                   true,
	"if":                    true,
	"then":                  true,
	"else":                  true,
}

// keywordOf names the schema keyword that failed.
func keywordOf(ve *jsonschema.ValidationError) string {
	toks := splitPointer(ve.KeywordLocation)
	n := len(toks)
	if n == 0 {
		return "false"
	}
	// A false subschema fails at its own location. Under a keyword such as
	// unevaluatedProperties that keyword is the failure; under properties/x
	// there is none.
	if ve.Message == "not allowed" {
		if schemaKeywords[toks[n-1]] && isKeyword(toks, n-1) {
			return toks[n-1]
		}
		return "false"
	}
	// dependentRequired/<property>/<index>
	if n >= 3 && (toks[n-3] == "dependentRequired" || toks[n-3] == "dependencies") {
		return toks[n-3]
	}
	return toks[n-1]
}

// underPropertyNames reports whether a keyword path runs through a
// propertyNames keyword, as opposed to a property of that name.
func underPropertyNames(toks []string) bool {
	for i, t := range toks {
		if t == "propertyNames" && isKeyword(toks, i) {
			return true
		}
	}
	return false
}

// isKeyword reports whether toks[i] is a keyword rather than a name held
// by a keyword that maps names to subschemas.
func isKeyword(toks []string, i int) bool {
	if i == 0 {
		return true
	}
	switch toks[i-1] {
	case "properties", "patternProperties", "dependentSchemas", "dependentRequired", "dependencies", "$defs", "definitions":
		return !isKeyword(toks, i-1)
	}
	return true
}

// walkInstance resolves an instance location against the payload, typing
// each segment by the container it indexes.
func walkInstance(payload any, toks []string) ([]report.Segment, any, bool) {
	segs := make([]report.Segment, 0, len(toks))
	cur, found := payload, true
	for _, t := range toks {
		switch c := cur.(type) {
		case []any:
			i, err := strconv.Atoi(t)
			if err != nil {
				segs = append(segs, report.Key(t))
				cur, found = nil, false
				continue
			}
			segs = append(segs, report.Index(i))
			if i >= 0 && i < len(c) {
				cur = c[i]
			} else {
				cur, found = nil, false
			}
		case map[string]any:
			segs = append(segs, report.Key(t))
			v, ok := c[t]
			cur, found = v, found && ok
		default:
			segs = append(segs, report.Key(t))
			cur, found = nil, false
		}
	}
	return segs, cur, found
}

var quotedName = regexp.MustCompile(`'(?:[^'\\]|\\.)*'`)

// canonicalMessage makes engine messages independent of map iteration order.
// The engine lists unexpected property names in random order.
func canonicalMessage(keyword, msg string) string {
	if keyword != "additionalProperties" {
		return msg
	}
	loc := quotedName.FindAllStringIndex(msg, -1)
	if len(loc) < 2 {
		return msg
	}
	names := make([]string, len(loc))
	for i, l := range loc {
		names[i] = msg[l[0]:l[1]]
	}
	sort.Strings(names)
	start, end := loc[0][0], loc[len(loc)-1][1]
	return msg[:start] + strings.Join(names, ", ") + msg[end:]
}
