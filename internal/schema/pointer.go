package schema

import (
	"net/url"
	"strconv"
	"strings"
)

// splitPointer splits a JSON pointer into unescaped reference tokens.
// The engine percent-encodes tokens on top of the usual ~0/~1 escaping.
func splitPointer(ptr string) []string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return nil
	}
	raw := strings.Split(ptr, "/")
	toks := make([]string, len(raw))
	for i, t := range raw {
		if u, err := url.PathUnescape(t); err == nil {
			t = u
		}
		t = strings.ReplaceAll(t, "~1", "/")
		toks[i] = strings.ReplaceAll(t, "~0", "~")
	}
	return toks
}

// lookup walks doc along toks. It reports false when a token does not resolve.
func lookup(doc any, toks []string) (any, bool) {
	cur := doc
	for _, t := range toks {
		switch c := cur.(type) {
		case map[string]any:
			v, ok := c[t]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(t)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}
			cur = c[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// fragment returns the URL part and the JSON pointer of an absolute keyword
// location such as "mem://x/schema.json#/properties/a".
func fragment(loc string) (string, string) {
	i := strings.IndexByte(loc, '#')
	if i < 0 {
		return loc, ""
	}
	return loc[:i], loc[i+1:]
}
