package report

import (
	"cmp"
	"slices"
	"sort"
	"strings"
)

// ComparePaths orders payload locations. A strict prefix sorts first; otherwise
// the first differing segment decides. Indices compare numerically and property
// names lexicographically. An index and a property compare by their string form,
// and the index wins a tie.
func ComparePaths(a, b []Segment) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareSegments(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareSegments(a, b Segment) int {
	switch {
	case a.IsIndex && b.IsIndex:
		return cmp.Compare(a.Index, b.Index)
	case !a.IsIndex && !b.IsIndex:
		return strings.Compare(a.Key, b.Key)
	}
	if c := strings.Compare(a.String(), b.String()); c != 0 {
		return c
	}
	if a.IsIndex {
		return -1
	}
	return 1
}

// SortRawErrors orders errors by payload path. Errors at the same path are
// ordered by schema path, keyword and message so the result never depends on
// the order the engine produced them in.
func SortRawErrors(errs []RawError) {
	sort.SliceStable(errs, func(i, j int) bool {
		return compareRawErrors(errs[i], errs[j]) < 0
	})
}

func compareRawErrors(a, b RawError) int {
	if c := ComparePaths(a.Path(), b.Path()); c != 0 {
		return c
	}
	if c := slices.Compare(a.SchemaPath(), b.SchemaPath()); c != 0 {
		return c
	}
	if c := strings.Compare(a.Validator(), b.Validator()); c != 0 {
		return c
	}
	return strings.Compare(a.Message(), b.Message())
}
