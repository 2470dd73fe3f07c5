package report

// Rewrite derives the effective schema for a validation run. With strict set,
// a top-level object schema that states no additionalProperties policy gets
// additionalProperties=false on a shallow copy. Nested subschemas are left as
// they are. The caller's schema is never modified.
func Rewrite(schema any, strict bool) any {
	if !strict {
		return schema
	}
	m, ok := schema.(map[string]any)
	if !ok {
		return schema
	}
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	if t, _ := out["type"].(string); t == "object" {
		if _, set := out["additionalProperties"]; !set {
			out["additionalProperties"] = false
		}
	}
	return out
}
