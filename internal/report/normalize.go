package report

// RawError is the view of one validation-engine error that the normalizer
// depends on. Engines adapt their own error representation to it.
type RawError interface {
	Message() string
	// Path locates the failing value inside the payload.
	Path() []Segment
	// SchemaPath locates the failing keyword inside the schema.
	SchemaPath() []string
	// Validator is the failing keyword name, e.g. "minimum" or "required".
	Validator() string
	// Expected is the schema value of the failing keyword.
	Expected() (any, bool)
	// InvalidValue is the payload value at Path.
	InvalidValue() (any, bool)
}

// Normalize converts one engine error into an Issue. It never fails: optional
// values that the engine cannot supply are left nil.
func Normalize(e RawError) Issue {
	iss := Issue{
		Message:    e.Message(),
		Path:       JoinPath(e.Path()),
		SchemaPath: JoinSchemaPath(e.SchemaPath()),
		Validator:  e.Validator(),
	}
	if v, ok := e.Expected(); ok {
		iss.Expected = v
	}
	if v, ok := e.InvalidValue(); ok {
		iss.InvalidValue = v
	}
	return iss
}
