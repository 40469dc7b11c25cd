package annotation

// Unresolved is the raw annotation of a target that no signal resolved.
// It parses to the unknown type.
const Unresolved = "mixed"

// Resolve picks the raw annotation for one target. The first match wins:
//
//  1. the native type hint, if non-empty;
//  2. the doc-comment type, if non-empty;
//  3. for optional targets with a default, the type implied by the default's shape;
//  4. if still unresolved, the first name rule matching the target's name;
//  5. Unresolved.
//
// Rules never apply to return values (targets without a name).
func Resolve(sig Signals, rules Rules) string {
	raw := Unresolved

	switch {
	case sig.NativeHint != "":
		raw = sig.NativeHint
	case sig.DocType != "":
		raw = sig.DocType
	case sig.Optional && sig.Default != nil:
		if t, ok := InferFromLiteral(sig.Default.Value); ok {
			raw = t
		}
	}

	if raw == Unresolved && sig.Name != "" {
		if t, ok := rules.Lookup(sig.Name); ok {
			raw = t
		}
	}
	return raw
}
