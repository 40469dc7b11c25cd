package ir

import "strings"

const (
	// ConstructorName is the member name excluded from every generated stub set.
	ConstructorName = "__construct"

	// PrivatePrefix marks members that are callable but not meant for remote use.
	PrivatePrefix = "_"

	// classPathSegment is stripped from record paths when forming the dispatcher class path.
	classPathSegment = "View"
)

// Parameter describes one resolved method parameter.
type Parameter struct {
	// Name is the parameter name without any sigil. Never empty.
	Name string

	// Optional is true if the parameter may be omitted at the call site.
	Optional bool

	// Type is the resolved parameter type.
	Type TypeDescriptor
}

// MethodSignature describes one remotely callable method.
type MethodSignature struct {
	// Name is the method name.
	Name string

	// Parameters lists the parameters in declaration order.
	Parameters []Parameter

	// Returns is the resolved return type.
	Returns TypeDescriptor

	// ClassPath is the dispatcher's identifier for the owning class.
	// See ClassPath().
	ClassPath string

	// Doc is the free-text summary of the method's doc comment, if any.
	Doc string
}

// ClassRecord groups the signatures emitted into a single target file.
type ClassRecord struct {
	// Name is the short class name (e.g. "EcommerceView").
	Name string

	// Path is the slash-delimited record path (e.g. "Admin/UserView").
	Path string

	// Methods lists the remotely callable methods in source order.
	Methods []MethodSignature
}

// MethodNames returns the method names in order.
func (r ClassRecord) MethodNames() []string {
	names := make([]string, len(r.Methods))
	for i, m := range r.Methods {
		names[i] = m.Name
	}
	return names
}

// IsRemoteCallable reports whether a member with the given name may appear in a stub set.
// The constructor and names starting with PrivatePrefix are excluded.
func IsRemoteCallable(name string) bool {
	if name == "" || name == ConstructorName {
		return false
	}
	return !strings.HasPrefix(name, PrivatePrefix)
}

// NewMethodSignature builds a MethodSignature for a member of the class at recordPath.
// It returns false if the member is not remotely callable.
func NewMethodSignature(recordPath, name string, params []Parameter, returns TypeDescriptor) (MethodSignature, bool) {
	if !IsRemoteCallable(name) {
		return MethodSignature{}, false
	}
	if returns == nil {
		returns = Unknown()
	}
	ps := make([]Parameter, len(params))
	copy(ps, params)
	for i := range ps {
		if ps[i].Type == nil {
			ps[i].Type = Unknown()
		}
	}
	return MethodSignature{
		Name:       name,
		Parameters: ps,
		Returns:    returns,
		ClassPath:  ClassPath(recordPath),
	}, true
}

// ClassPath converts a slash-delimited record path into the dispatcher class path.
// Path separators become an escaped backslash pair (as it must appear inside a
// double-quoted string literal) and the first "View" is removed.
//
//	ClassPath("EcommerceView")  == `Ecommerce`
//	ClassPath("Admin/UserView") == `Admin\\User`
func ClassPath(recordPath string) string {
	p := strings.Join(strings.Split(recordPath, "/"), `\\`)
	return strings.Replace(p, classPathSegment, "", 1)
}
