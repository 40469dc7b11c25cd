package typescript

// DefaultUnknownType is the token rendered for types no signal resolved.
const DefaultUnknownType = "any"

// Config controls TypeScript stub emission.
type Config struct {
	// UnknownType is the token rendered for the unknown type.
	// Defaults to DefaultUnknownType.
	UnknownType string

	// Frontmatter is written at the top of every module file, e.g. an
	// import of the dispatcher object or a "generated" banner.
	Frontmatter string

	// EmitComments writes a JSDoc block with the method summary above each stub.
	EmitComments bool
}

func (c Config) unknownType() string {
	if c.UnknownType == "" {
		return DefaultUnknownType
	}
	return c.UnknownType
}
