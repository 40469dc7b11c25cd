// Package typescript renders resolved method signatures as TypeScript
// remote-call stubs.
package typescript

import (
	"bytes"
	"strings"

	"github.com/broady/stubgen/stubgen/ir"
)

// callDiscriminator is the "type" value the dispatcher expects for a
// class method invocation.
const callDiscriminator = "2"

// dispatcher is the global object performing remote calls.
const dispatcher = "xajax"

// unknownReturn replaces a return type that renders to the bare unknown token,
// forcing callers to narrow the response.
const unknownReturn = "unknown"

// Emitter writes TypeScript stubs.
type Emitter struct {
	config   Config
	renderer Renderer
}

// NewEmitter returns an Emitter for cfg.
func NewEmitter(cfg Config) *Emitter {
	return &Emitter{
		config:   cfg,
		renderer: Renderer{UnknownType: cfg.unknownType()},
	}
}

// EmitStub returns the stub declaration for one method.
//
//	const name = async function <TResponse = R>(
//		a: A,
//		b?: B
//	) {
//		return xajax.call({...}, [a, b]) as TResponse;
//	}
func (e *Emitter) EmitStub(m ir.MethodSignature) string {
	var buf bytes.Buffer
	e.emitStub(&buf, m, newScope().bind(m.Name))
	return buf.String()
}

// emitStub writes the stub for m bound to the local name.
func (e *Emitter) emitStub(buf *bytes.Buffer, m ir.MethodSignature, local string) {
	if e.config.EmitComments && m.Doc != "" {
		e.emitJSDoc(buf, m.Doc)
	}

	buf.WriteString("const ")
	buf.WriteString(local)
	buf.WriteString(" = async function <TResponse = ")
	buf.WriteString(e.returnType(m.Returns))
	buf.WriteString(">(")

	params := newScope()
	names := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		names[i] = params.bind(p.Name)
		if i == 0 {
			buf.WriteString("\n")
		}
		buf.WriteString("\t")
		buf.WriteString(names[i])
		if p.Optional {
			buf.WriteString("?")
		}
		buf.WriteString(": ")
		buf.WriteString(e.renderer.Render(p.Type))
		if i < len(m.Parameters)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}

	buf.WriteString(") {\n")
	buf.WriteString("\treturn " + dispatcher + ".call({\n")
	buf.WriteString("\t\t\"type\": " + callDiscriminator + ",\n")
	buf.WriteString("\t\t\"func\": {\n")
	buf.WriteString("\t\t\t\"clss\": \"" + m.ClassPath + "\",\n")
	buf.WriteString("\t\t\t\"metd\": \"" + m.Name + "\"\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t}, [")
	buf.WriteString(strings.Join(names, ", "))
	buf.WriteString("]) as TResponse;\n")
	buf.WriteString("}")
}

// returnType renders the response type parameter default.
func (e *Emitter) returnType(d ir.TypeDescriptor) string {
	s := e.renderer.Render(d)
	if s == e.renderer.unknown() {
		return unknownReturn
	}
	return s
}

// EmitModule returns the contents of the stub file for one record: the
// frontmatter, one stub per method, and an exported object collecting them.
func (e *Emitter) EmitModule(rec ir.ClassRecord) []byte {
	var buf bytes.Buffer

	if fm := strings.TrimRight(e.config.Frontmatter, "\n"); fm != "" {
		buf.WriteString(fm)
		buf.WriteString("\n")
	}

	module := newScope()
	exported := module.bind(upperFirst(rec.Name))
	locals := make([]string, len(rec.Methods))
	for i, m := range rec.Methods {
		locals[i] = module.bind(m.Name)
		buf.WriteString("\n")
		e.emitStub(&buf, m, locals[i])
		buf.WriteString("\n")
	}

	buf.WriteString("\nexport const ")
	buf.WriteString(exported)
	if len(rec.Methods) == 0 {
		buf.WriteString(" = {}\n")
		return buf.Bytes()
	}
	buf.WriteString(" = {\n")
	for i, m := range rec.Methods {
		buf.WriteString("\t")
		if local := locals[i]; local != m.Name {
			buf.WriteString(propertyKey(m.Name) + ": " + local)
		} else {
			buf.WriteString(m.Name)
		}
		if i < len(rec.Methods)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

// emitJSDoc emits a documentation comment.
func (e *Emitter) emitJSDoc(buf *bytes.Buffer, doc string) {
	lines := strings.Split(strings.TrimSpace(doc), "\n")
	if len(lines) == 1 {
		buf.WriteString("/** ")
		buf.WriteString(strings.TrimSpace(lines[0]))
		buf.WriteString(" */\n")
		return
	}

	buf.WriteString("/**\n")
	for _, line := range lines {
		buf.WriteString(" * ")
		buf.WriteString(strings.TrimSpace(line))
		buf.WriteString("\n")
	}
	buf.WriteString(" */\n")
}
