package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/broady/stubgen/stubgen/annotation"
	"github.com/broady/stubgen/stubgen/ir"
)

// Format is a serialization format for signature documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension. Unknown extensions are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses a signature document: a sequence of records
//
//	[{name, path, methods: [{name, parameters: [{name, type?, docType?,
//	  optional, defaultValue?}], returnType: {type?, docType?}}]}]
//
// Missing optional fields are absent signals. Structural problems inside a
// record skip that record or method and are reported as warnings; only an
// unparsable document or a non-sequence root is an error. Empty input is an
// empty sequence. origin names the document in warnings.
func Decode(data []byte, format Format, origin string) (*Result, error) {
	var root any
	if len(bytes.TrimSpace(data)) == 0 {
		root = []any{}
	} else {
		switch format {
		case FormatYAML:
			if err := yaml.Unmarshal(data, &root); err != nil {
				return nil, fmt.Errorf("parse %s: %w", origin, err)
			}
		default:
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.UseNumber()
			if err := dec.Decode(&root); err != nil {
				return nil, fmt.Errorf("parse %s: %w", origin, err)
			}
		}
	}

	items, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("parse %s: expected a sequence of records, got %s", origin, shapeOf(root))
	}

	d := &decoder{origin: origin}
	res := &Result{Records: make([]Record, 0, len(items))}
	for i, item := range items {
		if rec, ok := d.record(i, item); ok {
			res.Records = append(res.Records, rec)
		}
	}
	res.Warnings = d.warnings
	return res, nil
}

type decoder struct {
	origin   string
	warnings []ir.Warning
}

func (d *decoder) warn(code, record, member, format string, args ...any) {
	w := ir.Warning{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Record:  record,
		Member:  member,
	}
	if d.origin != "" {
		w.Source = &ir.Source{File: d.origin}
	}
	d.warnings = append(d.warnings, w)
}

func (d *decoder) record(i int, v any) (Record, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		d.warn(ir.WarnInvalidRecord, "", "", "record %d is %s, not an object", i, shapeOf(v))
		return Record{}, false
	}

	rec := Record{Name: stringField(obj, "name"), Path: stringField(obj, "path")}
	if err := validate.Struct(rec); err != nil {
		d.warn(ir.WarnInvalidRecord, rec.Name, "", "record %d: %v", i, err)
		return Record{}, false
	}

	methods, ok := obj["methods"].([]any)
	if !ok {
		d.warn(ir.WarnInvalidMethods, rec.Name, "", "methods of %s is %s, not a sequence", rec.Name, shapeOf(obj["methods"]))
		return Record{}, false
	}

	rec.Methods = make([]Method, 0, len(methods))
	for j, mv := range methods {
		if m, ok := d.method(rec.Name, j, mv); ok {
			rec.Methods = append(rec.Methods, m)
		}
	}
	return rec, true
}

func (d *decoder) method(record string, j int, v any) (Method, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		d.warn(ir.WarnInvalidMethod, record, "", "method %d is %s, not an object", j, shapeOf(v))
		return Method{}, false
	}

	m := Method{Name: stringField(obj, "name"), Doc: stringField(obj, "doc")}
	if err := validate.Struct(m); err != nil {
		d.warn(ir.WarnInvalidMethod, record, "", "method %d: %v", j, err)
		return Method{}, false
	}

	if rt, ok := obj["returnType"].(map[string]any); ok {
		m.Return = ReturnType{Type: stringField(rt, "type"), DocType: stringField(rt, "docType")}
	}

	raw, present := obj["parameters"]
	if !present {
		return m, true
	}
	params, ok := raw.([]any)
	if !ok {
		d.warn(ir.WarnInvalidParameters, record, m.Name, "parameters of %s is %s, not a sequence", m.Name, shapeOf(raw))
		return Method{}, false
	}

	m.Parameters = make([]Parameter, 0, len(params))
	for k, pv := range params {
		p, ok := d.parameter(pv)
		if !ok {
			d.warn(ir.WarnInvalidParameter, record, m.Name, "parameter %d of %s is not an object with a name", k, m.Name)
			return Method{}, false
		}
		m.Parameters = append(m.Parameters, p)
	}
	return m, true
}

func (d *decoder) parameter(v any) (Parameter, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Parameter{}, false
	}
	p := Parameter{
		Name:     stringField(obj, "name"),
		Type:     stringField(obj, "type"),
		DocType:  stringField(obj, "docType"),
		Optional: obj["optional"] == true,
	}
	if validate.Struct(p) != nil {
		return Parameter{}, false
	}
	if dv, ok := obj["defaultValue"]; ok {
		p.Default = &annotation.Literal{Value: dv}
	}
	return p, true
}

// stringField returns obj[key] if it is a string, else "".
func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func shapeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any, map[any]any:
		return "an object"
	case []any:
		return "a sequence"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}
