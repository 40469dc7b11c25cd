// Package provider implements signature readers that enumerate remotely
// callable classes and the raw annotation signals of their methods.
//
// Providers never resolve types themselves: they report what the source
// declares (native hints, doc-comment types, default values) and leave
// resolution to the annotation package.
package provider

import (
	"context"

	"github.com/broady/stubgen/stubgen/annotation"
	"github.com/broady/stubgen/stubgen/ir"
)

// Provider enumerates class records.
type Provider interface {
	// Name returns the provider's identifier (e.g., "command", "php").
	Name() string

	// Records enumerates the class records. An error means enumeration
	// failed as a whole; per-record problems are reported as warnings.
	Records(ctx context.Context) (*Result, error)
}

// Result is the output of a Provider.
type Result struct {
	Records  []Record
	Warnings []ir.Warning
}

// Record is one class and its public methods, in declaration order.
type Record struct {
	// Name is the short class name.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Path is the slash-separated record path, also the output file stem.
	Path string `json:"path" yaml:"path" validate:"required"`

	Methods []Method `json:"methods" yaml:"methods"`

	// Source is where the class is declared, when the provider knows it.
	Source *ir.Source `json:"-" yaml:"-"`
}

// Method is one public method with its raw signals.
type Method struct {
	Name       string      `json:"name" yaml:"name" validate:"required"`
	Doc        string      `json:"doc,omitempty" yaml:"doc,omitempty"`
	Parameters []Parameter `json:"parameters" yaml:"parameters"`
	Return     ReturnType  `json:"returnType" yaml:"returnType"`
}

// Parameter is one method parameter with its raw signals.
type Parameter struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	DocType  string `json:"docType,omitempty" yaml:"docType,omitempty"`
	Optional bool   `json:"optional" yaml:"optional"`

	// Default is nil when the parameter has no default value.
	Default *annotation.Literal `json:"-" yaml:"-"`
}

// Signals returns the parameter's annotation signals.
func (p Parameter) Signals() annotation.Signals {
	return annotation.Signals{
		Name:       p.Name,
		NativeHint: p.Type,
		DocType:    p.DocType,
		Optional:   p.Optional,
		Default:    p.Default,
	}
}

// ReturnType holds the raw signals of a method's return value.
type ReturnType struct {
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	DocType string `json:"docType,omitempty" yaml:"docType,omitempty"`
}

// Signals returns the return value's annotation signals.
func (r ReturnType) Signals() annotation.Signals {
	return annotation.Signals{NativeHint: r.Type, DocType: r.DocType}
}
