package ir

import "testing"

func TestIsRemoteCallable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"obterSelectEcommerces", true},
		{"__construct", false},
		{"_montarSelectEcommerces", false},
		{"__toString", false},
		{"", false},
		{"get_", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRemoteCallable(tt.name); got != tt.want {
				t.Errorf("IsRemoteCallable(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"EcommerceView", "Ecommerce"},
		{"Admin/UserView", `Admin\\User`},
		{"ViewCounterView", "CounterView"},
		{"Reports", "Reports"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ClassPath(tt.path); got != tt.want {
				t.Errorf("ClassPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewMethodSignature(t *testing.T) {
	params := []Parameter{
		{Name: "id", Type: Number()},
		{Name: "opts", Optional: true},
	}

	m, ok := NewMethodSignature("EcommerceView", "obter", params, nil)
	if !ok {
		t.Fatal("NewMethodSignature() rejected a public method")
	}
	if m.ClassPath != "Ecommerce" {
		t.Errorf("ClassPath = %q, want %q", m.ClassPath, "Ecommerce")
	}
	if !IsUnknown(m.Returns) {
		t.Errorf("Returns = %v, want unknown", m.Returns)
	}
	if !IsUnknown(m.Parameters[1].Type) {
		t.Errorf("Parameters[1].Type = %v, want unknown", m.Parameters[1].Type)
	}

	// The caller's slice must not be modified.
	if params[1].Type != nil {
		t.Error("NewMethodSignature() mutated the input parameters")
	}

	if _, ok := NewMethodSignature("EcommerceView", "__construct", nil, nil); ok {
		t.Error("NewMethodSignature() accepted the constructor")
	}
	if _, ok := NewMethodSignature("EcommerceView", "_privado", nil, nil); ok {
		t.Error("NewMethodSignature() accepted a privacy-prefixed method")
	}
}

func TestClassRecord_MethodNames(t *testing.T) {
	r := ClassRecord{
		Methods: []MethodSignature{{Name: "a"}, {Name: "b"}},
	}
	names := r.MethodNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("MethodNames() = %v, want [a b]", names)
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Code: WarnNoClass, Message: "no class declared", Source: &Source{File: "x.php"}}
	if got, want := w.String(), "x.php: no_class: no class declared"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	w.Source.Line = 12
	if got, want := w.String(), "x.php:12: no_class: no class declared"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	w.Source = nil
	if got, want := w.String(), "no_class: no class declared"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
