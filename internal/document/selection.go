package document

import (
	"fmt"
	"strings"
)

// Selection is one node of a document's selection tree: a Field, a
// FragmentRef, or an InlineFragment. The interface is closed; each variant
// carries only the fields meaningful for its kind.
//
// Selections are stored and matched as values (the builders below return
// values), never as pointers.
type Selection interface {
	isSelection()
	validate() error
}

// Field selects a single field, optionally aliased, with arguments,
// directives, and a nested selection set.
type Field struct {
	Name       string
	Alias      string
	Arguments  Arguments
	Directives []Directive
	Selections []Selection
}

func (Field) isSelection() {}

func (f Field) validate() error {
	if f.Name == "" {
		return fmt.Errorf("field name is required")
	}
	return validateSelections(f.Selections)
}

// FragmentRef is a spread ("...name") referring to a Fragment declared on
// the same Document.
type FragmentRef struct {
	Name string
}

func (FragmentRef) isSelection() {}

func (r FragmentRef) validate() error {
	if r.Name == "" {
		return fmt.Errorf("fragment reference name is required")
	}
	return nil
}

// InlineFragment is an unnamed fragment with a type condition
// ("... on Type { ... }").
type InlineFragment struct {
	On         string
	Selections []Selection
}

func (InlineFragment) isSelection() {}

func (f InlineFragment) validate() error {
	if f.On == "" {
		return fmt.Errorf("inline fragment type condition is required")
	}
	if len(f.Selections) == 0 {
		return fmt.Errorf("inline fragment on %q: selection set is required", f.On)
	}
	return validateSelections(f.Selections)
}

// Fragment is a named fragment definition ("fragment name on Type { ... }").
// It is not a Selection: definitions live on Document.Fragments and are
// pulled into selection trees through FragmentRef nodes.
type Fragment struct {
	Name       string
	On         string
	Selections []Selection
}

func (f Fragment) validate() error {
	if f.Name == "" {
		return fmt.Errorf("fragment name is required")
	}
	if f.On == "" {
		return fmt.Errorf("fragment %q: type condition is required", f.Name)
	}
	if len(f.Selections) == 0 {
		return fmt.Errorf("fragment %q: selection set is required", f.Name)
	}
	return validateSelections(f.Selections)
}

func validateSelections(sels []Selection) error {
	for _, s := range sels {
		if s == nil {
			return fmt.Errorf("selection must not be nil")
		}
		if err := s.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Argument is one entry of an ordered argument mapping.
type Argument struct {
	Name  string
	Value any
}

// Arguments preserves argument order as written. The encoder renders entries
// in slice order; an Arguments value can also be used as an argument *value*
// to spell an object literal with a fixed key order.
type Arguments []Argument

// Arg builds one Argument.
func Arg(name string, value any) Argument {
	return Argument{Name: name, Value: value}
}

// Directive is a directive application on a field ("@name" or
// "@name(args)"). A leading "@" in the name is accepted and normalized away.
type Directive struct {
	Name      string
	Arguments Arguments
}

// Dir builds a Directive.
func Dir(name string, args ...Argument) Directive {
	return Directive{Name: strings.TrimPrefix(name, "@"), Arguments: args}
}

// Enum marks a value as a schema enum literal: it renders unquoted, so it is
// not mistaken for a string.
type Enum string

// Var marks an argument value as a variable reference; Var("id") renders as
// "$id". A leading "$" is accepted and normalized away.
type Var string

// FieldOption configures a Field built by NewField.
type FieldOption func(*Field)

// WithAlias sets the field alias.
func WithAlias(alias string) FieldOption {
	return func(f *Field) { f.Alias = alias }
}

// WithArguments sets the field arguments in the given order. Passing no
// arguments leaves the field without an argument list.
func WithArguments(args ...Argument) FieldOption {
	return func(f *Field) {
		if len(args) == 0 {
			f.Arguments = nil
			return
		}
		f.Arguments = args
	}
}

// WithSelections sets the field's nested selection set.
func WithSelections(sels ...Selection) FieldOption {
	return func(f *Field) { f.Selections = sels }
}

// WithDirectives sets the field directives in the given order.
func WithDirectives(ds ...Directive) FieldOption {
	return func(f *Field) { f.Directives = ds }
}

// NewField builds a field node.
func NewField(name string, opts ...FieldOption) Field {
	f := Field{Name: name}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// NewFragmentRef builds a reference to a named fragment.
func NewFragmentRef(name string) FragmentRef {
	return FragmentRef{Name: strings.TrimPrefix(name, "...")}
}

// NewFragment builds a named fragment definition.
func NewFragment(name, on string, sels ...Selection) Fragment {
	return Fragment{Name: name, On: on, Selections: sels}
}

// NewInlineFragment builds an inline fragment.
func NewInlineFragment(on string, sels ...Selection) InlineFragment {
	return InlineFragment{On: on, Selections: sels}
}
