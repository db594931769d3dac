// Package document implements the immutable GraphQL query document model:
// operations, selection trees, fragment definitions, and variable
// declarations, together with the merge engine (merge.go) and the text
// encoder (encode.go).
//
// Documents are values. Every mutator returns a new Document and leaves its
// receiver untouched, so concurrent building and encoding need no
// synchronization.
package document

import (
	"fmt"
	"strings"
)

// Operation is the kind of a GraphQL operation.
type Operation string

const (
	Query    Operation = "query"
	Mutation Operation = "mutation"
)

// Variable declares a named, typed input slot on a Document.
// The declared type is carried as raw GraphQL type syntax (e.g. "String!").
// A nil Default means the declaration has no default value.
type Variable struct {
	Name    string
	Type    string
	Default any
}

// NewVariable declares a variable without a default value.
func NewVariable(name, typ string) Variable {
	return Variable{Name: name, Type: typ}
}

// WithDefault returns a copy of v carrying the given default value.
func (v Variable) WithDefault(val any) Variable {
	v.Default = val
	return v
}

// key returns the normalized variable name: a leading "$" is stripped, so
// "$id" and "id" declare the same variable.
func (v Variable) key() string {
	return strings.TrimPrefix(v.Name, "$")
}

func (v Variable) validate() error {
	if v.key() == "" {
		return fmt.Errorf("variable name is required")
	}
	if v.Type == "" {
		return fmt.Errorf("variable %q: type is required", v.key())
	}
	return nil
}

// Document is one named query or mutation operation. Top-level selections
// are fields only; fragment definitions live in Fragments and are referenced
// from the selection tree via FragmentRef nodes.
type Document struct {
	Operation Operation
	Name      string
	Fields    []Field
	Fragments []Fragment
	Variables []Variable
}

// NewQuery constructs a query Document. The name is required: operations are
// always named so they stay traceable through logs and traces downstream.
func NewQuery(name string, vars []Variable, fields []Field, fragments ...Fragment) (Document, error) {
	return newDocument(Query, name, vars, fields, fragments)
}

// NewMutation constructs a mutation Document.
func NewMutation(name string, vars []Variable, fields []Field, fragments ...Fragment) (Document, error) {
	return newDocument(Mutation, name, vars, fields, fragments)
}

func newDocument(op Operation, name string, vars []Variable, fields []Field, fragments []Fragment) (Document, error) {
	d := Document{Operation: op, Name: name}
	if name == "" {
		return Document{}, fmt.Errorf("document name is required")
	}
	for _, v := range vars {
		if err := v.validate(); err != nil {
			return Document{}, err
		}
	}
	for _, f := range fields {
		if err := f.validate(); err != nil {
			return Document{}, err
		}
	}
	for _, fr := range fragments {
		if err := fr.validate(); err != nil {
			return Document{}, err
		}
	}
	d.Variables = append([]Variable(nil), vars...)
	d.Fields = append([]Field(nil), fields...)
	d.Fragments = append([]Fragment(nil), fragments...)
	return d, nil
}

// AddField returns a new Document with f prepended to the field list.
// The receiver is not modified.
func (d Document) AddField(f Field) (Document, error) {
	if err := f.validate(); err != nil {
		return Document{}, err
	}
	out := d
	out.Fields = append([]Field{f}, d.Fields...)
	return out, nil
}

// AddFragment returns a new Document with fr prepended to the fragment list.
func (d Document) AddFragment(fr Fragment) (Document, error) {
	if err := fr.validate(); err != nil {
		return Document{}, err
	}
	out := d
	out.Fragments = append([]Fragment{fr}, d.Fragments...)
	return out, nil
}

// AddVariable returns a new Document with v prepended to the variable
// declarations. No collision check happens here; collisions are detected
// when documents are merged.
func (d Document) AddVariable(v Variable) (Document, error) {
	if err := v.validate(); err != nil {
		return Document{}, err
	}
	out := d
	out.Variables = append([]Variable{v}, d.Variables...)
	return out, nil
}
