package document

import (
	"fmt"
	"strconv"
	"strings"
)

// VariableConflictError reports variable declarations that collide across
// the documents being merged. Names holds one entry per colliding pair, so a
// name can appear more than once.
type VariableConflictError struct {
	Names []string
}

func (e *VariableConflictError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = strconv.Quote(n)
	}
	return "conflicting variable declarations: " + strings.Join(quoted, ", ")
}

// Merge combines two documents of the same operation kind into one named
// name: fields and fragments are concatenated (a's first), variable
// declarations are unioned. A variable name declared by both documents is a
// conflict and fails the merge; two fragments independently built against
// the same variable name may well disagree on its type, and dropping one
// silently would change query semantics.
func Merge(a, b Document, name string) (Document, error) {
	if a.Operation != b.Operation {
		return Document{}, fmt.Errorf("cannot merge %s document %q with %s document %q",
			a.Operation, a.Name, b.Operation, b.Name)
	}
	if name == "" {
		return Document{}, fmt.Errorf("merged document name is required")
	}
	vars, err := mergeVariables(a.Variables, b.Variables)
	if err != nil {
		return Document{}, err
	}
	out := Document{
		Operation: a.Operation,
		Name:      name,
		Variables: vars,
	}
	out.Fields = append(append([]Field(nil), a.Fields...), b.Fields...)
	out.Fragments = append(append([]Fragment(nil), a.Fragments...), b.Fragments...)
	return out, nil
}

// mergeVariables unions two declaration sets after checking every cross pair
// for a normalized-name collision. Duplicates *within* one input set are out
// of scope here and pass through unchanged.
func mergeVariables(a, b []Variable) ([]Variable, error) {
	var conflicts []string
	for _, x := range a {
		for _, y := range b {
			if x.key() == y.key() {
				conflicts = append(conflicts, x.key())
			}
		}
	}
	if len(conflicts) > 0 {
		return nil, &VariableConflictError{Names: conflicts}
	}
	if len(a)+len(b) == 0 {
		return nil, nil
	}
	out := make([]Variable, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out, nil
}

// MergeMany folds a list of documents into one. Each document after the
// first is merged *in front of* the accumulated result, so the final
// field/fragment order is the reverse of the input order while each
// document's own internal order is preserved. The first variable conflict
// aborts the fold.
//
// With an empty name the result keeps the first document's name; a single
// document is returned as-is (renamed when name is given).
func MergeMany(docs []Document, name string) (Document, error) {
	if len(docs) == 0 {
		return Document{}, fmt.Errorf("no documents to merge")
	}
	acc := docs[0]
	if name != "" {
		acc.Name = name
	}
	for _, d := range docs[1:] {
		merged, err := Merge(d, acc, acc.Name)
		if err != nil {
			return Document{}, err
		}
		acc = merged
	}
	return acc, nil
}
