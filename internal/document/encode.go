package document

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Encode renders a well-formed Document as GraphQL query text.
// The output is deterministic: the same document encodes to the same bytes
// on every call. Encoding a document that violates the model invariants
// (only possible by bypassing the constructors) is undefined.
func Encode(d Document) string {
	var b strings.Builder

	b.WriteString(string(d.Operation))
	b.WriteString(" ")
	b.WriteString(d.Name)
	if len(d.Variables) > 0 {
		b.WriteString("(")
		for i, v := range d.Variables {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("$")
			b.WriteString(v.key())
			b.WriteString(": ")
			b.WriteString(v.Type)
			if v.Default != nil {
				b.WriteString(" = ")
				b.WriteString(encodeValue(v.Default))
			}
		}
		b.WriteString(")")
	}
	b.WriteString(" {\n")
	for i, f := range d.Fields {
		if i > 0 {
			b.WriteString("\n")
		}
		encodeSelection(&b, f, 1)
	}
	b.WriteString("\n}")

	if len(d.Fragments) > 0 {
		b.WriteString("\n\n")
		for i, fr := range d.Fragments {
			if i > 0 {
				b.WriteString("\n")
			}
			encodeFragment(&b, fr)
		}
	}
	return b.String()
}

// ----- encode helpers -----

func encodeFragment(b *strings.Builder, f Fragment) {
	b.WriteString("fragment ")
	b.WriteString(f.Name)
	b.WriteString(" on ")
	b.WriteString(f.On)
	b.WriteString(" {\n")
	encodeSelections(b, f.Selections, 1)
	b.WriteString("\n}")
}

func encodeSelections(b *strings.Builder, sels []Selection, depth int) {
	for i, s := range sels {
		if i > 0 {
			b.WriteString("\n")
		}
		encodeSelection(b, s, depth)
	}
}

func encodeSelection(b *strings.Builder, s Selection, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := s.(type) {
	case Field:
		b.WriteString(indent)
		if n.Alias != "" {
			b.WriteString(n.Alias)
			b.WriteString(": ")
		}
		b.WriteString(n.Name)
		if len(n.Arguments) > 0 {
			b.WriteString("(")
			encodeArguments(b, n.Arguments)
			b.WriteString(")")
		}
		for _, d := range n.Directives {
			b.WriteString(" @")
			b.WriteString(d.Name)
			if len(d.Arguments) > 0 {
				b.WriteString("(")
				encodeArguments(b, d.Arguments)
				b.WriteString(")")
			}
		}
		if len(n.Selections) > 0 {
			b.WriteString(" {\n")
			encodeSelections(b, n.Selections, depth+1)
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString("}")
		}
	case FragmentRef:
		b.WriteString(indent)
		b.WriteString("...")
		b.WriteString(n.Name)
	case InlineFragment:
		b.WriteString(indent)
		b.WriteString("... on ")
		b.WriteString(n.On)
		b.WriteString(" {\n")
		encodeSelections(b, n.Selections, depth+1)
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString("}")
	}
}

func encodeArguments(b *strings.Builder, args Arguments) {
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name)
		b.WriteString(": ")
		b.WriteString(encodeValue(a.Value))
	}
}

// encodeValue renders one argument or default value.
func encodeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case Enum:
		return string(v)
	case Var:
		return "$" + strings.TrimPrefix(string(v), "$")
	case Arguments:
		var parts []string
		for _, a := range v {
			parts = append(parts, a.Name+": "+encodeValue(a.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		// Compatibility: list elements are concatenated with no separator,
		// exactly as consumers of this wire format expect.
		// TODO: revisit with the schema owners whether a comma-joined,
		// bracketed form can be rolled out without breaking them.
		var b strings.Builder
		for _, item := range v {
			b.WriteString(encodeValue(item))
		}
		return b.String()
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+encodeValue(v[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}
