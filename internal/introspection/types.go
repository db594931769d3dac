package introspection

// Response shapes for decoding an introspection result. Field names follow
// the __schema meta-type, so the types unmarshal straight from the JSON the
// server hands back.

type Result struct {
	Schema Schema `json:"__schema"`
}

type Schema struct {
	QueryType        *NamedTypeRef `json:"queryType"`
	MutationType     *NamedTypeRef `json:"mutationType"`
	SubscriptionType *NamedTypeRef `json:"subscriptionType"`
	Types            []Type        `json:"types"`
	Directives       []Directive   `json:"directives"`
}

type NamedTypeRef struct {
	Name string `json:"name"`
}

type Type struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Fields        []Field      `json:"fields"`
	InputFields   []InputValue `json:"inputFields"`
	Interfaces    []TypeRef    `json:"interfaces"`
	EnumValues    []EnumValue  `json:"enumValues"`
	PossibleTypes []TypeRef    `json:"possibleTypes"`
}

type Field struct {
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Args              []InputValue `json:"args"`
	Type              TypeRef      `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason string       `json:"deprecationReason"`
}

type InputValue struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Type         TypeRef `json:"type"`
	DefaultValue *string `json:"defaultValue"`
}

type EnumValue struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsDeprecated      bool   `json:"isDeprecated"`
	DeprecationReason string `json:"deprecationReason"`
}

type Directive struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Locations   []string     `json:"locations"`
	Args        []InputValue `json:"args"`
}

// TypeRef is one link of an ofType wrapper chain (NON_NULL and LIST wrap
// their inner type).
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

// String renders the reference in GraphQL type syntax.
func (t TypeRef) String() string {
	switch t.Kind {
	case "NON_NULL":
		if t.OfType == nil {
			return ""
		}
		return t.OfType.String() + "!"
	case "LIST":
		if t.OfType == nil {
			return ""
		}
		return "[" + t.OfType.String() + "]"
	default:
		return t.Name
	}
}
