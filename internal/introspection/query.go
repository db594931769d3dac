// Package introspection carries the canned schema introspection document
// and the Go shapes its response decodes into.
package introspection

import (
	"github.com/TheRealReal/graphql-client/internal/document"
)

// Query builds the standard schema introspection operation as a document,
// following the shape GraphiQL ships: the __schema selection plus the
// FullType, InputValue, and TypeRef fragments.
func Query() document.Document {
	doc, err := document.NewQuery("IntrospectionQuery", nil,
		[]document.Field{schemaField()},
		fullTypeFragment(), inputValueFragment(), typeRefFragment(),
	)
	if err != nil {
		// all inputs are static; a failure here is a programming error
		panic(err)
	}
	return doc
}

func schemaField() document.Field {
	return document.NewField("__schema", document.WithSelections(
		document.NewField("queryType", document.WithSelections(document.NewField("name"))),
		document.NewField("mutationType", document.WithSelections(document.NewField("name"))),
		document.NewField("subscriptionType", document.WithSelections(document.NewField("name"))),
		document.NewField("types", document.WithSelections(document.NewFragmentRef("FullType"))),
		document.NewField("directives", document.WithSelections(
			document.NewField("name"),
			document.NewField("description"),
			document.NewField("locations"),
			document.NewField("args", document.WithSelections(document.NewFragmentRef("InputValue"))),
		)),
	))
}

func fullTypeFragment() document.Fragment {
	return document.NewFragment("FullType", "__Type",
		document.NewField("kind"),
		document.NewField("name"),
		document.NewField("description"),
		document.NewField("fields",
			document.WithArguments(document.Arg("includeDeprecated", true)),
			document.WithSelections(
				document.NewField("name"),
				document.NewField("description"),
				document.NewField("args", document.WithSelections(document.NewFragmentRef("InputValue"))),
				document.NewField("type", document.WithSelections(document.NewFragmentRef("TypeRef"))),
				document.NewField("isDeprecated"),
				document.NewField("deprecationReason"),
			),
		),
		document.NewField("inputFields", document.WithSelections(document.NewFragmentRef("InputValue"))),
		document.NewField("interfaces", document.WithSelections(document.NewFragmentRef("TypeRef"))),
		document.NewField("enumValues",
			document.WithArguments(document.Arg("includeDeprecated", true)),
			document.WithSelections(
				document.NewField("name"),
				document.NewField("description"),
				document.NewField("isDeprecated"),
				document.NewField("deprecationReason"),
			),
		),
		document.NewField("possibleTypes", document.WithSelections(document.NewFragmentRef("TypeRef"))),
	)
}

func inputValueFragment() document.Fragment {
	return document.NewFragment("InputValue", "__InputValue",
		document.NewField("name"),
		document.NewField("description"),
		document.NewField("type", document.WithSelections(document.NewFragmentRef("TypeRef"))),
		document.NewField("defaultValue"),
	)
}

// typeRefFragment unrolls ofType to the conventional depth of seven, enough
// for the deepest wrapper chains produced in practice.
func typeRefFragment() document.Fragment {
	sels := []document.Selection{
		document.NewField("kind"),
		document.NewField("name"),
	}
	for i := 0; i < 7; i++ {
		sels = []document.Selection{
			document.NewField("kind"),
			document.NewField("name"),
			document.NewField("ofType", document.WithSelections(sels...)),
		}
	}
	return document.NewFragment("TypeRef", "__Type", sels...)
}
