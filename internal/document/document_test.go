package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewQueryValidation(t *testing.T) {
	t.Run("name required", func(t *testing.T) {
		_, err := NewQuery("", nil, []Field{NewField("viewer")})
		require.Error(t, err)
		require.Contains(t, err.Error(), "name is required")
	})

	t.Run("variable type required", func(t *testing.T) {
		_, err := NewQuery("Q", []Variable{{Name: "id"}}, []Field{NewField("viewer")})
		require.Error(t, err)
		require.Contains(t, err.Error(), `variable "id"`)
	})

	t.Run("field name required", func(t *testing.T) {
		_, err := NewQuery("Q", nil, []Field{{}})
		require.Error(t, err)
	})

	t.Run("nested field name required", func(t *testing.T) {
		_, err := NewQuery("Q", nil, []Field{
			NewField("viewer", WithSelections(Field{})),
		})
		require.Error(t, err)
	})

	t.Run("fragment needs selections", func(t *testing.T) {
		_, err := NewQuery("Q", nil, []Field{NewField("viewer")}, Fragment{Name: "f", On: "T"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "selection set is required")
	})

	t.Run("mutation shares the same checks", func(t *testing.T) {
		_, err := NewMutation("", nil, nil)
		require.Error(t, err)

		doc, err := NewMutation("M", nil, []Field{NewField("save")})
		require.NoError(t, err)
		require.Equal(t, Mutation, doc.Operation)
		require.Equal(t, "M", doc.Name)
	})
}

func TestAddPrepends(t *testing.T) {
	base, err := NewQuery("Q",
		[]Variable{NewVariable("a", "Int")},
		[]Field{NewField("one"), NewField("two")},
		NewFragment("frag", "T", NewField("x")),
	)
	require.NoError(t, err)

	t.Run("AddField", func(t *testing.T) {
		got, err := base.AddField(NewField("zero"))
		require.NoError(t, err)
		want := []Field{NewField("zero"), NewField("one"), NewField("two")}
		if diff := cmp.Diff(want, got.Fields); diff != "" {
			t.Fatalf("fields mismatch (-want +got):\n%s", diff)
		}
		// receiver untouched
		require.Len(t, base.Fields, 2)
		require.Equal(t, "one", base.Fields[0].Name)
	})

	t.Run("AddFragment", func(t *testing.T) {
		got, err := base.AddFragment(NewFragment("first", "T", NewField("y")))
		require.NoError(t, err)
		require.Len(t, got.Fragments, 2)
		require.Equal(t, "first", got.Fragments[0].Name)
		require.Equal(t, "frag", got.Fragments[1].Name)
		require.Len(t, base.Fragments, 1)
	})

	t.Run("AddVariable", func(t *testing.T) {
		got, err := base.AddVariable(NewVariable("b", "String!"))
		require.NoError(t, err)
		want := []Variable{NewVariable("b", "String!"), NewVariable("a", "Int")}
		if diff := cmp.Diff(want, got.Variables); diff != "" {
			t.Fatalf("variables mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid element rejected", func(t *testing.T) {
		_, err := base.AddField(Field{})
		require.Error(t, err)
		_, err = base.AddFragment(Fragment{Name: "f"})
		require.Error(t, err)
		_, err = base.AddVariable(Variable{Name: "$"})
		require.Error(t, err)
	})
}

func TestBuilders(t *testing.T) {
	t.Run("field options", func(t *testing.T) {
		f := NewField("user",
			WithAlias("me"),
			WithArguments(Arg("id", Var("id"))),
			WithSelections(NewField("name")),
			WithDirectives(Dir("@include", Arg("if", Var("cond")))),
		)
		require.Equal(t, "me", f.Alias)
		require.Equal(t, Arguments{{Name: "id", Value: Var("id")}}, f.Arguments)
		require.Equal(t, "include", f.Directives[0].Name)
	})

	t.Run("empty arguments normalized to absent", func(t *testing.T) {
		f := NewField("user", WithArguments())
		require.Nil(t, f.Arguments)
	})

	t.Run("fragment ref strips spread prefix", func(t *testing.T) {
		require.Equal(t, FragmentRef{Name: "someFields"}, NewFragmentRef("...someFields"))
		require.Equal(t, FragmentRef{Name: "someFields"}, NewFragmentRef("someFields"))
	})

	t.Run("variable default", func(t *testing.T) {
		v := NewVariable("input", "Integer").WithDefault(10)
		require.Equal(t, Variable{Name: "input", Type: "Integer", Default: 10}, v)
	})
}

func TestVariableNameNormalization(t *testing.T) {
	require.Equal(t, "id", Variable{Name: "$id"}.key())
	require.Equal(t, "id", Variable{Name: "id"}.key())
}
