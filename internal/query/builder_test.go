package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeQueryString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no separator", "http client", "http client"},
		{"single separator", "a/b", `a\/b`},
		{"multiple separators", "akka/http/core", `akka\/http\/core`},
		{"grammar operators pass through", "cats AND effect", "cats AND effect"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeQueryString(tt.in))
		})
	}
}

func TestBuildTextQuery_Disjunction(t *testing.T) {
	expr := BuildTextQuery("json")

	dis, ok := expr.(Disjunction)
	require.True(t, ok, "expected a disjunction")
	require.Len(t, dis.Exprs, 6)

	wantTermFields := []string{
		FieldKeywords,
		FieldDescription,
		FieldRepository,
		FieldOrganization,
		FieldReadme,
	}
	for i, field := range wantTermFields {
		term, ok := dis.Exprs[i].(Term)
		require.True(t, ok, "clause %d should be a term", i)
		assert.Equal(t, field, term.Field)
		assert.Equal(t, "json", term.Value)
	}

	qs, ok := dis.Exprs[5].(QueryString)
	require.True(t, ok, "final clause should be the free-form query")
	assert.Equal(t, "json", qs.Query)
}

func TestBuildTextQuery_EscapesOnlyFreeFormClause(t *testing.T) {
	expr := BuildTextQuery("a/b")

	dis, ok := expr.(Disjunction)
	require.True(t, ok)

	var sawQueryString bool
	for _, clause := range dis.Exprs {
		switch c := clause.(type) {
		case Term:
			// Term clauses receive the raw string untouched.
			assert.Equal(t, "a/b", c.Value)
		case QueryString:
			sawQueryString = true
			assert.Equal(t, `a\/b`, c.Query)
			assert.NotContains(t, c.Query, "a/b")
		}
	}
	assert.True(t, sawQueryString)
}
