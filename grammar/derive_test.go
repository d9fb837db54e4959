package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deriveTestGrammar = `stmt: print_stmt | expr_stmt
print_stmt: 'print' NAME
expr_stmt: NAME '==' NAME
`

func TestGrammar_Copy(t *testing.T) {
	g, err := testBuild(t, deriveTestGrammar)
	require.NoError(t, err)

	c := g.Copy()
	assert.Equal(t, g, c)

	// No aliasing: mutating the copy leaves the source untouched.
	delete(c.Keywords, "print")
	c.SymbolToNumber["bogus"] = 999
	c.Flags["f"] = true
	c.DFAs[g.StartSymbol].States[0].Accept = true
	c.Labels[0] = Label{Kind: LabelKindToken, Token: 42}

	assert.True(t, g.HasKeyword("print"))
	assert.NotContains(t, g.SymbolToNumber, "bogus")
	assert.Empty(t, g.Flags)
	assert.False(t, g.DFAs[g.StartSymbol].States[0].Accept)
	assert.NotEqual(t, g.Labels[0], c.Labels[0])
}

func TestGrammar_WithoutKeyword(t *testing.T) {
	g, err := testBuild(t, deriveTestGrammar)
	require.NoError(t, err)

	d := g.WithoutKeyword("print")
	assert.False(t, d.HasKeyword("print"))
	assert.True(t, g.HasKeyword("print"), "the source grammar keeps its keyword")

	// The automata are untouched; only keyword recognition changes.
	assert.Equal(t, g.DFAs, d.DFAs)
	assert.Equal(t, g.Labels, d.Labels)

	// Removing an absent keyword is a no-op.
	assert.Equal(t, d, d.WithoutKeyword("print"))
	assert.Equal(t, d, d.WithoutKeyword("never_was"))
}

func TestGrammar_WithSoftKeywords(t *testing.T) {
	g, err := testBuild(t, deriveTestGrammar)
	require.NoError(t, err)
	require.Empty(t, g.SoftKeywords)

	d := g.WithSoftKeywords([]string{"match", "case"})
	assert.True(t, d.IsSoftKeyword("match"))
	assert.True(t, d.IsSoftKeyword("case"))
	assert.False(t, d.IsSoftKeyword("print"))
	assert.Empty(t, g.SoftKeywords, "the source grammar stays untouched")

	// A later derivation replaces the set instead of merging.
	d2 := d.WithSoftKeywords([]string{"type"})
	assert.False(t, d2.IsSoftKeyword("match"))
	assert.True(t, d2.IsSoftKeyword("type"))
}

func TestGrammar_WithFeatureFlag(t *testing.T) {
	g, err := testBuild(t, deriveTestGrammar)
	require.NoError(t, err)
	require.False(t, g.Flag("async_keywords"))

	d := g.WithFeatureFlag("async_keywords", true)
	assert.True(t, d.Flag("async_keywords"))
	assert.False(t, g.Flag("async_keywords"))

	off := d.WithFeatureFlag("async_keywords", false)
	assert.False(t, off.Flag("async_keywords"))
}

func TestGrammar_WithVersion(t *testing.T) {
	g, err := testBuild(t, deriveTestGrammar)
	require.NoError(t, err)
	require.Equal(t, Version{}, g.Version)

	d := g.WithVersion(Version{Major: 3, Minor: 10})
	assert.Equal(t, Version{Major: 3, Minor: 10}, d.Version)
	assert.Equal(t, Version{}, g.Version)
	assert.Equal(t, "3.10", d.Version.String())
}

func TestGrammar_derivationChains(t *testing.T) {
	g, err := testBuild(t, deriveTestGrammar)
	require.NoError(t, err)

	d := g.WithVersion(Version{Major: 2}).
		WithoutKeyword("print").
		WithFeatureFlag("async_keywords", true).
		WithSoftKeywords([]string{"match"})

	assert.False(t, d.HasKeyword("print"))
	assert.True(t, d.Flag("async_keywords"))
	assert.True(t, d.IsSoftKeyword("match"))
	assert.Equal(t, Version{Major: 2}, d.Version)

	// The base grammar is unchanged by the whole chain.
	assert.True(t, g.HasKeyword("print"))
	assert.Empty(t, g.Flags)
	assert.Empty(t, g.SoftKeywords)
	assert.Equal(t, Version{}, g.Version)
}
