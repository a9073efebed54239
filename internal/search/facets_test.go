package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscout/depscout/internal/index"
)

func TestAggregate_SortedByCountDescending(t *testing.T) {
	idx := &fakeIndex{terms: []index.TermCount{
		{Term: "json", Count: 12},
		{Term: "http", Count: 40},
		{Term: "database", Count: 12},
		{Term: "cli", Count: 3},
	}}
	e := New(idx)

	counts, err := e.Aggregate(context.Background(), FacetKeywords)
	require.NoError(t, err)

	require.Len(t, counts, 4)
	assert.Equal(t, "http", counts[0].Term)
	// Equal counts tie-break lexicographically for deterministic output.
	assert.Equal(t, "database", counts[1].Term)
	assert.Equal(t, "json", counts[2].Term)
	assert.Equal(t, "cli", counts[3].Term)

	require.Len(t, idx.facetCalls, 1)
	call := idx.facetCalls[0]
	assert.Equal(t, index.Packages, call.collection)
	assert.Equal(t, FacetKeywords, call.field)
	assert.Equal(t, MaxFacetBuckets, call.size)
}

func TestAggregate_DependenciesExcludesCuratedSet(t *testing.T) {
	idx := &fakeIndex{terms: []index.TermCount{
		{Term: "org.scalatest/scalatest", Count: 900},
		{Term: "org.typelevel/cats-core", Count: 300},
		{Term: "ch.qos.logback/logback-classic", Count: 700},
		{Term: "io.circe/circe-core", Count: 150},
	}}
	e := New(idx, WithExcludedDependencies(DefaultExcludedDependencies))

	counts, err := e.Aggregate(context.Background(), FacetDependencies)
	require.NoError(t, err)

	require.Len(t, counts, 2)
	assert.Equal(t, "org.typelevel/cats-core", counts[0].Term)
	assert.Equal(t, "io.circe/circe-core", counts[1].Term)
	for _, c := range counts {
		assert.NotContains(t, DefaultExcludedDependencies, c.Term)
	}
}

func TestAggregate_ExclusionOnlyAppliesToDependencies(t *testing.T) {
	idx := &fakeIndex{terms: []index.TermCount{
		{Term: "org.scalatest/scalatest", Count: 10},
	}}
	e := New(idx, WithExcludedDependencies(DefaultExcludedDependencies))

	counts, err := e.Aggregate(context.Background(), FacetKeywords)
	require.NoError(t, err)
	assert.Len(t, counts, 1, "keyword facet is not filtered")
}

func TestAggregate_CachesResult(t *testing.T) {
	idx := &fakeIndex{terms: []index.TermCount{{Term: "jvm", Count: 5}}}
	e := New(idx)

	first, err := e.Aggregate(context.Background(), FacetTargets)
	require.NoError(t, err)
	second, err := e.Aggregate(context.Background(), FacetTargets)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, idx.facetCalls, 1, "second call served from cache")
}

func TestAggregate_IndexFailurePropagates(t *testing.T) {
	idx := &fakeIndex{err: assert.AnError}
	e := New(idx)

	_, err := e.Aggregate(context.Background(), FacetKeywords)
	assert.Error(t, err)
}
