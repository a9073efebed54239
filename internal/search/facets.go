package search

import (
	"context"
	"sort"

	"github.com/depscout/depscout/internal/index"
	"github.com/depscout/depscout/internal/query"
)

// Facet fields exposed to callers.
const (
	FacetKeywords     = query.FieldKeywords
	FacetTargets      = query.FieldTargets
	FacetDependencies = query.FieldDependencies
)

// DefaultExcludedDependencies is the curated set of ubiquitous testing and
// logging coordinates removed from the dependency facet. This is static
// policy, not derived from the data. A later enhancement could surface
// testing-framework popularity as its own comparison view instead.
var DefaultExcludedDependencies = []string{
	"junit/junit",
	"org.scalatest/scalatest",
	"org.scalatest/scalatest-core",
	"org.scalacheck/scalacheck",
	"org.specs2/specs2",
	"org.specs2/specs2-core",
	"org.mockito/mockito-core",
	"org.mockito/mockito-all",
	"org.scalamock/scalamock",
	"com.novocode/junit-interface",
	"com.github.sbt/junit-interface",
	"org.testng/testng",
	"org.hamcrest/hamcrest",
	"org.slf4j/slf4j-api",
	"org.slf4j/slf4j-simple",
	"ch.qos.logback/logback-classic",
	"log4j/log4j",
	"org.apache.logging.log4j/log4j-core",
	"com.typesafe.scala-logging/scala-logging",
	"commons-logging/commons-logging",
}

// Aggregate computes a term-frequency facet of the given field across the
// whole package catalog, up to MaxFacetBuckets buckets. For the
// dependencies field the excluded set is subtracted before sorting. The
// result is ordered by count descending, term ascending on ties. Facets
// are cached briefly since they scan the full catalog.
func (e *Engine) Aggregate(ctx context.Context, field string) ([]index.TermCount, error) {
	if cached, ok := e.facetCache.Get(field); ok {
		return cached, nil
	}

	counts, err := e.idx.AggregateTerms(ctx, index.Packages, field, MaxFacetBuckets)
	if err != nil {
		return nil, err
	}

	if field == FacetDependencies {
		kept := counts[:0]
		for _, c := range counts {
			if _, drop := e.excluded[c.Term]; !drop {
				kept = append(kept, c)
			}
		}
		counts = kept
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Term < counts[j].Term
	})

	e.facetCache.Add(field, counts)
	return counts, nil
}
