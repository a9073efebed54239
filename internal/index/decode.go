package index

import (
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2/search"

	"github.com/depscout/depscout/internal/catalog"
	scerrors "github.com/depscout/depscout/internal/errors"
)

// Stored fields come back untyped: text as string, numerics as float64,
// datetimes as RFC 3339 strings, and multi-valued fields as a plain value
// when one entry was stored and a slice when several were.

func decodePackage(hit *search.DocumentMatch) (catalog.Package, error) {
	org, err := requireString(hit.Fields, "organization")
	if err != nil {
		return catalog.Package{}, malformed(hit.ID, err)
	}
	repo, err := requireString(hit.Fields, "repository")
	if err != nil {
		return catalog.Package{}, malformed(hit.ID, err)
	}
	created, err := fieldTime(hit.Fields, "created_at")
	if err != nil {
		return catalog.Package{}, malformed(hit.ID, err)
	}
	updated, err := fieldTime(hit.Fields, "updated_at")
	if err != nil {
		return catalog.Package{}, malformed(hit.ID, err)
	}
	return catalog.Package{
		ID:           hit.ID,
		Organization: org,
		Repository:   repo,
		Description:  fieldString(hit.Fields, "description"),
		Keywords:     fieldStrings(hit.Fields, "keywords"),
		Readme:       fieldString(hit.Fields, "readme"),
		Stars:        fieldInt(hit.Fields, "stars"),
		Forks:        fieldInt(hit.Fields, "forks"),
		Targets:      fieldStrings(hit.Fields, "targets"),
		Dependencies: fieldStrings(hit.Fields, "dependencies"),
		CreatedAt:    created,
		UpdatedAt:    updated,
	}, nil
}

func decodeRelease(hit *search.DocumentMatch) (catalog.Release, error) {
	org, err := requireString(hit.Fields, "reference.organization")
	if err != nil {
		return catalog.Release{}, malformed(hit.ID, err)
	}
	repo, err := requireString(hit.Fields, "reference.repository")
	if err != nil {
		return catalog.Release{}, malformed(hit.ID, err)
	}
	group, err := requireString(hit.Fields, "coordinate.group")
	if err != nil {
		return catalog.Release{}, malformed(hit.ID, err)
	}
	artifact, err := requireString(hit.Fields, "coordinate.artifact")
	if err != nil {
		return catalog.Release{}, malformed(hit.ID, err)
	}
	version, err := requireString(hit.Fields, "coordinate.version")
	if err != nil {
		return catalog.Release{}, malformed(hit.ID, err)
	}
	released, err := fieldTime(hit.Fields, "released_at")
	if err != nil {
		return catalog.Release{}, malformed(hit.ID, err)
	}
	return catalog.Release{
		ID: hit.ID,
		Reference: catalog.PackageReference{
			Organization: org,
			Repository:   repo,
		},
		Coordinate: catalog.ArtifactCoordinate{
			Group:    group,
			Artifact: artifact,
			Version:  version,
		},
		Target:     fieldString(hit.Fields, "target"),
		ReleasedAt: released,
	}, nil
}

func malformed(docID string, err error) error {
	return scerrors.MalformedResultError("decode document", err).WithDetail("doc_id", docID)
}

func requireString(fields map[string]interface{}, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("field %q missing", name)
	}
	s, ok := asString(v)
	if !ok {
		return "", fmt.Errorf("field %q has type %T, want string", name, v)
	}
	return s, nil
}

func fieldString(fields map[string]interface{}, name string) string {
	if v, ok := fields[name]; ok {
		if s, ok := asString(v); ok {
			return s
		}
	}
	return ""
}

func fieldStrings(fields map[string]interface{}, name string) []string {
	v, ok := fields[name]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func fieldInt(fields map[string]interface{}, name string) int {
	if v, ok := fields[name]; ok {
		switch t := v.(type) {
		case float64:
			return int(t)
		case []interface{}:
			if len(t) > 0 {
				if f, ok := t[0].(float64); ok {
					return int(f)
				}
			}
		}
	}
	return 0
}

func fieldTime(fields map[string]interface{}, name string) (time.Time, error) {
	v, ok := fields[name]
	if !ok {
		return time.Time{}, nil
	}
	s, ok := asString(v)
	if !ok {
		return time.Time{}, fmt.Errorf("field %q has type %T, want datetime string", name, v)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %q: %w", name, err)
	}
	return t, nil
}

func asString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []interface{}:
		if len(t) > 0 {
			s, ok := t[0].(string)
			return s, ok
		}
	}
	return "", false
}
