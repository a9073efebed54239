package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsInternalID(t *testing.T) {
	p := Package{
		ID:           "pkg-internal-42",
		Organization: "typelevel",
		Repository:   "cats",
		Stars:        4000,
	}

	got := Sanitize(p)

	assert.Empty(t, got.ID)
	assert.Equal(t, "typelevel", got.Organization)
	assert.Equal(t, "cats", got.Repository)
	assert.Equal(t, 4000, got.Stars)

	// Input is unchanged; Sanitize works on a copy.
	assert.Equal(t, "pkg-internal-42", p.ID)
}

func TestSanitizeAll(t *testing.T) {
	pkgs := []Package{
		{ID: "a", Repository: "one"},
		{ID: "b", Repository: "two"},
		{Repository: "three"},
	}

	got := SanitizeAll(pkgs)

	for _, p := range got {
		assert.Empty(t, p.ID)
	}
	assert.Len(t, got, 3)
}

func TestReferenceAndCoordinateStrings(t *testing.T) {
	ref := PackageReference{Organization: "typelevel", Repository: "cats"}
	assert.Equal(t, "typelevel/cats", ref.String())

	coord := ArtifactCoordinate{Group: "org.typelevel", Artifact: "cats-core", Version: "2.10.0"}
	assert.Equal(t, "org.typelevel/cats-core@2.10.0", coord.String())

	p := Package{Organization: "typelevel", Repository: "cats"}
	assert.Equal(t, ref, p.Reference())
}
