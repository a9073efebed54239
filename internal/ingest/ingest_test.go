package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscout/depscout/internal/catalog"
)

// captureWriter records everything indexed without a real index behind it.
type captureWriter struct {
	packages []catalog.Package
	releases []catalog.Release
	batches  int
}

func (w *captureWriter) IndexPackages(_ context.Context, pkgs []catalog.Package) error {
	w.packages = append(w.packages, pkgs...)
	if len(pkgs) > 0 {
		w.batches++
	}
	return nil
}

func (w *captureWriter) IndexReleases(_ context.Context, rels []catalog.Release) error {
	w.releases = append(w.releases, rels...)
	return nil
}

func TestLoad_MixedRecords(t *testing.T) {
	input := strings.Join([]string{
		`{"kind":"package","organization":"typelevel","repository":"cats","stars":4400,"keywords":["functional"]}`,
		``,
		`{"kind":"release","reference":{"organization":"typelevel","repository":"cats"},"coordinate":{"group":"org.typelevel","artifact":"cats-core","version":"2.10.0"},"target":"jvm"}`,
		`{"kind":"package","organization":"circe","repository":"circe"}`,
	}, "\n")

	w := &captureWriter{}
	stats, err := Load(context.Background(), strings.NewReader(input), w)
	require.NoError(t, err)

	assert.Equal(t, Stats{Packages: 2, Releases: 1}, stats)
	require.Len(t, w.packages, 2)
	assert.Equal(t, "cats", w.packages[0].Repository)
	assert.Equal(t, []string{"functional"}, w.packages[0].Keywords)
	require.Len(t, w.releases, 1)
	assert.Equal(t, "2.10.0", w.releases[0].Coordinate.Version)
}

func TestLoad_UnknownKind(t *testing.T) {
	w := &captureWriter{}
	_, err := Load(context.Background(), strings.NewReader(`{"kind":"mystery"}`), w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "mystery")
}

func TestLoad_MalformedJSONReportsLine(t *testing.T) {
	input := `{"kind":"package","organization":"a","repository":"b"}` + "\n" + `{not json`
	w := &captureWriter{}
	_, err := Load(context.Background(), strings.NewReader(input), w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoad_IncompleteRecords(t *testing.T) {
	w := &captureWriter{}
	_, err := Load(context.Background(), strings.NewReader(`{"kind":"package","organization":"a"}`), w)
	require.Error(t, err)

	_, err = Load(context.Background(),
		strings.NewReader(`{"kind":"release","coordinate":{"group":"g","artifact":"a"}}`), w)
	require.Error(t, err)
}

func TestLoad_Empty(t *testing.T) {
	w := &captureWriter{}
	stats, err := Load(context.Background(), strings.NewReader(""), w)
	require.NoError(t, err)
	assert.Zero(t, stats.Packages)
	assert.Zero(t, stats.Releases)
}
