package lifespan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeprogress/internal/model"
)

func testDataset() model.Dataset {
	return model.Dataset{
		model.CommonNation: {All: 73.4, Female: 76.0, Male: 70.8},
		"Japan":            {All: 84.5, Female: 87.6, Male: 81.5},
	}
}

func ptr(s string) *string { return &s }

func TestResolveKnownNation(t *testing.T) {
	rec, name, err := ResolveNamed(ptr("Japan"), testDataset())
	require.NoError(t, err)
	assert.Equal(t, "Japan", name)
	assert.Equal(t, 81.5, rec.Male)
}

func TestResolveFallsBackToCommon(t *testing.T) {
	ds := testDataset()
	none, err := Resolve(nil, ds)
	require.NoError(t, err)
	unknown, name, err := ResolveNamed(ptr("any-nation-not-in-dataset"), ds)
	require.NoError(t, err)

	assert.Equal(t, ds[model.CommonNation], none)
	assert.Equal(t, none, unknown)
	assert.Equal(t, model.CommonNation, name)
}

func TestResolveIsCaseSensitive(t *testing.T) {
	_, name, err := ResolveNamed(ptr("japan"), testDataset())
	require.NoError(t, err)
	assert.Equal(t, model.CommonNation, name)
}

func TestResolveMissingCommon(t *testing.T) {
	ds := testDataset()
	delete(ds, model.CommonNation)

	for _, nation := range []*string{nil, ptr("Japan"), ptr("Atlantis")} {
		_, err := Resolve(nation, ds)
		assert.ErrorIs(t, err, ErrConfiguration)
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	ds := testDataset()
	rec, err := Resolve(ptr("Japan"), ds)
	require.NoError(t, err)
	rec.Male = 1
	assert.Equal(t, 81.5, ds["Japan"].Male)
}

func TestView(t *testing.T) {
	ds := testDataset()
	rec, ok := View("Japan", ds)
	assert.True(t, ok)
	assert.Equal(t, 84.5, rec.All)

	_, ok = View("Atlantis", ds)
	assert.False(t, ok)
}
