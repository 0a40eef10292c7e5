package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImport_RoundTrip(t *testing.T) {
	reg := NewRegistry()
	custom := NewCategorical("pet_friendly", "Pet Friendly",
		"Comfortable working around pets",
		CategoryLogistical, PolarityOptional, 0.3, "Yes", "No")
	require.NoError(t, reg.Add(custom))

	data, err := reg.Export()
	require.NoError(t, err)

	restored := NewEmptyRegistry()
	require.NoError(t, restored.Import(data))

	assert.Equal(t, reg.Len(), restored.Len())
	got, ok := restored.Get("pet_friendly")
	require.True(t, ok)
	assert.Equal(t, custom, got)
}

func TestImport_RejectsInvalidDefinition(t *testing.T) {
	reg := NewRegistry()
	before := reg.Len()

	err := reg.Import([]byte(`{"attributes":[{"name":"broken","category":"basic","polarity":"optional","weight":-2,"kind":"categorical","possible_values":["x"]}]}`))
	require.Error(t, err)
	assert.Equal(t, before, reg.Len(), "failed import must leave the registry unchanged")
}

func TestImport_RequiresProtectedAttributes(t *testing.T) {
	reg := NewRegistry()

	err := reg.Import([]byte(`{"attributes":[{"name":"only_one","display_name":"Only One","category":"basic","polarity":"optional","weight":0.5,"kind":"categorical","possible_values":["Yes","No"]}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "protected")
}

func TestImport_RejectsMalformedJSON(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Import([]byte(`{not json`)))
}

func TestStats(t *testing.T) {
	reg := NewRegistry()

	stats := reg.Stats()
	assert.Equal(t, 18, stats.Total)
	assert.Equal(t, 3, stats.ByCategory[CategoryBasic])
	assert.Equal(t, 6, stats.ByCategory[CategoryProfessional])
	assert.Equal(t, 4, stats.ByCategory[CategoryLogistical])
	assert.Equal(t, 3, stats.ByCategory[CategoryQuality])
	assert.Equal(t, 2, stats.ByCategory[CategoryFinancial])
	assert.Equal(t, 1, stats.ByPolarity[PolarityRequired])
}

func TestList_Sorted(t *testing.T) {
	reg := NewRegistry()

	defs := reg.List()
	require.Len(t, defs, 18)
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].Name, defs[i].Name)
	}
}
