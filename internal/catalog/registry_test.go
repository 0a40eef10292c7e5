package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_BuiltinCatalog(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, 18, reg.Len())

	workType, ok := reg.Get("work_type")
	require.True(t, ok)
	assert.Equal(t, 1.0, workType.Weight)
	assert.Equal(t, KindCategorical, workType.Kind)
	assert.Contains(t, workType.PossibleValues, "Leak Repair")

	maxCost, ok := reg.Get("max_cost")
	require.True(t, ok)
	assert.Equal(t, KindNumeric, maxCost.Kind)
	assert.Equal(t, LowerIsBetter, maxCost.Direction)

	rating, ok := reg.Get("min_rating")
	require.True(t, ok)
	assert.Equal(t, HigherIsBetter, rating.Direction)
}

func TestGetByCategory(t *testing.T) {
	reg := NewRegistry()

	basic := reg.GetByCategory(CategoryBasic)
	assert.Len(t, basic, 3)
	assert.Contains(t, basic, "work_type")
	assert.Contains(t, basic, "district")
	assert.Contains(t, basic, "language")

	financial := reg.GetByCategory(CategoryFinancial)
	assert.Len(t, financial, 2)
}

func TestAdd(t *testing.T) {
	reg := NewRegistry()

	def := NewCategorical("pet_friendly", "Pet Friendly",
		"Comfortable working around pets",
		CategoryLogistical, PolarityOptional, 0.3, "Yes", "No")
	require.NoError(t, reg.Add(def))

	got, ok := reg.Get("pet_friendly")
	require.True(t, ok)
	assert.Equal(t, 0.3, got.Weight)

	// Duplicate add fails.
	assert.Error(t, reg.Add(def))
}

func TestAdd_InvalidDefinition(t *testing.T) {
	reg := NewRegistry()

	// Categorical without values.
	def := Definition{
		Name:     "broken",
		Category: CategoryBasic,
		Polarity: PolarityOptional,
		Kind:     KindCategorical,
	}
	assert.Error(t, reg.Add(def))

	// Negative weight.
	def = NewCategorical("broken", "Broken", "", CategoryBasic, PolarityOptional, -1, "x")
	assert.Error(t, reg.Add(def))

	// Both value shapes at once.
	def = NewCategorical("broken", "Broken", "", CategoryBasic, PolarityOptional, 0.5, "x")
	def.MinValue = 1
	def.MaxValue = 5
	assert.Error(t, reg.Add(def))
}

func TestUpdate(t *testing.T) {
	reg := NewRegistry()

	def, ok := reg.Get("language")
	require.True(t, ok)
	def.Weight = 0.9
	require.NoError(t, reg.Update("language", def))

	got, _ := reg.Get("language")
	assert.Equal(t, 0.9, got.Weight)
}

func TestUpdate_NotFound(t *testing.T) {
	reg := NewRegistry()

	def := NewCategorical("ghost", "Ghost", "", CategoryBasic, PolarityOptional, 0.1, "x")
	err := reg.Update("ghost", def)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Name)
}

func TestRemove(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Remove("payment_methods"))
	_, ok := reg.Get("payment_methods")
	assert.False(t, ok)
}

func TestRemove_NotFound(t *testing.T) {
	reg := NewRegistry()

	var notFound *NotFoundError
	assert.ErrorAs(t, reg.Remove("nope"), &notFound)
}

func TestRemove_ProtectedAttributes(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"work_type", "district", "language"} {
		var protected *ProtectedAttributeError
		err := reg.Remove(name)
		require.ErrorAs(t, err, &protected, "expected %s to be protected", name)
		assert.Equal(t, name, protected.Name)
	}
	assert.Equal(t, 18, reg.Len())
}

func TestValidate_Categorical(t *testing.T) {
	reg := NewRegistry()

	assert.True(t, reg.Validate("work_type", "Leak Repair"))
	assert.False(t, reg.Validate("work_type", "Roofing"))
	assert.False(t, reg.Validate("work_type", 5))
}

func TestValidate_Numeric(t *testing.T) {
	reg := NewRegistry()

	assert.True(t, reg.Validate("min_rating", 4.5))
	assert.True(t, reg.Validate("min_rating", "3.0"))
	assert.False(t, reg.Validate("min_rating", 0.5))
	assert.False(t, reg.Validate("min_rating", 6.0))
	assert.False(t, reg.Validate("min_rating", "not-a-number"))
}

func TestValidate_UnknownAttribute(t *testing.T) {
	reg := NewRegistry()
	assert.False(t, reg.Validate("unknown", "anything"))
}

func TestGetAll_ReturnsCopy(t *testing.T) {
	reg := NewRegistry()

	all := reg.GetAll()
	delete(all, "work_type")

	_, ok := reg.Get("work_type")
	assert.True(t, ok, "mutating the GetAll result must not affect the registry")
}
