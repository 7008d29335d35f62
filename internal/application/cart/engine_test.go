package cart

import (
	"math/rand"
	"testing"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func toyotaOil() *entity.Product {
	return &entity.Product{
		ID:       "oil-1",
		Name:     "0W-20",
		Brand:    "Toyota",
		Category: entity.CategoryOil,
		Price:    d("39.99"),
		Volumes: []entity.Volume{
			{Size: "5L", Price: d("39.99")},
			{Size: "1L", Price: d("11.99")},
		},
	}
}

func oilFilter() *entity.Product {
	return &entity.Product{ID: "filter-1", Name: "Oil Filter - Premium", Brand: "Toyota", Type: "Oil Filter", Category: entity.CategoryFilters, Price: d("19.99")}
}

func otherOilFilter() *entity.Product {
	return &entity.Product{ID: "filter-3", Name: "Oil Filter - Standard", Brand: "Toyota", Type: "Oil Filter", Category: entity.CategoryFilters, Price: d("12.99")}
}

func brakePads() *entity.Product {
	return &entity.Product{ID: "part-1", Name: "Brake Pads", Category: entity.CategoryParts, Price: d("45.99")}
}

func TestStageAndCommitOilVolumes(t *testing.T) {
	e := New()
	oil := toyotaOil()

	_, err := e.SelectVariant(oil, "5L")
	require.NoError(t, err)
	_, err = e.SelectVariant(oil, "5L")
	require.NoError(t, err)
	_, err = e.SelectVariant(oil, "1L")
	require.NoError(t, err)

	staging := e.Staging()
	require.Len(t, staging.Selections, 2)
	assert.Equal(t, 2, staging.Selections[0].Quantity)
	assert.Equal(t, "oil-1", staging.Scope)

	assert.Equal(t, 2, e.Commit())
	assert.Empty(t, e.Staging().Selections)

	lines := e.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "oil-1:5L", lines[0].Key)
	assert.Equal(t, "Toyota 0W-20 5L", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, d("39.99").Equal(lines[0].UnitPrice))
	assert.Equal(t, "oil-1:1L", lines[1].Key)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.True(t, d("11.99").Equal(lines[1].UnitPrice))

	assert.True(t, d("91.97").Equal(e.Total()), "got %s", e.Total())
	assert.Equal(t, 3, e.ItemCount())
}

func TestCommitAccumulatesIntoExistingLine(t *testing.T) {
	e := New()
	oil := toyotaOil()

	_, _ = e.SelectVariant(oil, "5L")
	e.Commit()
	_, _ = e.SelectVariant(oil, "5L")
	_, _ = e.SelectVariant(oil, "5L")
	e.Commit()

	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestCommitEmptyStagingIsNoop(t *testing.T) {
	e := New()
	assert.Equal(t, 0, e.Commit())
	assert.True(t, e.IsEmpty())
}

func TestSelectVariantErrors(t *testing.T) {
	e := New()

	_, err := e.SelectVariant(toyotaOil(), "20L")
	assert.ErrorIs(t, err, ErrUnknownSelection)

	_, err = e.SelectVariant(toyotaOil(), "")
	assert.ErrorIs(t, err, ErrVariantRequired)

	_, err = e.SelectVariant(oilFilter(), "5L")
	assert.ErrorIs(t, err, ErrUnknownSelection)

	assert.Empty(t, e.Staging().Selections)
}

func TestFilterStagingKeysByProductID(t *testing.T) {
	e := New()

	_, _ = e.SelectVariant(oilFilter(), "")
	_, _ = e.SelectVariant(otherOilFilter(), "")
	_, _ = e.SelectVariant(oilFilter(), "")

	staging := e.Staging()
	require.Len(t, staging.Selections, 2)
	assert.Equal(t, "Filters/Toyota/Oil Filter", staging.Scope)

	e.Commit()
	line, ok := e.Line("filter-1")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	_, ok = e.Line("filter-3")
	assert.True(t, ok)
}

func TestSelectingOtherScopeResetsStaging(t *testing.T) {
	e := New()

	_, _ = e.SelectVariant(toyotaOil(), "5L")
	_, _ = e.SelectVariant(oilFilter(), "")

	staging := e.Staging()
	require.Len(t, staging.Selections, 1)
	assert.Equal(t, "filter-1", staging.Selections[0].Key)
}

func TestAdjustStagedClampsAndRemoves(t *testing.T) {
	e := New()
	oil := toyotaOil()
	_, _ = e.SelectVariant(oil, "5L")

	assert.Equal(t, 3, e.AdjustStaged("oil-1:5L", 2))
	assert.Equal(t, 2, e.AdjustStaged("oil-1:5L", -1))
	assert.Equal(t, 0, e.AdjustStaged("oil-1:5L", -10))
	assert.Empty(t, e.Staging().Selections, "zero quantity rows are not kept")

	assert.Equal(t, 0, e.AdjustStaged("missing", 1))
	assert.Empty(t, e.Staging().Selections)
}

func TestAddDirect(t *testing.T) {
	e := New()

	_, err := e.AddDirect(toyotaOil(), 1)
	assert.ErrorIs(t, err, ErrVariantRequired)

	line, err := e.AddDirect(brakePads(), 1)
	require.NoError(t, err)
	assert.Equal(t, "part-1", line.Key)
	assert.Equal(t, 1, line.Quantity)

	line, err = e.AddDirect(brakePads(), 2)
	require.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)

	_, err = e.AddDirect(brakePads(), 0)
	require.NoError(t, err)
	assert.Len(t, e.Lines(), 1)
	assert.Equal(t, 3, e.ItemCount())
}

func TestSetLineQuantity(t *testing.T) {
	e := New()
	_, _ = e.AddDirect(brakePads(), 1)

	assert.True(t, e.SetLineQuantity("part-1", 5))
	line, _ := e.Line("part-1")
	assert.Equal(t, 5, line.Quantity)

	assert.True(t, e.SetLineQuantity("part-1", 0))
	assert.True(t, e.IsEmpty())

	assert.False(t, e.SetLineQuantity("part-1", 2))
	assert.True(t, e.IsEmpty())
}

func TestRemoveLineIsIdempotent(t *testing.T) {
	once, twice := New(), New()
	for _, e := range []*Engine{once, twice} {
		_, _ = e.AddDirect(brakePads(), 2)
		_, _ = e.AddDirect(oilFilter(), 1)
	}

	once.RemoveLine("part-1")
	twice.RemoveLine("part-1")
	twice.RemoveLine("part-1")

	assert.Equal(t, once.Cart(), twice.Cart())
}

func TestClearLeavesStaging(t *testing.T) {
	e := New()
	_, _ = e.AddDirect(brakePads(), 2)
	_, _ = e.SelectVariant(toyotaOil(), "1L")

	e.Clear()

	assert.True(t, e.IsEmpty())
	assert.True(t, decimal.Zero.Equal(e.Total()))
	assert.Len(t, e.Staging().Selections, 1)
}

func TestLinesReturnsCopy(t *testing.T) {
	e := New()
	_, _ = e.AddDirect(brakePads(), 1)

	lines := e.Lines()
	lines[0].Quantity = 99

	line, _ := e.Line("part-1")
	assert.Equal(t, 1, line.Quantity)
}

// Any reachable cart keeps one line per key and a total equal to the sum of its lines.
func TestTotalMatchesLinesAfterRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []*entity.Product{toyotaOil(), oilFilter(), otherOilFilter(), brakePads()}
	keys := []string{"oil-1:5L", "oil-1:1L", "filter-1", "filter-3", "part-1", "unknown"}

	e := New()
	for step := 0; step < 2000; step++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(7) {
		case 0:
			variant := ""
			if p.HasVolumes() {
				variant = p.Volumes[rng.Intn(len(p.Volumes))].Size
			}
			_, err := e.SelectVariant(p, variant)
			require.NoError(t, err)
		case 1:
			e.AdjustStaged(keys[rng.Intn(len(keys))], rng.Intn(7)-3)
		case 2:
			e.Commit()
		case 3:
			_, _ = e.AddDirect(p, rng.Intn(4))
		case 4:
			e.SetLineQuantity(keys[rng.Intn(len(keys))], rng.Intn(6)-1)
		case 5:
			e.RemoveLine(keys[rng.Intn(len(keys))])
		case 6:
			if rng.Intn(20) == 0 {
				e.Clear()
			}
		}

		seen := map[string]bool{}
		sum := decimal.Zero
		for _, l := range e.Lines() {
			require.False(t, seen[l.Key], "duplicate line %s", l.Key)
			seen[l.Key] = true
			require.GreaterOrEqual(t, l.Quantity, 1)
			sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		require.True(t, sum.Equal(e.Total()), "step %d: %s != %s", step, sum, e.Total())

		for _, s := range e.Staging().Selections {
			require.GreaterOrEqual(t, s.Quantity, 1)
		}
	}
}
