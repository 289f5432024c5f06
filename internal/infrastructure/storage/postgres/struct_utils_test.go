package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
)

type mockCatalog struct {
	entity.BaseCatalog
	Name string         `db:"name" json:"name"`
	Par  types.Quantity `db:"par_stock_level" json:"parStockLevel"`
	Skip string         `db:"-" json:"-"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "version", "name", "par_stock_level"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:      id.New(),
				Version: 5,
			},
		},
		Name: "Vanilla Base",
		Par:  types.NewQuantityFromFloat64(6),
		Skip: "ignored",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "Vanilla Base", m["name"])
	assert.Equal(t, cat.Par, m["par_stock_level"])
	assert.NotContains(t, m, "-")
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{Name: "Waffle Cones"}

	m := StructToMap(cat)

	assert.Equal(t, "Waffle Cones", m["name"])
}
