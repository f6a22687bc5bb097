package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type testRow struct {
	ID        int64     `db:"id_row"`
	Nombre    string    `db:"nombre"`
	Skipped   string    `db:"-"`
	NoTag     string
	CreatedAt time.Time `db:"created_at"`
}

type testEmbedded struct {
	Extra string `db:"extra"`
	testRow
}

type testPatch struct {
	Nombre *string          `db:"nombre"`
	Precio *decimal.Decimal `db:"precio"`
	Status *string          `db:"status"`
	Lines  *[]int           `db:"-"`
	Always string           `db:"always"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testRow]()
	assert.Equal(t, []string{"id_row", "nombre", "created_at"}, cols)
}

func TestExtractDBColumnsEmbedded(t *testing.T) {
	cols := ExtractDBColumns[testEmbedded]()
	assert.ElementsMatch(t, []string{"extra", "id_row", "nombre", "created_at"}, cols)
}

func TestStructToMap(t *testing.T) {
	now := time.Now()
	row := testRow{ID: 7, Nombre: "Harina", Skipped: "x", NoTag: "y", CreatedAt: now}

	m := StructToMap(row)
	assert.Equal(t, map[string]any{
		"id_row":     int64(7),
		"nombre":     "Harina",
		"created_at": now,
	}, m)
}

func TestStructToMapPointerReceiver(t *testing.T) {
	row := &testRow{ID: 1, Nombre: "Azúcar"}
	m := StructToMap(row)
	assert.Equal(t, "Azúcar", m["nombre"])
}

func TestStructToMapNonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}

func TestPatchToMapSkipsNilPointers(t *testing.T) {
	nombre := "Harina integral"
	precio := decimal.NewFromFloat(12.50)

	m := PatchToMap(testPatch{Nombre: &nombre, Precio: &precio, Always: "v"})

	assert.Equal(t, map[string]any{
		"nombre": "Harina integral",
		"precio": precio,
		"always": "v",
	}, m)
	assert.NotContains(t, m, "status")
	assert.NotContains(t, m, "-")
}

func TestPatchToMapEmptyPatch(t *testing.T) {
	m := PatchToMap(testPatch{Always: ""})
	assert.Equal(t, map[string]any{"always": ""}, m)
}
