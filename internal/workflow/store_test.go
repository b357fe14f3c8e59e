package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableBasics(t *testing.T) {
	tbl := newTable[*Submission]()

	_, ok := tbl.get("u1")
	assert.False(t, ok)
	assert.False(t, tbl.has("u1"))
	assert.Zero(t, tbl.len())

	tbl.set("u1", &Submission{ScriptName: "a"})
	tbl.set("u1", &Submission{ScriptName: "b"}) // insert-or-replace
	got, ok := tbl.get("u1")
	require.True(t, ok)
	assert.Equal(t, "b", got.ScriptName)
	assert.Equal(t, 1, tbl.len())

	// Deleting an absent key is a no-op.
	tbl.delete("nope")
	tbl.delete("u1")
	assert.False(t, tbl.has("u1"))
	assert.Zero(t, tbl.len())
}

func TestTableItemsIsACopy(t *testing.T) {
	tbl := newTable[int]()
	tbl.set("a", 1)
	tbl.set("b", 2)

	items := tbl.items()
	delete(items, "a")
	assert.True(t, tbl.has("a"))
	assert.Equal(t, 2, tbl.len())
}
