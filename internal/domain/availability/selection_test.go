package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClickStateMachine(t *testing.T) {
	d1 := date("2026-06-03")
	d2 := date("2026-06-05")
	d3 := date("2026-06-08")

	t.Run("first click sets start", func(t *testing.T) {
		sel := Selection{}.Click(d1)
		start, ok := sel.Start()
		assert.True(t, ok)
		assert.True(t, start.Equal(d1))
		assert.False(t, sel.Complete())
	})

	t.Run("clicking start again deselects", func(t *testing.T) {
		sel := Selection{}.Click(d1).Click(d1)
		assert.True(t, sel.IsEmpty())
	})

	t.Run("earlier date restarts", func(t *testing.T) {
		sel := Selection{}.Click(d2).Click(d1)
		start, _ := sel.Start()
		assert.True(t, start.Equal(d1))
		assert.False(t, sel.Complete())
	})

	t.Run("later date completes", func(t *testing.T) {
		sel := Selection{}.Click(d1).Click(d2)
		assert.True(t, sel.Complete())
		end, _ := sel.End()
		assert.True(t, end.Equal(d2))
	})

	t.Run("clicking start of a complete range clears all", func(t *testing.T) {
		sel := Selection{}.Click(d1).Click(d2).Click(d1)
		assert.True(t, sel.IsEmpty())
	})

	t.Run("clicking end of a complete range keeps start", func(t *testing.T) {
		sel := Selection{}.Click(d1).Click(d2).Click(d2)
		assert.False(t, sel.IsEmpty())
		assert.False(t, sel.Complete())
		start, _ := sel.Start()
		assert.True(t, start.Equal(d1))
	})

	t.Run("third date restarts a complete range", func(t *testing.T) {
		sel := Selection{}.Click(d1).Click(d2).Click(d3)
		assert.False(t, sel.Complete())
		start, _ := sel.Start()
		assert.True(t, start.Equal(d3))
	})
}

func TestClear(t *testing.T) {
	sel := Selection{}.Click(date("2026-06-03")).Click(date("2026-06-05"))
	assert.True(t, sel.Clear().IsEmpty())
}
