package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowser(t *testing.T) {
	t.Run("Starts on page 1 with normalized criteria", func(t *testing.T) {
		b := NewBrowser(Criteria{Sort: SortPopular})
		assert.Equal(t, 1, b.Page())
		assert.Equal(t, All, b.Criteria().Category)
		assert.Equal(t, SortPopular, b.Criteria().Sort)
	})

	t.Run("Changing criteria returns to page 1", func(t *testing.T) {
		b := NewBrowser(DefaultCriteria())
		assert.True(t, b.GoTo(3, 5))

		c := DefaultCriteria()
		c.SearchText = "go"
		b.SetCriteria(c)
		assert.Equal(t, 1, b.Page())
		assert.Equal(t, "go", b.Criteria().SearchText)
	})

	t.Run("Out of range page is ignored", func(t *testing.T) {
		b := NewBrowser(DefaultCriteria())
		assert.False(t, b.GoTo(0, 3))
		assert.False(t, b.GoTo(4, 3))
		assert.Equal(t, 1, b.Page())
	})

	t.Run("Page 1 is valid even with no results", func(t *testing.T) {
		b := NewBrowser(DefaultCriteria())
		assert.True(t, b.GoTo(1, 0))
	})

	t.Run("Next and Prev stop at the edges", func(t *testing.T) {
		b := NewBrowser(DefaultCriteria())
		assert.False(t, b.Prev())
		assert.True(t, b.Next(2))
		assert.Equal(t, 2, b.Page())
		assert.False(t, b.Next(2))
		assert.Equal(t, 2, b.Page())
		assert.True(t, b.Prev())
		assert.Equal(t, 1, b.Page())
	})
}
