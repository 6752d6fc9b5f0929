package herald

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func recordInto(got *[]string, name string) func(int) {
	return func(int) { *got = append(*got, name) }
}

func TestOrdered(t *testing.T) {
	t.Run("ascending by default", func(t *testing.T) {
		o := NewOrdered(0)
		var got []string
		c := o.Subscribe(recordInto(&got, "c"))
		a := o.Subscribe(recordInto(&got, "a"))
		b := o.Subscribe(recordInto(&got, "b"))
		c.SetOrder(3)
		a.SetOrder(1)
		b.SetOrder(2)

		o.Next(1)
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})

	t.Run("descending option", func(t *testing.T) {
		o := NewOrdered(0, Descending[int]())
		var got []string
		a := o.Subscribe(recordInto(&got, "a"))
		b := o.Subscribe(recordInto(&got, "b"))
		a.SetOrder(1)
		b.SetOrder(2)

		o.Next(1)
		assert.Equal(t, []string{"b", "a"}, got)
	})

	t.Run("reacts to order changes", func(t *testing.T) {
		o := NewOrdered(0)
		var got []string
		a := o.Subscribe(recordInto(&got, "a"))
		b := o.Subscribe(recordInto(&got, "b"))
		a.SetOrder(1)
		b.SetOrder(2)

		o.Next(1)
		assert.Equal(t, []string{"a", "b"}, got)

		got = nil
		a.SetOrder(5)
		o.Next(2)
		assert.Equal(t, []string{"b", "a"}, got)
	})

	t.Run("switching direction resorts", func(t *testing.T) {
		o := NewOrdered(0)
		var got []string
		for i, name := range []string{"x", "y", "z"} {
			o.Subscribe(recordInto(&got, name)).SetOrder(i)
		}

		assert.True(t, o.SortDescending())
		o.Next(1)
		assert.Equal(t, []string{"z", "y", "x"}, got)

		got = nil
		assert.True(t, o.SortAscending())
		o.Next(2)
		assert.Equal(t, []string{"x", "y", "z"}, got)
	})

	t.Run("resort during delivery reaches unvisited subscriptions", func(t *testing.T) {
		o := NewOrdered(0)
		var got []string
		var c *Subscription[int]
		a := o.Subscribe(func(int) {
			got = append(got, "a")
			c.SetOrder(3)
		})
		b := o.Subscribe(recordInto(&got, "b"))
		c = o.Subscribe(recordInto(&got, "c"))
		a.SetOrder(1)
		b.SetOrder(5)
		c.SetOrder(9)

		o.Next(1)
		assert.Equal(t, []string{"a", "c", "b"}, got)
	})

	t.Run("subscriptions without a key come last", func(t *testing.T) {
		o := NewOrdered(0)
		var got []string
		o.Subscribe(recordInto(&got, "late")).SetOrder(1)
		o.Subscribe(recordInto(&got, "unset"))
		o.Subscribe(recordInto(&got, "early")).SetOrder(-1)

		o.Next(1)
		assert.Equal(t, []string{"early", "late", "unset"}, got)

		got = nil
		o.SortDescending()
		o.Next(2)
		assert.Equal(t, []string{"late", "early", "unset"}, got)
	})

	t.Run("a new subscription joins in sorted position", func(t *testing.T) {
		o := NewOrdered(0)
		var got []string
		o.Subscribe(recordInto(&got, "a5")).SetOrder(5)
		o.Subscribe(recordInto(&got, "unset"))
		o.Subscribe(recordInto(&got, "b1")).SetOrder(1)

		o.Next(1)
		assert.Equal(t, []string{"b1", "a5", "unset"}, got)

		got = nil
		o.Subscribe(recordInto(&got, "unset2"))
		o.Next(2)
		assert.Equal(t, []string{"b1", "a5", "unset", "unset2"}, got)
	})

	t.Run("destroyed", func(t *testing.T) {
		o := NewOrdered(0)
		sub := o.Subscribe(func(int) {})
		o.Destroy()

		assert.False(t, o.SortByOrder())
		assert.False(t, o.SortAscending())
		assert.False(t, o.SortDescending())
		sub.SetOrder(1)
		_, ok := sub.Order()
		assert.False(t, ok)
	})
}
