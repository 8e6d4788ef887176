package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(i int) int { return i * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)
	assert.Equal(t, []int{}, Map([]int{}, func(i int) int { return i }))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"admin", "finance"}, "finance"))
	assert.False(t, Contains([]string{"admin"}, "warehouse"))
}

type failingCloser struct{ closed bool }

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("already closed")
}

func TestCloser(t *testing.T) {
	c := &failingCloser{}
	Closer(c)()
	assert.True(t, c.closed)
}
