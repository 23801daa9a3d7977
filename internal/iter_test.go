package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := slices.All([]string{"x", "y"})
	b := slices.All([]string{"z"})

	var keys []int
	var values []string
	for key, value := range IterSeq2Concat(a, b) {
		keys = append(keys, key)
		values = append(values, value)
	}

	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"x", "y", "z"}, values)
}

func TestIterSeq2Concat_Stop(t *testing.T) {
	assert := assert.New(t)

	a := maps.All(map[string]int{"one": 1})
	b := maps.All(map[string]int{"two": 2})

	count := 0
	for range IterSeq2Concat(a, b) {
		count++
		break
	}

	assert.Equal(1, count)
}

func TestIterSeq2Concat_Empty(t *testing.T) {
	assert := assert.New(t)

	collected := maps.Collect(IterSeq2Concat[string, int]())
	assert.Empty(collected)
}
