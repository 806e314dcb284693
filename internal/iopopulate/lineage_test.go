package iopopulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathForID(t *testing.T) {
	// 1 -> 2 -> 4, 1 -> 3; the root is self-parented.
	parents := map[int]int{1: 1, 2: 1, 3: 1, 4: 2}

	tests := []struct {
		name string
		id   int
		want []int
	}{
		{"leaf", 4, []int{1, 2, 4}},
		{"middle", 2, []int{1, 2}},
		{"root", 1, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pathForID(tt.id, 1, parents))
		})
	}
}

func TestPathForIDMissingParent(t *testing.T) {
	// 7's parent 99 is absent: the walk treats 7 as an effective root
	// rather than failing.
	parents := map[int]int{7: 99, 8: 7}

	assert.Equal(t, []int{7, 8}, pathForID(8, 1, parents))
	assert.Equal(t, []int{7}, pathForID(7, 1, parents))
}

func TestPathForIDCycle(t *testing.T) {
	// 5 and 6 reference each other; the visited guard stops the walk.
	parents := map[int]int{5: 6, 6: 5}

	assert.Equal(t, []int{6, 5}, pathForID(5, 1, parents))
}

func TestPathForIDSelfParented(t *testing.T) {
	// A self-parented node outside the root terminates the walk.
	parents := map[int]int{9: 9, 10: 9}

	assert.Equal(t, []int{9, 10}, pathForID(10, 1, parents))
}

func TestPathForIDCustomRoot(t *testing.T) {
	parents := map[int]int{42: 42, 50: 42, 60: 50}

	assert.Equal(t, []int{42, 50, 60}, pathForID(60, 42, parents))
}
