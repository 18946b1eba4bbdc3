package keyeddiff

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_Identical(t *testing.T) {
	seq := []string{"a", "b", "c"}
	assert.Empty(t, Diff(seq, seq))
	assert.Empty(t, Diff[string](nil, nil))
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name      string
		prev      []string
		next      []string
		wantKinds map[OpKind]int
	}{
		{"from empty", nil, []string{"a", "b"}, map[OpKind]int{OpInsert: 2}},
		{"to empty", []string{"a", "b"}, nil, map[OpKind]int{OpRemove: 2}},
		{"append", []string{"a", "b"}, []string{"a", "b", "c"}, map[OpKind]int{OpInsert: 1}},
		{"remove middle", []string{"a", "b", "c"}, []string{"a", "c"}, map[OpKind]int{OpRemove: 1}},
		{"replace one", []string{"a", "b", "c"}, []string{"a", "x", "c"}, map[OpKind]int{OpRemove: 1, OpInsert: 1}},
		{"swap", []string{"a", "b"}, []string{"b", "a"}, map[OpKind]int{OpMove: 1}},
		{"move last to front", []string{"a", "b", "c"}, []string{"c", "a", "b"}, map[OpKind]int{OpMove: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := Diff(tt.prev, tt.next)

			got := map[OpKind]int{}
			for _, op := range ops {
				got[op.Kind]++
			}
			assert.Equal(t, tt.wantKinds, got)
			assert.Equal(t, tt.next, nilIfEmpty(Apply(tt.prev, ops)))
		})
	}
}

func TestDiff_RandomSequences(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	alphabet := []int{0, 1, 2, 3, 4, 5, 6, 7}

	for i := 0; i < 500; i++ {
		prev := pick(r, alphabet)
		next := pick(r, alphabet)

		ops := Diff(prev, next)
		assert.Equal(t, nilIfEmpty(next), nilIfEmpty(Apply(prev, ops)), "prev %v next %v", prev, next)
		assert.Empty(t, Diff(next, next))
	}
}

func pick(r *rand.Rand, alphabet []int) []int {
	perm := r.Perm(len(alphabet))
	n := r.IntN(len(alphabet) + 1)
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = alphabet[perm[i]]
	}
	return out
}

func nilIfEmpty[K any](s []K) []K {
	if len(s) == 0 {
		return nil
	}
	return s
}
