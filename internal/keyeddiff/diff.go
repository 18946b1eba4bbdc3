// Package keyeddiff computes the edit script that turns one keyed sequence
// into another with removes, inserts and moves.
package keyeddiff

import "slices"

type OpKind int

const (
	OpRemove OpKind = iota
	OpInsert
	OpMove
)

func (k OpKind) String() string {
	switch k {
	case OpRemove:
		return "remove"
	case OpInsert:
		return "insert"
	case OpMove:
		return "move"
	}
	return "unknown"
}

// Op is one edit. For inserts and moves, the key is placed immediately after
// After, or first when HasAfter is false.
type Op[K comparable] struct {
	Kind     OpKind
	Key      K
	After    K
	HasAfter bool
}

// Diff returns the edits that turn prev into next. Keys must be unique in
// each slice. Removes come first, then one insert or move per key of next
// that is new or not already right after its predecessor. Applying the ops
// in order yields next; equal inputs yield no ops.
func Diff[K comparable](prev, next []K) []Op[K] {
	want := make(map[K]struct{}, len(next))
	for _, k := range next {
		want[k] = struct{}{}
	}

	var ops []Op[K]
	current := make([]K, 0, len(prev))
	for _, k := range prev {
		if _, keep := want[k]; !keep {
			ops = append(ops, Op[K]{Kind: OpRemove, Key: k})
			continue
		}
		current = append(current, k)
	}

	present := make(map[K]struct{}, len(current))
	for _, k := range current {
		present[k] = struct{}{}
	}

	for i, k := range next {
		op := Op[K]{Key: k}
		if i > 0 {
			op.After, op.HasAfter = next[i-1], true
		}

		// position i of current already holds next[:i], so k is in place
		// exactly when it sits at i
		if _, ok := present[k]; !ok {
			op.Kind = OpInsert
			current = slices.Insert(current, i, k)
			present[k] = struct{}{}
			ops = append(ops, op)
			continue
		}
		if i < len(current) && current[i] == k {
			continue
		}

		op.Kind = OpMove
		from := slices.Index(current, k)
		current = slices.Delete(current, from, from+1)
		current = slices.Insert(current, i, k)
		ops = append(ops, op)
	}

	return ops
}

// Apply runs ops against seq and returns the result. It is the reference
// semantics a render target has to follow.
func Apply[K comparable](seq []K, ops []Op[K]) []K {
	out := slices.Clone(seq)
	for _, op := range ops {
		if i := slices.Index(out, op.Key); i >= 0 {
			out = slices.Delete(out, i, i+1)
		}
		if op.Kind == OpRemove {
			continue
		}
		at := 0
		if op.HasAfter {
			at = slices.Index(out, op.After) + 1
		}
		out = slices.Insert(out, at, op.Key)
	}
	return out
}
