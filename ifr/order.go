// Copyright (c) The firmware-setup authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ifr

// EncodeOrder returns the ordered list buffer image of n bytes for the
// argument values: the concatenation of their native width encodings,
// followed by zero padding.
//
// A value which would not fit in the remaining space is not written but its
// width is still accounted for, therefore no later value is written either.
// Non numeric values are skipped.
func EncodeOrder(values []Value, n int) (buf []byte) {
	buf = make([]byte, n)
	off := 0

	for _, v := range values {
		w := v.Width()

		if w == 0 {
			continue
		}

		if off+w <= n {
			v.put(buf[off:])
		}

		off += w
	}

	return
}

// MatchOrder returns the candidate values reordered to follow an ordered
// list buffer.
//
// The match is partial and stable: each position is filled with the first
// remaining candidate whose encoding is found at the current buffer offset,
// a position without match keeps its candidate and the offset does not
// advance. An empty or unrelated buffer therefore leaves the candidate order
// unchanged, which is also the state of a list never saved before.
func MatchOrder(buf []byte, candidates []Value) (values []Value) {
	for _, i := range MatchPermutation(buf, candidates) {
		values = append(values, candidates[i])
	}

	return
}

// MatchPermutation returns the candidate indices in the order selected by
// MatchOrder.
func MatchPermutation(buf []byte, candidates []Value) (perm []int) {
	perm = make([]int, len(candidates))
	off := 0

	for i := range perm {
		perm[i] = i
	}

	for i := range perm {
		for j := i; j < len(perm); j++ {
			v := candidates[perm[j]]

			if !v.matches(buf[off:]) {
				continue
			}

			off += v.Width()
			perm[i], perm[j] = perm[j], perm[i]

			break
		}
	}

	return
}
