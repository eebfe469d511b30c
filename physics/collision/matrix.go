// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collision implements collision related algorithms and data structures.
package collision

// Matrix is a triangular collision matrix indicating which pairs of objects
// (identified by broadphase index, not uuid) were colliding as of the last
// UpdateContacts pass. It is queried far more often than it is Set — a
// broadphase candidate pair that has never collided must read back false
// rather than panic.
type Matrix struct {
	col [][]bool
}

// NewMatrix creates and returns a pointer to a new collision Matrix.
func NewMatrix() *Matrix {

	m := new(Matrix)
	m.col = make([][]bool, 0)
	return m
}

// Set sets whether i and j are colliding.
func (m *Matrix) Set(i, j int, val bool) {

	var s, l int
	if i < j {
		s = i
		l = j
	} else {
		s = j
		l = i
	}
	diff := s + 1 - len(m.col)
	if diff > 0 {
		for i := 0; i < diff; i++ {
			m.col = append(m.col, make([]bool,0))
		}
	}
	for idx := range m.col {
		diff = l + 1 - len(m.col[idx]) - idx
		if diff > 0 {
			for i := 0; i < diff; i++ {
				m.col[idx] = append(m.col[idx], false)
			}
		}
	}
	m.col[s][l-s] = val
}

// Get returns whether i and j are colliding. Pairs never previously Set
// read back false instead of panicking, since the matrix is grown lazily
// by Set and is routinely probed for pairs the broadphase has not yet
// reported.
func (m *Matrix) Get(i, j int) bool {

	var s, l int
	if i < j {
		s = i
		l = j
	} else {
		s = j
		l = i
	}
	if s >= len(m.col) {
		return false
	}
	if l-s >= len(m.col[s]) {
		return false
	}
	return m.col[s][l-s]
}

// Clear resets every recorded pair to not-colliding without discarding the
// matrix's backing storage, so it can be reused across simulation steps.
func (m *Matrix) Clear() {

	for i := range m.col {
		for j := range m.col[i] {
			m.col[i][j] = false
		}
	}
}