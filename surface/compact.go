package surface

// removeUnused drops unused triangles and unreferenced vertices, keeping
// order, and renumbers triangle vertex indices. The adjacency index is
// invalid afterwards and is discarded.
func (m *mesh) removeUnused() (removedVertices, removedTriangles int) {
	j := 0
	for k := range m.ta {
		if m.ta.unused(k) {
			continue
		}
		if j < k {
			m.ta[j] = m.ta[k]
		}
		j++
	}
	removedTriangles = len(m.ta) - j
	m.ta = m.ta[:j]

	used := make([]bool, len(m.va))
	for _, tri := range m.ta {
		used[tri[0]] = true
		used[tri[1]] = true
		used[tri[2]] = true
	}
	vnew := make([]int, len(m.va))
	l := 0
	for k := range m.va {
		if !used[k] {
			vnew[k] = -1
			continue
		}
		m.va[l] = m.va[k]
		vnew[k] = l
		l++
	}
	removedVertices = len(m.va) - l
	m.va = m.va[:l]

	for k := range m.ta {
		tri := &m.ta[k]
		tri[0], tri[1], tri[2] = vnew[tri[0]], vnew[tri[1]], vnew[tri[2]]
	}
	m.tn = neighbors{}
	return removedVertices, removedTriangles
}
