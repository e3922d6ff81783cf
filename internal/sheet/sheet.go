// Package sheet implements the grid: the sparse map from Position to
// Cell, the dependency graph over it, the transactional edit protocol,
// lazy evaluation with memoized caches, and tabular printing.
package sheet

import (
	"sheetcalc/internal/cellref"
	"sheetcalc/internal/value"
)

type cell struct {
	content content
}

// Sheet is the grid: a sparse map from Position to Cell plus the
// precedent/dependent adjacency it induces. Adjacency lives on the
// Sheet rather than on individual cells (design option (b) from
// spec.md §9) so a failed edit can be checked and abandoned without
// ever touching cell-owned state.
type Sheet struct {
	cells      map[cellref.Position]*cell
	precedents map[cellref.Position]map[cellref.Position]struct{}
	dependents map[cellref.Position]map[cellref.Position]struct{}
	maxRow     int32
	maxCol     int32
}

// New returns an empty sheet.
func New() *Sheet {
	return &Sheet{
		cells:      make(map[cellref.Position]*cell),
		precedents: make(map[cellref.Position]map[cellref.Position]struct{}),
		dependents: make(map[cellref.Position]map[cellref.Position]struct{}),
		maxRow:     -1,
		maxCol:     -1,
	}
}

// SetCell is the central operation. It is strongly exception-safe: a
// failing call leaves the sheet byte-identical to its pre-call state.
// The sequence follows spec.md §4.5:
//
//  1. validate pos
//  2. short-circuit if text is unchanged
//  3. speculatively parse text into a detached candidate content
//  4. run the cycle check against the candidate's references and the
//     existing graph (nothing has been mutated yet)
//  5. materialize implicit Empty cells for new precedents
//  6. rewire precedent/dependent edges
//  7. invalidate caches of pos and its transitive dependents
//  8. commit the candidate content
func (s *Sheet) SetCell(pos cellref.Position, text string) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Pos: pos}
	}

	if existing, ok := s.cells[pos]; ok && existing.content.text() == text {
		return nil
	}

	candidate, err := buildContent(text)
	if err != nil {
		return &FormulaException{Err: err}
	}
	refs := candidate.referencedPositions()

	if s.createsCycle(pos, refs) {
		return &CircularDependencyError{Pos: pos}
	}

	for _, r := range refs {
		if r.IsValid() {
			s.ensureCell(r)
		}
	}

	s.rewireEdges(pos, refs)
	s.invalidateTransitive(pos)

	s.setCellContent(pos, candidate)
	return nil
}

// createsCycle performs a depth-first search over the existing
// precedent graph starting from each of refs, looking for a path back
// to pos. Positions that are invalid or have no cell yet are terminal:
// ranging over a nil/absent adjacency set simply yields nothing, so no
// special-casing is needed beyond what the map lookups already do.
func (s *Sheet) createsCycle(pos cellref.Position, refs []cellref.Position) bool {
	visited := make(map[cellref.Position]bool)
	var reaches func(p cellref.Position) bool
	reaches = func(p cellref.Position) bool {
		if p == pos {
			return true
		}
		if visited[p] {
			return false
		}
		visited[p] = true
		for next := range s.precedents[p] {
			if reaches(next) {
				return true
			}
		}
		return false
	}
	for _, r := range refs {
		if reaches(r) {
			return true
		}
	}
	return false
}

// ensureCell materializes an implicit Empty cell at pos if none
// exists yet, extending the printable rectangle. Mirrors the
// original's ResizeDataUpToPos being invoked for referenced positions
// before the cycle check commits anything.
func (s *Sheet) ensureCell(pos cellref.Position) {
	if _, ok := s.cells[pos]; ok {
		return
	}
	s.cells[pos] = &cell{content: emptyContent}
	s.growBounds(pos)
}

func (s *Sheet) growBounds(pos cellref.Position) {
	if pos.Row > s.maxRow {
		s.maxRow = pos.Row
	}
	if pos.Col > s.maxCol {
		s.maxCol = pos.Col
	}
}

// rewireEdges drops pos's old outgoing precedent edges (and their
// mirrored incoming dependent entries) and installs the new set drawn
// from refs, restricted to valid positions: an edge requires a cell to
// exist at both ends, and invalid positions are never materialized.
func (s *Sheet) rewireEdges(pos cellref.Position, refs []cellref.Position) {
	for old := range s.precedents[pos] {
		if deps, ok := s.dependents[old]; ok {
			delete(deps, pos)
			if len(deps) == 0 {
				delete(s.dependents, old)
			}
		}
	}
	delete(s.precedents, pos)

	for _, r := range refs {
		if !r.IsValid() {
			continue
		}
		if s.precedents[pos] == nil {
			s.precedents[pos] = make(map[cellref.Position]struct{})
		}
		s.precedents[pos][r] = struct{}{}

		if s.dependents[r] == nil {
			s.dependents[r] = make(map[cellref.Position]struct{})
		}
		s.dependents[r][pos] = struct{}{}
	}
}

// invalidateTransitive clears the cache of pos and every cell
// transitively reachable via dependent edges. The graph is acyclic by
// invariant, but a visited set keeps this a single pass regardless.
func (s *Sheet) invalidateTransitive(pos cellref.Position) {
	visited := make(map[cellref.Position]bool)
	var walk func(p cellref.Position)
	walk = func(p cellref.Position) {
		if visited[p] {
			return
		}
		visited[p] = true
		if c, ok := s.cells[p]; ok {
			c.content.deleteCache()
		}
		for dep := range s.dependents[p] {
			walk(dep)
		}
	}
	walk(pos)
}

// setCellContent installs content at pos, creating the cell if
// needed, and extends the printable rectangle.
func (s *Sheet) setCellContent(pos cellref.Position, c content) {
	existing, ok := s.cells[pos]
	if !ok {
		existing = &cell{}
		s.cells[pos] = existing
	}
	existing.content = c
	s.growBounds(pos)
}

// ClearCell removes the cell at pos from the grid, dropping its
// precedent edges and invalidating its dependents' caches. Unlike
// SetCell it is legal on a non-existent cell (a no-op), it never
// materializes anything, and it shrinks the printable rectangle by
// recomputing the bounding box rather than extending it.
func (s *Sheet) ClearCell(pos cellref.Position) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Pos: pos}
	}
	if _, ok := s.cells[pos]; !ok {
		return nil
	}

	for old := range s.precedents[pos] {
		if deps, ok := s.dependents[old]; ok {
			delete(deps, pos)
			if len(deps) == 0 {
				delete(s.dependents, old)
			}
		}
	}
	delete(s.precedents, pos)

	s.invalidateTransitive(pos)

	delete(s.cells, pos)
	s.recomputeBounds()
	return nil
}

func (s *Sheet) recomputeBounds() {
	maxRow, maxCol := int32(-1), int32(-1)
	for p := range s.cells {
		if p.Row > maxRow {
			maxRow = p.Row
		}
		if p.Col > maxCol {
			maxCol = p.Col
		}
	}
	s.maxRow, s.maxCol = maxRow, maxCol
}

// GetCell returns a handle to the cell at pos, or nil if no cell
// exists there.
func (s *Sheet) GetCell(pos cellref.Position) (*Handle, error) {
	if !pos.IsValid() {
		return nil, &InvalidPositionError{Pos: pos}
	}
	if _, ok := s.cells[pos]; !ok {
		return nil, nil
	}
	return &Handle{sheet: s, pos: pos}, nil
}

// GetPrintableSize reports (rows, cols) = (maxRow+1, maxCol+1), which
// is (0, 0) on an empty sheet.
func (s *Sheet) GetPrintableSize() (rows, cols int) {
	return int(s.maxRow) + 1, int(s.maxCol) + 1
}

// Lookup implements formula.View: it resolves a cell reference during
// formula evaluation. Absent cells are reported as not-present; the
// formula module treats that as the numeric 0 per spec.md §6.
func (s *Sheet) Lookup(pos cellref.Position) (value.Value, bool) {
	c, ok := s.cells[pos]
	if !ok {
		return value.Value{}, false
	}
	return c.content.value(s), true
}
