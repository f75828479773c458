package hullsat

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// CellKey is the integer coordinate of a grid cell
type CellKey struct {
	X, Y, Z int
}

// Cell holds the indices of the entities overlapping it
type Cell struct {
	entityIndices []int
}

// SpatialGrid is a uniform hashed grid over collider AABBs.
// Distinct cells may hash to the same slot; this only adds candidates.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid creates a grid; numCells is rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].entityIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds the entity index to every cell its AABB covers
func (sg *SpatialGrid) Insert(entityIndex int, entity *Entity) {
	aabb := entity.Collider.AABB()
	sg.forEachCell(aabb.Min, aabb.Max, func(cellIdx int) {
		sg.cells[cellIdx].entityIndices = append(sg.cells[cellIdx].entityIndices, entityIndex)
	})
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].entityIndices = sg.cells[i].entityIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].entityIndices) > 1 {
			sort.Ints(sg.cells[i].entityIndices)
		}
	}
}

// Pairs rebuilds the grid from the current AABBs and keeps the registered pairs that
// share a cell and whose AABBs overlap
func (sg *SpatialGrid) Pairs(entities []*Entity, pairs []Pair) []Pair {
	sg.Clear()
	for i, entity := range entities {
		sg.Insert(i, entity)
	}
	sg.SortCells()

	candidates := sg.FindCandidates(entities)

	index := make(map[*Entity]int, len(entities))
	for i, entity := range entities {
		index[entity] = i
	}

	filtered := make([]Pair, 0, len(candidates))
	for _, pair := range pairs {
		a, b := index[pair.A], index[pair.B]
		if a > b {
			a, b = b, a
		}
		if _, ok := candidates[[2]int{a, b}]; ok {
			filtered = append(filtered, pair)
		}
	}
	return filtered
}

// FindCandidates returns the index pairs (i < j) of entities sharing a grid cell
// with overlapping AABBs
func (sg *SpatialGrid) FindCandidates(entities []*Entity) map[[2]int]struct{} {
	candidates := make(map[[2]int]struct{})

	for entityIdx, entityA := range entities {
		aabbA := entityA.Collider.AABB()

		sg.forEachCell(aabbA.Min, aabbA.Max, func(cellIdx int) {
			for _, otherIdx := range sg.cells[cellIdx].entityIndices {
				if otherIdx <= entityIdx {
					continue // (A,B) and (B,A) are the same pair
				}
				key := [2]int{entityIdx, otherIdx}
				if _, seen := candidates[key]; seen {
					continue
				}
				if aabbA.Overlaps(entities[otherIdx].Collider.AABB()) {
					candidates[key] = struct{}{}
				}
			}
		})
	}

	return candidates
}

func (sg *SpatialGrid) forEachCell(lo, hi mgl64.Vec3, fn func(cellIdx int)) {
	minCell := sg.worldToCell(lo)
	maxCell := sg.worldToCell(hi)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				fn(sg.hashCell(CellKey{x, y, z}))
			}
		}
	}
}

func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
