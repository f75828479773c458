package hullsat

// Pair is a candidate pair of distinct entities, A registered before B
type Pair struct {
	A *Entity
	B *Entity
}

// BroadPhase selects the pairs handed to the narrow phase.
// Implementations filter the registered pair list and must keep its order.
type BroadPhase interface {
	Pairs(entities []*Entity, pairs []Pair) []Pair
}

// AllPairs returns the full registered pair list, O(n²)
type AllPairs struct{}

func (AllPairs) Pairs(entities []*Entity, pairs []Pair) []Pair {
	return pairs
}
