package domain

import "sort"

// RouteEntry records that a test exercises a method playing a given role
type RouteEntry struct {
	TestID     string
	MethodID   string
	MethodRole string
}

// RoutesIndex maps a test id to the routes it exercises, in first-seen order
type RoutesIndex struct {
	policy Cardinality
	byTest map[string][]RouteEntry
}

// NewRoutesIndex creates an empty index that stores routes under the given policy
func NewRoutesIndex(policy Cardinality) *RoutesIndex {
	return &RoutesIndex{
		policy: policy,
		byTest: make(map[string][]RouteEntry),
	}
}

// Add stores a route. Under CardinalityMulti an identical route is kept once;
// under CardinalitySingle the route replaces whatever the test id held before.
func (ri *RoutesIndex) Add(route RouteEntry) {
	if ri.policy == CardinalitySingle {
		ri.byTest[route.TestID] = []RouteEntry{route}
		return
	}

	for _, existing := range ri.byTest[route.TestID] {
		if existing == route {
			return
		}
	}
	ri.byTest[route.TestID] = append(ri.byTest[route.TestID], route)
}

// Routes returns the routes for a test id
func (ri *RoutesIndex) Routes(testID string) []RouteEntry {
	return ri.byTest[testID]
}

// TestIDs returns all test ids in ascending lexical order
func (ri *RoutesIndex) TestIDs() []string {
	ids := make([]string, 0, len(ri.byTest))
	for id := range ri.byTest {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the total number of stored routes
func (ri *RoutesIndex) Len() int {
	total := 0
	for _, routes := range ri.byTest {
		total += len(routes)
	}
	return total
}
