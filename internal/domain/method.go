package domain

// MethodRecord describes one method's declaration site
type MethodRecord struct {
	MethodID           string
	Header             string
	FullyQualifiedName string // <dotted.class.path>.<name><descriptor>
	StartLine          string
	EndLine            string
}

// MethodIndex maps a method id to its declaration records, in first-seen order
type MethodIndex struct {
	policy   Cardinality
	byMethod map[string][]MethodRecord
}

// NewMethodIndex creates an empty index that stores records under the given policy
func NewMethodIndex(policy Cardinality) *MethodIndex {
	return &MethodIndex{
		policy:   policy,
		byMethod: make(map[string][]MethodRecord),
	}
}

// Add stores a record, following the same rules as RoutesIndex.Add
func (mi *MethodIndex) Add(record MethodRecord) {
	if mi.policy == CardinalitySingle {
		mi.byMethod[record.MethodID] = []MethodRecord{record}
		return
	}

	for _, existing := range mi.byMethod[record.MethodID] {
		if existing == record {
			return
		}
	}
	mi.byMethod[record.MethodID] = append(mi.byMethod[record.MethodID], record)
}

// Lookup returns the records for a method id and whether any exist
func (mi *MethodIndex) Lookup(methodID string) ([]MethodRecord, bool) {
	records, ok := mi.byMethod[methodID]
	return records, ok && len(records) > 0
}

// Len returns the number of distinct method ids
func (mi *MethodIndex) Len() int {
	return len(mi.byMethod)
}
