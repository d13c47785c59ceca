package domain

import "fmt"

// Cardinality selects how duplicate keys in the input tables are treated
type Cardinality string

const (
	// CardinalityMulti keeps every distinct value per key and joins the full cross product
	CardinalityMulti Cardinality = "multi"
	// CardinalitySingle keeps one value per key; later rows overwrite earlier ones
	CardinalitySingle Cardinality = "single"
)

// ParseCardinality converts a config or flag value into a Cardinality
func ParseCardinality(s string) (Cardinality, error) {
	switch Cardinality(s) {
	case CardinalityMulti, CardinalitySingle:
		return Cardinality(s), nil
	case "":
		return CardinalityMulti, nil
	}
	return "", fmt.Errorf("unknown cardinality %q (want %q or %q)", s, CardinalityMulti, CardinalitySingle)
}
