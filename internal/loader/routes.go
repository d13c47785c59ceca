package loader

import "dbc/internal/domain"

// RoutesDelimiter separates fields in <subject>_routes.csv
const RoutesDelimiter = ';'

// LoadRoutes reads a routes table (testId;methodId;methodRole) into an index
func LoadRoutes(path string, policy domain.Cardinality) (*domain.RoutesIndex, error) {
	index := domain.NewRoutesIndex(policy)
	err := readTable(path, RoutesDelimiter, 3, func(record []string) {
		index.Add(domain.RouteEntry{
			TestID:     record[0],
			MethodID:   record[1],
			MethodRole: record[2],
		})
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}
