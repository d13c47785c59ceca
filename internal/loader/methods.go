package loader

import "dbc/internal/domain"

// MethodsDelimiter separates fields in <subject>_data.csv
const MethodsDelimiter = ','

// LoadMethods reads a method data table
// (methodId,header,fullyQualifiedName,startLine,endLine) into an index
func LoadMethods(path string, policy domain.Cardinality) (*domain.MethodIndex, error) {
	index := domain.NewMethodIndex(policy)
	err := readTable(path, MethodsDelimiter, 5, func(record []string) {
		index.Add(domain.MethodRecord{
			MethodID:           record[0],
			Header:             record[1],
			FullyQualifiedName: record[2],
			StartLine:          record[3],
			EndLine:            record[4],
		})
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}
