package domain

// NotAvailable is written in place of modifiers that could not be resolved
const NotAvailable = "N/A"

// OutputHeader is the header row of every dataset file
var OutputHeader = []string{
	"Test Id",
	"Method Id",
	"Method Role",
	"Method Modifiers",
	"Methods Header",
	"Fully Qualified Name",
	"Start Line",
	"End Line",
}

// OutputRecord is one joined (route, method) row of the dataset
type OutputRecord struct {
	TestID             string
	MethodID           string
	MethodRole         string
	Modifiers          string
	Header             string
	FullyQualifiedName string
	StartLine          string
	EndLine            string
}

// NewOutputRecord joins a route with one of its method records
func NewOutputRecord(route RouteEntry, method MethodRecord, modifiers string) OutputRecord {
	return OutputRecord{
		TestID:             route.TestID,
		MethodID:           route.MethodID,
		MethodRole:         route.MethodRole,
		Modifiers:          modifiers,
		Header:             method.Header,
		FullyQualifiedName: method.FullyQualifiedName,
		StartLine:          method.StartLine,
		EndLine:            method.EndLine,
	}
}

// Row returns the record's fields in OutputHeader order
func (r OutputRecord) Row() []string {
	return []string{
		r.TestID,
		r.MethodID,
		r.MethodRole,
		r.Modifiers,
		r.Header,
		r.FullyQualifiedName,
		r.StartLine,
		r.EndLine,
	}
}
