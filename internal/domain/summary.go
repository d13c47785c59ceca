package domain

// SubjectSummary describes the dataset built for one subject
type SubjectSummary struct {
	Subject    string `json:"subject"`
	Routes     int    `json:"routes"`
	Methods    int    `json:"methods"`
	Rows       int    `json:"rows"`
	Unresolved int    `json:"unresolved_modifiers"`
	OutputPath string `json:"output_path"`
}

// BuildMeta contains metadata about a build run
type BuildMeta struct {
	Subjects        int     `json:"subjects"`
	TotalRows       int     `json:"total_rows"`
	TotalUnresolved int     `json:"total_unresolved"`
	Cardinality     string  `json:"cardinality"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// BuildSummary is the complete summary written after a build
type BuildSummary struct {
	Meta     BuildMeta        `json:"meta"`
	Subjects []SubjectSummary `json:"subjects"`
}
