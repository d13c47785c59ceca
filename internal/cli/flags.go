package cli

import "dbc/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigPath  string
	Verbose     bool
	Subjects    []string
	NameFilter  string
	Cardinality string
	OutDir      string
	DataDir     string
	SubjectsDir string
	ExportMySQL bool
	Discover    bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigPath:  f.ConfigPath,
		Verbose:     f.Verbose,
		Subjects:    f.Subjects,
		NameFilter:  f.NameFilter,
		Cardinality: f.Cardinality,
		OutDir:      f.OutDir,
		DataDir:     f.DataDir,
		SubjectsDir: f.SubjectsDir,
		ExportMySQL: f.ExportMySQL,
		Discover:    f.Discover,
	}
}
