package config

const (
	// DefaultDataDir holds the <subject>_routes.csv and <subject>_data.csv tables
	DefaultDataDir = "db/manual-dataset/data"
	// DefaultSubjectsDir holds the compiled class corpus, one <subject>/classes tree per subject
	DefaultSubjectsDir = "db/subjects"
	// DefaultOutDir is recreated on every build
	DefaultOutDir = "out"
	// DefaultSummaryFile is the build summary file name
	DefaultSummaryFile = "build-summary.json"
	// DefaultSummaryDir is the directory the build summary is stored in
	DefaultSummaryDir = "storage"
	// DefaultConfigFile is read when present and --config is not given
	DefaultConfigFile = "dbc.yaml"
	// DefaultCardinality is the join policy for duplicate keys
	DefaultCardinality = "multi"
	// DefaultCacheSize is the number of parsed class files kept per subject
	DefaultCacheSize = 512
	// DefaultMySQLTablePrefix prefixes exported dataset tables
	DefaultMySQLTablePrefix = "dataset_"
)

// DefaultSubjects are the subjects built when none are configured
var DefaultSubjects = []string{
	"CommonsLang",
	"Gson",
	"JFreeChart",
	"Joda-Time",
}
