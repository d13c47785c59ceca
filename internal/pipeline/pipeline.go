package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dbc/internal/classfile"
	"dbc/internal/config"
	"dbc/internal/dataset"
	"dbc/internal/domain"
	"dbc/internal/loader"
	"dbc/internal/storage"

	"go.uber.org/zap"
)

// ErrOutputDir is returned when the output directory cannot be prepared
var ErrOutputDir = errors.New("cannot prepare output directory")

// Progress reports join progress for one subject
type Progress interface {
	Update(done int)
	Finish()
}

// Exporter receives every subject's records after its file is written
type Exporter interface {
	Export(subject string, records []domain.OutputRecord) error
}

// Pipeline builds the dataset of each configured subject in order
type Pipeline struct {
	config      *config.Config
	source      classfile.Source
	storage     storage.Storage
	logger      *zap.Logger
	newProgress func(subject string, total int) Progress
	exporter    Exporter
}

// New creates a Pipeline reading classes from the configured subjects directory
func New(cfg *config.Config, st storage.Storage, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		config:  cfg,
		source:  classfile.NewDirSource(cfg.SubjectsDir),
		storage: st,
		logger:  logger,
	}
}

// SetSource replaces the class source
func (p *Pipeline) SetSource(source classfile.Source) {
	p.source = source
}

// SetProgress sets the factory used to create a progress reporter per subject
func (p *Pipeline) SetProgress(factory func(subject string, total int) Progress) {
	p.newProgress = factory
}

// SetExporter sets an additional destination for built records
func (p *Pipeline) SetExporter(exporter Exporter) {
	p.exporter = exporter
}

// PrepareOutputDir deletes dir and everything in it, then recreates it empty
func PrepareOutputDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrOutputDir, dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrOutputDir, dir, err)
	}
	return nil
}

// Run recreates the output directory and builds each subject in order. The
// first failing subject stops the run; files written for earlier subjects
// are kept. The summary is saved only when every subject succeeds.
func (p *Pipeline) Run(subjects []string) (*domain.BuildSummary, error) {
	policy, err := domain.ParseCardinality(p.config.Cardinality)
	if err != nil {
		return nil, err
	}
	if err := PrepareOutputDir(p.config.OutDir); err != nil {
		return nil, err
	}

	startTime := time.Now()
	summary := &domain.BuildSummary{}
	for _, subject := range subjects {
		subjectSummary, err := p.BuildSubject(subject, policy)
		if err != nil {
			return summary, fmt.Errorf("subject %s: %w", subject, err)
		}
		summary.Subjects = append(summary.Subjects, *subjectSummary)
		summary.Meta.TotalRows += subjectSummary.Rows
		summary.Meta.TotalUnresolved += subjectSummary.Unresolved
	}

	duration := time.Since(startTime)
	summary.Meta.Subjects = len(summary.Subjects)
	summary.Meta.Cardinality = string(policy)
	summary.Meta.Duration = duration.String()
	summary.Meta.DurationSeconds = duration.Seconds()
	summary.Meta.Timestamp = time.Now().Format(time.RFC3339)

	if p.storage != nil {
		if err := p.storage.Save(summary); err != nil {
			return summary, fmt.Errorf("failed to save build summary: %w", err)
		}
	}
	return summary, nil
}

// BuildSubject loads, joins and writes one subject. Nothing is written when
// loading or joining fails.
func (p *Pipeline) BuildSubject(subject string, policy domain.Cardinality) (*domain.SubjectSummary, error) {
	logger := p.logger.With(zap.String("subject", subject))
	logger.Info("Building subject")

	methods, err := loader.LoadMethods(p.config.GetDataPath(subject), policy)
	if err != nil {
		return nil, fmt.Errorf("load method data: %w", err)
	}
	routes, err := loader.LoadRoutes(p.config.GetRoutesPath(subject), policy)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	logger.Debug("Loaded tables", zap.Int("routes", routes.Len()), zap.Int("methods", methods.Len()))

	resolver, err := classfile.NewResolver(p.source, p.config.CacheSize, logger)
	if err != nil {
		return nil, err
	}
	joiner := dataset.NewJoiner(resolver, logger)

	var progress Progress
	if p.newProgress != nil {
		progress = p.newProgress(subject, routes.Len())
		joiner.SetProgress(progress.Update)
	}

	records, stats, err := joiner.Join(subject, routes, methods)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return nil, err
	}

	outputPath := p.config.GetOutputPath(subject)
	if err := storage.WriteDataset(outputPath, records); err != nil {
		return nil, err
	}

	if p.exporter != nil {
		if err := p.exporter.Export(subject, records); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	logger.Info("Subject written",
		zap.String("path", outputPath),
		zap.Int("rows", stats.Rows),
		zap.Int("unresolved", stats.Unresolved))

	return &domain.SubjectSummary{
		Subject:    subject,
		Routes:     stats.Routes,
		Methods:    methods.Len(),
		Rows:       stats.Rows,
		Unresolved: stats.Unresolved,
		OutputPath: outputPath,
	}, nil
}
