package dataset

import (
	"errors"
	"fmt"

	"dbc/internal/domain"

	"go.uber.org/zap"
)

// ErrOrphanRoute is returned when a route names a method missing from the method data table
var ErrOrphanRoute = errors.New("route references unknown method")

// ModifierResolver looks up the access modifiers of a method by its fully qualified name
type ModifierResolver interface {
	Resolve(subject, fqn string) (string, bool)
}

// JoinStats counts what a join produced
type JoinStats struct {
	Routes     int
	Rows       int
	Unresolved int
}

// Joiner joins routes with method data and enriches each row with modifiers
type Joiner struct {
	resolver ModifierResolver
	logger   *zap.Logger
	progress func(routesDone int)
}

// NewJoiner creates a Joiner
func NewJoiner(resolver ModifierResolver, logger *zap.Logger) *Joiner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Joiner{resolver: resolver, logger: logger}
}

// SetProgress registers a callback invoked after each route is joined
func (j *Joiner) SetProgress(fn func(routesDone int)) {
	j.progress = fn
}

// Join emits one record per (route, method record) pair. Test ids are visited
// in ascending order and routes in index order, so equal inputs give equal
// output. A route whose method id has no records fails the whole join.
func (j *Joiner) Join(subject string, routes *domain.RoutesIndex, methods *domain.MethodIndex) ([]domain.OutputRecord, JoinStats, error) {
	var (
		records []domain.OutputRecord
		stats   JoinStats
	)

	for _, testID := range routes.TestIDs() {
		for _, route := range routes.Routes(testID) {
			methodRecords, ok := methods.Lookup(route.MethodID)
			if !ok {
				return nil, stats, fmt.Errorf("%w: subject %s, test %s, method %s",
					ErrOrphanRoute, subject, route.TestID, route.MethodID)
			}

			for _, method := range methodRecords {
				modifiers, ok := j.resolver.Resolve(subject, method.FullyQualifiedName)
				if !ok {
					modifiers = domain.NotAvailable
					stats.Unresolved++
				}
				records = append(records, domain.NewOutputRecord(route, method, modifiers))
			}

			stats.Routes++
			if j.progress != nil {
				j.progress(stats.Routes)
			}
		}
	}

	stats.Rows = len(records)
	j.logger.Debug("Joined subject",
		zap.String("subject", subject),
		zap.Int("routes", stats.Routes),
		zap.Int("rows", stats.Rows),
		zap.Int("unresolved", stats.Unresolved))
	return records, stats, nil
}
