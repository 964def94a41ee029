package isolation

import (
	"github.com/dd0wney/cluso-isolate/pkg/analysis"
	"github.com/dd0wney/cluso-isolate/pkg/logging"
	"github.com/dd0wney/cluso-isolate/pkg/metrics"
	"github.com/dd0wney/cluso-isolate/pkg/network"
)

// Report is an isolation result together with its connectivity assessment
type Report struct {
	*Result
	Assessment *analysis.Assessment `json:"assessment"`
}

// Isolator runs Evaluate with logging and metrics attached
type Isolator struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewIsolator creates an isolator. Either argument may be nil.
func NewIsolator(logger logging.Logger, registry *metrics.Registry) *Isolator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Isolator{
		logger:  logger.With(logging.Component("isolation")),
		metrics: registry,
	}
}

// Isolate selects a batch from net and assesses what removing it does to
// the rest of the network. net is only read.
func (iso *Isolator) Isolate(net *network.Network, batchSize int, criterion Criterion) *Report {
	timer := logging.StartTimer(iso.logger, "batch isolated",
		logging.NetworkID(net.ID),
		logging.Criterion(criterion.String()),
		logging.BatchSize(batchSize),
	)

	result := Evaluate(net.Systems, net.Connectors, net.Interfaces, batchSize, criterion)
	assessment := analysis.AssessIsolation(net, result.Batch)

	if assessment.Fragmented() {
		iso.logger.Warn("isolation fragments the remaining network",
			logging.NetworkID(net.ID),
			logging.Int("components_before", assessment.ComponentsBefore),
			logging.Int("components_after", assessment.ComponentsAfter),
		)
	}

	d := timer.End(
		logging.Count(len(result.Batch)),
		logging.Stability(result.Stability),
		logging.Int("window_start", result.WindowStart),
	)

	if iso.metrics != nil {
		iso.metrics.RecordIsolation(criterion.String(), len(result.Batch), result.WindowsEvaluated, result.Improved(), result.Stability, d)
		iso.metrics.RecordStranded(len(assessment.Stranded))
	}

	return &Report{Result: result, Assessment: assessment}
}
