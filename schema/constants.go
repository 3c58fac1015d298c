package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and run history.
	DatabaseBackend string

	// StatusBucket is one of the three cumulative flow categories.
	StatusBucket string

	// EstimationUnit selects how much each issue contributes to sprint sums.
	EstimationUnit string

	// SprintState is the lifecycle state of a sprint.
	SprintState string

	// ProjectType is the tracker's project type key.
	ProjectType string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Status buckets used by the cumulative flow diagram.
const (
	BucketToDo       StatusBucket = "To Do"
	BucketInProgress StatusBucket = "In Progress"
	BucketDone       StatusBucket = "Done"
)

// Estimation units.
const (
	PointsUnit EstimationUnit = "points" // default
	CountUnit  EstimationUnit = "count"
)

// Sprint states.
const (
	SprintActive SprintState = "active"
	SprintClosed SprintState = "closed"
	SprintFuture SprintState = "future"
)

// Project types.
const (
	SoftwareProject ProjectType = "software"
	BusinessProject ProjectType = "business"
)

// Status names with special meaning in aggregations.
const (
	StatusToDo       = "To Do"
	StatusBacklog    = "Backlog"
	StatusInProgress = "In Progress"
	StatusInReview   = "In Review"
	StatusDone       = "Done"
	StatusClosed     = "Closed"
	StatusResolved   = "Resolved"
)

// Issue type names.
const (
	IssueTypeStory   = "Story"
	IssueTypeBug     = "Bug"
	IssueTypeTask    = "Task"
	IssueTypeEpic    = "Epic"
	IssueTypeSubTask = "Sub-task"
)

// StatusField is the changelog field name that carries status transitions.
const StatusField = "status"

// AllBuckets lists the buckets in display order.
var AllBuckets = []StatusBucket{BucketToDo, BucketInProgress, BucketDone}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidEstimationUnits lists all valid estimation units.
var ValidEstimationUnits = map[EstimationUnit]struct{}{
	PointsUnit: {},
	CountUnit:  {},
}

// statusBuckets maps raw status names onto buckets. Matching is exact.
var statusBuckets = map[string]StatusBucket{
	StatusToDo:       BucketToDo,
	StatusBacklog:    BucketToDo,
	StatusInProgress: BucketInProgress,
	StatusInReview:   BucketInProgress,
	StatusDone:       BucketDone,
	StatusClosed:     BucketDone,
	StatusResolved:   BucketDone,
}

// BucketFor returns the bucket of a raw status name.
// Names outside the known set are treated as work in progress.
func BucketFor(status string) StatusBucket {
	if b, ok := statusBuckets[status]; ok {
		return b
	}
	return BucketInProgress
}
