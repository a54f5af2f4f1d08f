package shared

// Background task types
const (
	TypeFlushPostViews  = "post:flush_views"
	TypeReconcileCounts = "counter:reconcile"
)

// ReconcileCountsPayload is the payload of TypeReconcileCounts.
// An empty payload reconciles every tag and category.
type ReconcileCountsPayload struct {
	RequestedBy string `json:"requestedBy,omitempty"`
}

// Queue names
const (
	QueueDefault     = "default"
	QueueMaintenance = "maintenance"
)
