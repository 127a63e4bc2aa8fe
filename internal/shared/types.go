package shared

// Task types registered on the asynq mux
const (
	TypeBroadcastPost   = "newsletter:broadcast_post"
	TypeReconcileRollups = "stats:reconcile_rollups"
)

// Queue names (weights configured in cmd/worker)
const (
	QueueNewsletter = "high"
	QueueDefault    = "default"
	QueueStats      = "low"
)
