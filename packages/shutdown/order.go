package shutdown

const (
	PriorityDatabase = iota
	PriorityLedgers
	PriorityRelay
	PriorityClock
	PriorityPrometheus
	PriorityMetrics
	PriorityRateLimiter
	PriorityWebAPI
	PriorityWSFeed
	PriorityHealthz
)
