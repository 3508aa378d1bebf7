package constant

const (
	// SlimHeaderKey is to indicate whether the current request shall be ignored by Sentry transaction tracing.
	// This is typically used by probes to avoid useless data being sent to Sentry.
	SlimHeaderKey = "X-Slim"

	// WorkerLockName is the redsync mutex held by the combined forecast worker while it runs.
	WorkerLockName = "forecast:worker:combined"

	// LimiterKeyPrefix prefixes the redis keys of the combined model rate limiter.
	LimiterKeyPrefix = "forecast:limiter:"
)
