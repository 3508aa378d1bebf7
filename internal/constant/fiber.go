package constant

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeaderKey = "X-Forecast-Request-ID"
)
