package appconfig

import (
	"time"

	"exusiai.dev/forecast-next/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of the rotated application log. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic.
	DevMode bool `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"otlp"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// infrastructure components connection instructions

	// StoreDriver selects the relational store holding the census and poll tables.
	// Valid values are: pg, sqlite.
	StoreDriver string `required:"true" split_words:"true" default:"sqlite"`

	// StoreDSN is the data source name of the store. For pg, see
	// https://bun.uptrace.dev/postgres/#pgdriver; for sqlite, a file path or "file::memory:".
	StoreDSN string `required:"true" split_words:"true" default:"forecast.db"`

	StoreMaxOpenConns    int           `split_words:"true" default:"10"`
	StoreMaxIdleConns    int           `split_words:"true" default:"2"`
	StoreConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	StoreConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/2"`

	// NatsURL is the URL of the NATS server. Leaving this empty disables publishing of combined forecasts.
	NatsURL string `split_words:"true"`

	// NatsSubject is the subject combined forecasts are published to.
	NatsSubject string `split_words:"true" default:"FORECAST.combined"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// forecast model

	// EnsembleWeights is the per-lens weight table of the combined model, as
	// comma separated `lens:weight` pairs. Weights must sum to 1.
	EnsembleWeights map[string]float64 `split_words:"true" default:"gender:0.2,age:0.2,race:0.3,tenure:0.3"`

	// TotalDelegates is the number of pledged delegates split by the statewide summary.
	TotalDelegates int `split_words:"true" default:"475"`

	// CandidateAName and CandidateBName label the two candidates in reports.
	CandidateAName string `split_words:"true" default:"Hillary"`
	CandidateBName string `split_words:"true" default:"Bernie"`

	// LensTimeout bounds the data fetch of a single lens.
	LensTimeout time.Duration `split_words:"true" default:"10s"`

	// ReportPath is where the combined model report is written. Leaving this empty disables the report.
	ReportPath string `split_words:"true" default:"result.txt"`

	// ReportS3Bucket, when set, receives a copy of every combined model report.
	ReportS3Bucket string `split_words:"true"`
	ReportS3Region string `split_words:"true" default:"us-west-1"`

	// AWSAccessKey and AWSSecretKey are static S3 credentials. When left empty the
	// default AWS credential chain is used.
	AWSAccessKey string `split_words:"true"`
	AWSSecretKey string `split_words:"true"`

	// poll aggregator

	PollsterBaseURL string        `split_words:"true" default:"http://elections.huffingtonpost.com/pollster/api/polls.json"`
	PollsterState   string        `split_words:"true" default:"CA"`
	PollsterAfter   string        `split_words:"true" default:"2016-04-20"`
	PollsterContest string        `split_words:"true" default:"2016 California Democratic Presidential Primary"`
	PollsterChoiceA string        `split_words:"true" default:"Clinton"`
	PollsterChoiceB string        `split_words:"true" default:"Sanders"`
	PollsterLimit   int           `split_words:"true" default:"3"`
	PollsterTimeout time.Duration `split_words:"true" default:"10s"`
	PollCacheTTL    time.Duration `split_words:"true" default:"10m"`

	// WorkerEnabled is a flag to indicate whether to enable the combined forecast worker.
	WorkerEnabled bool `split_words:"true"`

	// WorkerInterval describes the interval in-between combined forecast runs
	WorkerInterval time.Duration `required:"true" split_words:"true" default:"10m"`

	// WorkerTimeout describes the timeout for a single run
	WorkerTimeout time.Duration `required:"true" split_words:"true" default:"2m"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
