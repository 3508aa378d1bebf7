package calcwkr

import (
	"time"

	"exusiai.dev/forecast-next/internal/pkg/observability"
)

func observeCalcDuration(f func() error) error {
	start := time.Now()
	defer func() {
		observability.WorkerCalcDuration.Set(time.Since(start).Seconds())
	}()
	return f()
}
