package service

import (
	"testing"

	"exusiai.dev/forecast-next/internal/app/appconfig"
	"exusiai.dev/forecast-next/internal/pkg/testentry"
	"exusiai.dev/forecast-next/internal/repo"
)

func testConfig(t *testing.T) *appconfig.Config {
	t.Helper()
	testentry.QuietLogs(t)
	return testentry.Config()
}

func seededRepos(t *testing.T) (*repo.Census, *repo.Poll) {
	t.Helper()
	db := testentry.Store(t)
	return repo.NewCensus(db), repo.NewPoll(db)
}
