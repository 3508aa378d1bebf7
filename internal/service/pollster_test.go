package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/forecast-next/internal/model"
	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

const contest = "2016 California Democratic Presidential Primary"

const pollsFixture = `[
  {
    "pollster": "SurveyUSA",
    "end_date": "2016-05-22",
    "questions": [
      {"name": "2016 California Republican Presidential Primary", "subpopulations": [{"responses": [{"choice": "Trump", "value": 58}]}]},
      {"name": "2016 California Democratic Presidential Primary", "subpopulations": [
        {"name": "Likely Voters", "responses": [
          {"choice": "Clinton", "value": 57},
          {"choice": "Sanders", "value": 39},
          {"choice": "Undecided", "value": 4}
        ]},
        {"name": "Registered Voters", "responses": [{"choice": "Clinton", "value": 1}]}
      ]}
    ]
  },
  {
    "pollster": "PPIC",
    "end_date": "2016-05-22",
    "questions": [
      {"name": "2016 California Democratic Presidential Primary", "subpopulations": [
        {"responses": [{"choice": "Sanders", "value": 44}]}
      ]}
    ]
  },
  {
    "pollster": "Field",
    "end_date": "2016-05-13",
    "questions": [{"name": "US Senate", "subpopulations": []}]
  },
  {
    "pollster": "Beyond Limit",
    "end_date": "2016-05-01",
    "questions": [
      {"name": "2016 California Democratic Presidential Primary", "subpopulations": [
        {"responses": [{"choice": "Clinton", "value": 50}, {"choice": "Sanders", "value": 50}]}
      ]}
    ]
  }
]`

func TestReducePolls(t *testing.T) {
	polls, err := reducePolls([]byte(pollsFixture), contest, "Clinton", "Sanders", 3)
	require.NoError(t, err)

	assert.Equal(t, []*model.RawPoll{
		{Pollster: "SurveyUSA", EndDate: "2016-05-22", CandidateAVotes: null.FloatFrom(57), CandidateBVotes: null.FloatFrom(39)},
		{Pollster: "PPIC", EndDate: "2016-05-22", CandidateBVotes: null.FloatFrom(44)},
	}, polls)
}

func TestReducePollsRejectsMalformedBody(t *testing.T) {
	for _, body := range []string{`not json`, `{"polls": []}`} {
		_, err := reducePolls([]byte(body), contest, "Clinton", "Sanders", 3)
		assert.True(t, errors.Is(err, pgerr.ErrDataUnavailable), body)
	}

	polls, err := reducePolls([]byte(`[]`), contest, "Clinton", "Sanders", 3)
	require.NoError(t, err)
	assert.Empty(t, polls)
}

func TestFetchPolls(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pollsFixture))
	}))
	defer srv.Close()

	conf := testConfig(t)
	conf.PollsterBaseURL = srv.URL + "/pollster/api/polls.json"
	s := NewPollster(conf)

	polls, err := s.RecentPolls(context.Background())
	require.NoError(t, err)
	assert.Len(t, polls, 2)
	assert.Equal(t, "after=2016-04-20&page=1&state=CA", query)
}

func TestFetchPollsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	conf := testConfig(t)
	conf.PollsterBaseURL = srv.URL
	_, err := NewPollster(conf).FetchPolls(context.Background(), "2016-04-20", "CA")
	assert.True(t, errors.Is(err, pgerr.ErrDataUnavailable))
}
