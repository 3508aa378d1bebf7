package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/forecast-next/internal/app/appconfig"
	"exusiai.dev/forecast-next/internal/model"
	modelcache "exusiai.dev/forecast-next/internal/model/cache"
	"exusiai.dev/forecast-next/internal/pkg/observability"
	"exusiai.dev/forecast-next/internal/pkg/pgerr"
)

// Pollster fetches recent polls of the tracked contest from the poll
// aggregator and reduces them to one RawPoll per matching poll.
type Pollster struct {
	Config *appconfig.Config
}

func NewPollster(conf *appconfig.Config) *Pollster {
	return &Pollster{
		Config: conf,
	}
}

// Cache: rawPolls#state|after|contest, PollCacheTTL
func (s *Pollster) RecentPolls(ctx context.Context) ([]*model.RawPoll, error) {
	if modelcache.RawPolls == nil {
		return s.FetchPolls(ctx, s.Config.PollsterAfter, s.Config.PollsterState)
	}

	key := strings.Join([]string{s.Config.PollsterState, s.Config.PollsterAfter, s.Config.PollsterContest}, "|")
	var polls []*model.RawPoll
	calculated, err := modelcache.RawPolls.MutexGetSet(ctx, key, &polls, func() ([]*model.RawPoll, error) {
		return s.FetchPolls(ctx, s.Config.PollsterAfter, s.Config.PollsterState)
	}, s.Config.PollCacheTTL)
	if err != nil {
		var fe *pgerr.ForecastError
		if errors.As(err, &fe) {
			return nil, err
		}
		log.Warn().Err(err).Str("evt.name", "pollster.cache.unavailable").Msg("poll cache unavailable, fetching from upstream")
		return s.FetchPolls(ctx, s.Config.PollsterAfter, s.Config.PollsterState)
	}
	if !calculated {
		observability.PollFetches.WithLabelValues("cache", "ok").Inc()
	}
	return polls, nil
}

// FetchPolls queries the aggregator for polls of state ending after afterDate.
// Any transport or decoding failure is reported as DataUnavailable; there is no retry.
func (s *Pollster) FetchPolls(ctx context.Context, afterDate, state string) ([]*model.RawPoll, error) {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("state", state)
	q.Set("after", afterDate)

	timeout := s.Config.PollsterTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, pgerr.ErrDataUnavailable.Msg("poll aggregator: %s", context.DeadlineExceeded)
	}

	agent := fiber.Get(s.Config.PollsterBaseURL)
	agent.QueryString(q.Encode())
	agent.Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		observability.PollFetches.WithLabelValues("upstream", "error").Inc()
		log.Warn().Errs("errors", errs).Str("evt.name", "pollster.fetch.failed").Msg("poll aggregator request failed")
		return nil, pgerr.ErrDataUnavailable.Msg("poll aggregator: %s", errs[0])
	}
	if code != fiber.StatusOK {
		observability.PollFetches.WithLabelValues("upstream", "error").Inc()
		return nil, pgerr.ErrDataUnavailable.Msg("poll aggregator: unexpected status %d", code)
	}

	polls, err := reducePolls(body, s.Config.PollsterContest, s.Config.PollsterChoiceA, s.Config.PollsterChoiceB, s.Config.PollsterLimit)
	if err != nil {
		observability.PollFetches.WithLabelValues("upstream", "error").Inc()
		return nil, err
	}
	observability.PollFetches.WithLabelValues("upstream", "ok").Inc()
	return polls, nil
}

// reducePolls keeps, among the first limit polls of body, those asking the
// contest question, and reads the two candidate values off the question's
// first subpopulation.
func reducePolls(body []byte, contest, choiceA, choiceB string, limit int) ([]*model.RawPoll, error) {
	if !gjson.ValidBytes(body) {
		return nil, pgerr.ErrDataUnavailable.Msg("poll aggregator: response is not valid json")
	}
	list := gjson.ParseBytes(body)
	if !list.IsArray() {
		return nil, pgerr.ErrDataUnavailable.Msg("poll aggregator: expected a list of polls")
	}

	polls := list.Array()
	if limit > 0 && len(polls) > limit {
		polls = polls[:limit]
	}

	reduced := make([]*model.RawPoll, 0, len(polls))
	for _, poll := range polls {
		for _, question := range poll.Get("questions").Array() {
			if question.Get("name").String() != contest {
				continue
			}

			raw := &model.RawPoll{
				Pollster: poll.Get("pollster").String(),
				EndDate:  poll.Get("end_date").String(),
			}
			for _, response := range question.Get("subpopulations.0.responses").Array() {
				value := response.Get("value")
				if value.Type != gjson.Number {
					continue
				}
				switch response.Get("choice").String() {
				case choiceA:
					raw.CandidateAVotes = null.FloatFrom(value.Float())
				case choiceB:
					raw.CandidateBVotes = null.FloatFrom(value.Float())
				}
			}
			reduced = append(reduced, raw)
		}
	}

	return reduced, nil
}
