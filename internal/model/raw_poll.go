package model

import "gopkg.in/guregu/null.v3"

// RawPoll is a single aggregator poll reduced to the two candidates of the
// tracked contest. A candidate value is null when the poll did not report it.
type RawPoll struct {
	Pollster        string     `json:"pollster" msgpack:"pollster"`
	EndDate         string     `json:"endDate" msgpack:"endDate"`
	CandidateAVotes null.Float `json:"candidateAVotes" swaggertype:"number" msgpack:"candidateAVotes"`
	CandidateBVotes null.Float `json:"candidateBVotes" swaggertype:"number" msgpack:"candidateBVotes"`
}
