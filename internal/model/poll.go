package model

import "github.com/uptrace/bun"

// Poll is one demographic subpopulation row of the crosstab poll, in percent.
type Poll struct {
	bun.BaseModel `bun:"polls,alias:p"`

	PollID     int     `bun:",pk,autoincrement" json:"id"`
	Population string  `bun:",unique,notnull" json:"population"`
	CandidateA float64 `json:"candidateA"`
	CandidateB float64 `json:"candidateB"`
	Undecided  float64 `json:"undecided"`
}
