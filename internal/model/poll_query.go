package model

// PollQuery narrows an aggregator poll lookup. Empty fields fall back to the
// configured defaults, which are served from cache.
type PollQuery struct {
	After string `query:"after" validate:"omitempty,datetime=2006-01-02"`
	State string `query:"state" validate:"omitempty,len=2,alpha"`
}
