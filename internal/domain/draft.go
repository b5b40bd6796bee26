package domain

// DraftSet holds the locally persisted pending edits for one (hotel, period):
// drafts created in the roster grid plus copied drafts produced by the copy
// planners. It is cleared by an explicit clear or by a successful publish.
type DraftSet struct {
	Hotel        string  `json:"hotel"`
	PeriodID     int64   `json:"periodID"`
	Drafts       []Shift `json:"drafts"`
	CopiedDrafts []Shift `json:"copiedDrafts"`
}

func (s *DraftSet) IsEmpty() bool {
	return len(s.Drafts) == 0 && len(s.CopiedDrafts) == 0
}
