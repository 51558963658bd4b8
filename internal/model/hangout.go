package model

// Hangout は気軽な集まりの開催日を表す。1日に1件まで。
type Hangout struct {
	ID   string
	Date Date
}

func (h *Hangout) String() string {
	return h.Date.String()
}

// Group はHangoutに参加するアカウントのまとまり。
// Hangoutが削除されるとGroupも削除される。
type Group struct {
	ID        string
	HangoutID string
	MemberIDs []string
}

func (g *Group) String() string {
	return g.ID
}
