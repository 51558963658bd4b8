package model

import "fmt"

// SecretSanta は指定日のサンタとギフト相手の組み合わせ。
// どちらかのAccountが削除されると組み合わせも削除される。
type SecretSanta struct {
	ID       string
	Date     Date
	SantaID  string
	GifteeID string

	// ラベル表示用。JOINして読み込んだ場合のみ設定される。
	SantaUsername  string
	GifteeUsername string
}

func (s *SecretSanta) String() string {
	return fmt.Sprintf("Santa: %s, Giftee: %s", s.SantaUsername, s.GifteeUsername)
}
