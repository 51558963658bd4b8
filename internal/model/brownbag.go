package model

import "fmt"

// BrownbagStatus はブラウンバッグ発表枠の状態。
// 遷移規則はなく、集合に含まれる値であれば任意の値から任意の値へ変更できる。
type BrownbagStatus string

const (
	BrownbagNextInLine BrownbagStatus = "next_in_line"
	BrownbagDone       BrownbagStatus = "done"
	BrownbagNotDone    BrownbagStatus = "not_done"
)

// DefaultBrownbagStatus は新規発表枠の状態。
const DefaultBrownbagStatus = BrownbagNotDone

var brownbagStatusLabels = map[BrownbagStatus]string{
	BrownbagNextInLine: "Next In Line",
	BrownbagDone:       "Done",
	BrownbagNotDone:    "Not Done",
}

// BrownbagStatuses は宣言順の状態一覧を返す。
func BrownbagStatuses() []BrownbagStatus {
	return []BrownbagStatus{BrownbagNextInLine, BrownbagDone, BrownbagNotDone}
}

// ParseBrownbagStatus は文字列を状態に変換する。集合外の値はエラー。
func ParseBrownbagStatus(s string) (BrownbagStatus, error) {
	status := BrownbagStatus(s)
	if !status.Valid() {
		return "", NewInvalidBrownbagStatusError(s)
	}
	return status, nil
}

// Valid は状態が宣言済みの集合に含まれるかを返す。
func (s BrownbagStatus) Valid() bool {
	_, ok := brownbagStatusLabels[s]
	return ok
}

// Label は表示用ラベルを返す。
func (s BrownbagStatus) Label() string {
	return brownbagStatusLabels[s]
}

// Brownbag は一意な日付に割り当てられた発表枠。1アカウントにつき1件。
type Brownbag struct {
	ID        string
	Date      Date
	Status    BrownbagStatus
	AccountID string

	// Username はラベル表示用。JOINして読み込んだ場合のみ設定される。
	Username string
}

func (b *Brownbag) String() string {
	return fmt.Sprintf("%s Status: %s", b.Username, b.Status)
}
