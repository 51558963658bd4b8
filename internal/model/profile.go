package model

import "time"

const (
	// AvatarMaxLength はアバター参照の最大文字数。
	AvatarMaxLength = 255
	// BiographyMaxLength は自己紹介の最大文字数。
	BiographyMaxLength = 500
)

// Profile はAccountに1対1で紐づく表示用の付加情報。
// Accountの作成時に自動生成され、直接作成されることはない。
type Profile struct {
	ID        string
	AccountID string
	Avatar    string
	BirthDate *Date
	Biography string
	UpdatedAt time.Time

	// Username はラベル表示用。accountsとJOINして読み込んだ場合のみ設定される。
	Username string
}

// NewDefaultProfile は全フィールドが既定値のProfileを生成する。
func NewDefaultProfile(id, accountID string) *Profile {
	return &Profile{
		ID:        id,
		AccountID: accountID,
	}
}

func (p *Profile) String() string {
	return p.Username
}
