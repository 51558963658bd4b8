// Package model はドメインモデルを定義する。
package model

import "time"

// Account は認証サブシステムが所有するアカウントを表す。
// このリポジトリでは参照先として扱い、資格情報は保持しない。
type Account struct {
	ID         string
	Username   string
	Email      string
	FirstName  string
	LastName   string
	IsActive   bool
	DateJoined time.Time
	UpdatedAt  time.Time
}

// UsernameMaxLength はユーザー名の最大文字数。
const UsernameMaxLength = 150

func (a *Account) String() string {
	return a.Username
}
