package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout はDateの文字列表現に使うレイアウト。
const DateLayout = "2006-01-02"

// Date は時刻を持たない暦日を表す。
// PostgreSQLのDATE型と相互変換できる。ゼロ値は未設定を意味する。
type Date struct {
	t time.Time
}

// NewDate は年月日からDateを生成する。
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf は時刻の暦日部分だけを取り出す。
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate は "2006-01-02" 形式の文字列をDateに変換する。
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time はUTCの0時を指すtime.Timeを返す。
func (d Date) Time() time.Time {
	return d.t
}

// IsZero は未設定かどうかを返す。
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before はdがuより前の日付であればtrueを返す。
func (d Date) Before(u Date) bool {
	return d.t.Before(u.t)
}

// Equal は同じ暦日かどうかを返す。
func (d Date) Equal(u Date) bool {
	return d.t.Equal(u.t)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Value はdriver.Valuerを実装する。
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// Scan はsql.Scannerを実装する。
// lib/pqはDATE列をtime.Timeで返すが、テキストプロトコル経由の文字列も受け付ける。
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
