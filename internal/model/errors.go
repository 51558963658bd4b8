package model

import (
	"errors"
	"fmt"
)

// APIError は統一エラーフォーマットを表す。
// 呼び出し側に表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: account, profile, schedule, validation, system
	Action   string // 利用者向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeAccountNotFound         = "ACCOUNT_NOT_FOUND"
	ErrCodeDuplicateUsername       = "DUPLICATE_USERNAME"
	ErrCodeProfileNotFound         = "PROFILE_NOT_FOUND"
	ErrCodeProfileAlreadyExists    = "PROFILE_ALREADY_EXISTS"
	ErrCodeBiographyTooLong        = "BIOGRAPHY_TOO_LONG"
	ErrCodeAvatarTooLong           = "AVATAR_TOO_LONG"
	ErrCodeHangoutNotFound         = "HANGOUT_NOT_FOUND"
	ErrCodeDuplicateHangoutDate    = "DUPLICATE_HANGOUT_DATE"
	ErrCodeGroupNotFound           = "GROUP_NOT_FOUND"
	ErrCodeBrownbagNotFound        = "BROWNBAG_NOT_FOUND"
	ErrCodeDuplicateBrownbagDate   = "DUPLICATE_BROWNBAG_DATE"
	ErrCodeBrownbagAlreadyAssigned = "BROWNBAG_ALREADY_ASSIGNED"
	ErrCodeInvalidBrownbagStatus   = "INVALID_BROWNBAG_STATUS"
	ErrCodeSecretSantaNotFound     = "SECRET_SANTA_NOT_FOUND"
	ErrCodeReferenceNotFound       = "REFERENCE_NOT_FOUND"
	ErrCodeInvalidInput            = "INVALID_INPUT"
	ErrCodeInternal                = "INTERNAL_ERROR"
	ErrCodeRateLimitExceeded       = "RATE_LIMIT_EXCEEDED"
)

// HasCode はerrのチェーン中に指定コードのAPIErrorが含まれるかを返す。
func HasCode(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// NewAccountNotFoundError はアカウント未検出エラーを生成する。
func NewAccountNotFoundError(accountID string) *APIError {
	return &APIError{
		Code:     ErrCodeAccountNotFound,
		Message:  fmt.Sprintf("指定されたアカウントが見つかりません: %s", accountID),
		Category: "account",
		Action:   "アカウントIDを確認してください。",
	}
}

// NewDuplicateUsernameError はユーザー名重複エラーを生成する。
func NewDuplicateUsernameError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateUsername,
		Message:  "このユーザー名は既に使用されています。",
		Category: "account",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewProfileNotFoundError はプロフィール未検出エラーを生成する。
// アカウント更新時にプロフィールが存在しない場合もこのエラーになる。
func NewProfileNotFoundError(accountID string) *APIError {
	return &APIError{
		Code:     ErrCodeProfileNotFound,
		Message:  fmt.Sprintf("アカウントのプロフィールが見つかりません: %s", accountID),
		Category: "profile",
		Action:   "プロフィールはアカウント作成時にのみ生成されます。管理者に連絡してください。",
	}
}

// NewProfileAlreadyExistsError はアカウントに既にプロフィールが存在する場合のエラーを生成する。
func NewProfileAlreadyExistsError(accountID string) *APIError {
	return &APIError{
		Code:     ErrCodeProfileAlreadyExists,
		Message:  fmt.Sprintf("アカウントのプロフィールは既に存在します: %s", accountID),
		Category: "profile",
		Action:   "プロフィールは1アカウントにつき1件です。既存のプロフィールを更新してください。",
	}
}

// NewBiographyTooLongError は自己紹介の文字数超過エラーを生成する。
func NewBiographyTooLongError(length int) *APIError {
	return &APIError{
		Code:     ErrCodeBiographyTooLong,
		Message:  fmt.Sprintf("自己紹介が長すぎます: %d文字", length),
		Category: "validation",
		Action:   fmt.Sprintf("自己紹介は%d文字以内で入力してください。", BiographyMaxLength),
	}
}

// NewAvatarTooLongError はアバター参照の文字数超過エラーを生成する。
func NewAvatarTooLongError(length int) *APIError {
	return &APIError{
		Code:     ErrCodeAvatarTooLong,
		Message:  fmt.Sprintf("アバターの参照が長すぎます: %d文字", length),
		Category: "validation",
		Action:   fmt.Sprintf("アバターの参照は%d文字以内で指定してください。", AvatarMaxLength),
	}
}

// NewHangoutNotFoundError はハングアウト未検出エラーを生成する。
func NewHangoutNotFoundError(hangoutID string) *APIError {
	return &APIError{
		Code:     ErrCodeHangoutNotFound,
		Message:  fmt.Sprintf("指定されたハングアウトが見つかりません: %s", hangoutID),
		Category: "schedule",
		Action:   "ハングアウトIDを確認してください。",
	}
}

// NewDuplicateHangoutDateError は同一日付のハングアウト重複エラーを生成する。
func NewDuplicateHangoutDateError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateHangoutDate,
		Message:  "この日付のハングアウトは既に登録されています。",
		Category: "schedule",
		Action:   "ハングアウトは1日に1件までです。別の日付を指定してください。",
	}
}

// NewGroupNotFoundError はグループ未検出エラーを生成する。
func NewGroupNotFoundError(groupID string) *APIError {
	return &APIError{
		Code:     ErrCodeGroupNotFound,
		Message:  fmt.Sprintf("指定されたグループが見つかりません: %s", groupID),
		Category: "schedule",
		Action:   "グループIDを確認してください。",
	}
}

// NewBrownbagNotFoundError はブラウンバッグ未検出エラーを生成する。
func NewBrownbagNotFoundError(brownbagID string) *APIError {
	return &APIError{
		Code:     ErrCodeBrownbagNotFound,
		Message:  fmt.Sprintf("指定されたブラウンバッグが見つかりません: %s", brownbagID),
		Category: "schedule",
		Action:   "ブラウンバッグIDを確認してください。",
	}
}

// NewDuplicateBrownbagDateError は同一日付のブラウンバッグ重複エラーを生成する。
func NewDuplicateBrownbagDateError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateBrownbagDate,
		Message:  "この日付のブラウンバッグは既に登録されています。",
		Category: "schedule",
		Action:   "ブラウンバッグは1日に1件までです。別の日付を指定してください。",
	}
}

// NewBrownbagAlreadyAssignedError はアカウントに発表枠が割り当て済みの場合のエラーを生成する。
func NewBrownbagAlreadyAssignedError() *APIError {
	return &APIError{
		Code:     ErrCodeBrownbagAlreadyAssigned,
		Message:  "このアカウントには既にブラウンバッグが割り当てられています。",
		Category: "schedule",
		Action:   "既存の割り当てを削除してから再度登録してください。",
	}
}

// NewInvalidBrownbagStatusError は無効な状態値のエラーを生成する。
func NewInvalidBrownbagStatusError(status string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidBrownbagStatus,
		Message:  fmt.Sprintf("無効な状態です: %s", status),
		Category: "validation",
		Action:   "状態には next_in_line、done、not_done のいずれかを指定してください。",
	}
}

// NewSecretSantaNotFoundError はシークレットサンタ未検出エラーを生成する。
func NewSecretSantaNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeSecretSantaNotFound,
		Message:  fmt.Sprintf("指定されたシークレットサンタが見つかりません: %s", id),
		Category: "schedule",
		Action:   "IDを確認してください。",
	}
}

// NewReferenceNotFoundError は参照先のレコードが存在しない場合のエラーを生成する。
func NewReferenceNotFoundError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeReferenceNotFound,
		Message:  fmt.Sprintf("参照先が存在しません: %s", detail),
		Category: "validation",
		Action:   "指定したアカウントやハングアウトが存在するか確認してください。",
	}
}

// NewInvalidInputError は入力値不正エラーを生成する。
func NewInvalidInputError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidInput,
		Message:  fmt.Sprintf("入力値が不正です: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認してください。",
	}
}

// NewInternalError は内部エラーを生成する。詳細はログのみに記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewRateLimitExceededError はリクエスト数超過エラーを生成する。
func NewRateLimitExceededError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimitExceeded,
		Message:  "リクエストが多すぎます。",
		Category: "system",
		Action:   "Retry-Afterヘッダーの秒数だけ待ってから再度お試しください。",
	}
}
