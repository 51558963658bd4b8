package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hitoshi/officehub/internal/model"
)

// ErrorResponseBody はエラーレスポンスの統一フォーマット。
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// errorStatus はエラーコードごとのHTTPステータス。
// 未登録のコードは500として扱う。
var errorStatus = map[string]int{
	model.ErrCodeAccountNotFound:         http.StatusNotFound,
	model.ErrCodeProfileNotFound:         http.StatusNotFound,
	model.ErrCodeHangoutNotFound:         http.StatusNotFound,
	model.ErrCodeGroupNotFound:           http.StatusNotFound,
	model.ErrCodeBrownbagNotFound:        http.StatusNotFound,
	model.ErrCodeSecretSantaNotFound:     http.StatusNotFound,
	model.ErrCodeDuplicateUsername:       http.StatusConflict,
	model.ErrCodeProfileAlreadyExists:    http.StatusConflict,
	model.ErrCodeDuplicateHangoutDate:    http.StatusConflict,
	model.ErrCodeDuplicateBrownbagDate:   http.StatusConflict,
	model.ErrCodeBrownbagAlreadyAssigned: http.StatusConflict,
	model.ErrCodeBiographyTooLong:        http.StatusUnprocessableEntity,
	model.ErrCodeAvatarTooLong:           http.StatusUnprocessableEntity,
	model.ErrCodeInvalidBrownbagStatus:   http.StatusUnprocessableEntity,
	model.ErrCodeReferenceNotFound:       http.StatusUnprocessableEntity,
	model.ErrCodeInvalidInput:            http.StatusBadRequest,
	model.ErrCodeRateLimitExceeded:       http.StatusTooManyRequests,
}

// StatusCode はエラーコードに対応するHTTPステータスを返す。
func StatusCode(code string) int {
	if status, ok := errorStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError はerrのチェーン中のAPIErrorを統一フォーマットで書き込む。
// APIErrorを含まないエラーは詳細を伏せてINTERNAL_ERRORとして返す。
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		apiErr = model.NewInternalError()
	}
	WriteErrorResponse(w, StatusCode(apiErr.Code), apiErr)
}

// WriteErrorResponse は指定ステータスと統一エラーフォーマットでレスポンスを書き込む。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}
