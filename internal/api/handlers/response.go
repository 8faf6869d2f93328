package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// RespondError отправляет ошибку с кодом причины и необязательными деталями
func RespondError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message, Details: details})
}

// RespondBadRequest отправляет 400
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message, nil)
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusUnauthorized, code, message, nil)
}

// RespondForbidden отправляет 403
func RespondForbidden(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusForbidden, code, message, nil)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message, nil)
}

// RespondConflict отправляет 409
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message, nil)
}

// RespondTooManyRequests отправляет 429
func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, CodeRateLimited, message, nil)
}

// RespondInternalError отправляет 500 без подробностей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, "внутренняя ошибка сервера", nil)
}

// DecodeJSON декодирует тело запроса, пустое тело - ошибка
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

// QueryString возвращает параметр запроса или nil, если он не задан
func QueryString(r *http.Request, name string) *string {
	values := r.URL.Query()
	if !values.Has(name) {
		return nil
	}
	v := values.Get(name)
	return &v
}

// QueryInt разбирает целочисленный параметр запроса, nil если он не задан
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := QueryString(r, name)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}
