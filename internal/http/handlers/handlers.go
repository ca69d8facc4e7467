package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/service"
)

// Handlers агрегирует зависимости (сервисный слой).
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — вспомогалка: локальная ошибка парсинга -> 400.
func errInvalidArgument(msg string) error {
	return fmt.Errorf("%s: %w", msg, service.ErrInvalidArgument)
}

// identityFromRequest извлекает идентичность из заголовков.
//
// Контракт: ровно один из X-User-Id / X-Session-Id обязан быть задан.
// Оба сразу или ни одного — ошибка валидации: инвариант «user XOR
// session» проверяется на границе и дальше живёт в типе Identity.
func identityFromRequest(r *http.Request) (models.Identity, error) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	sessionID := strings.TrimSpace(r.Header.Get("X-Session-Id"))

	switch {
	case userID != "" && sessionID != "":
		return models.Identity{}, errInvalidArgument("exactly one of X-User-Id/X-Session-Id must be set")
	case userID != "":
		return models.UserIdentity(userID), nil
	case sessionID != "":
		return models.SessionIdentity(sessionID), nil
	default:
		return models.Identity{}, errInvalidArgument("identity header is required")
	}
}

// queryInt32 разбирает числовой query-параметр; отсутствие -> 0.
func queryInt32(r *http.Request, name string) (int32, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, errInvalidArgument("invalid " + name)
	}

	return int32(n), nil
}

// queryList разбирает параметр-список: повторяющиеся значения и
// comma-separated формы равнозначны (?category=a&category=b ==
// ?category=a,b). Пустые элементы отбрасываются.
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
