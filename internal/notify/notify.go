// Package notify хранит уведомления между POST-действием и следующей
// отрисовкой страницы заказа (flash-cookie).
package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Danger  Severity = "danger"
)

// DismissAfter - через сколько страница убирает уведомление сама.
const DismissAfter = 5 * time.Second

const cookieName = "jv_flash"

// Браузер отбрасывает cookie длиннее 4096 байт целиком, вместе с ошибкой.
const (
	maxMessageRunes = 500
	maxPending      = 5
	maxCookieValue  = 3500
)

type Notification struct {
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case Info, Success, Warning, Danger:
		return Severity(s)
	default:
		return Info
	}
}

func New(message string, severity Severity) Notification {
	return Notification{
		ID:       uuid.NewString(),
		Message:  truncate(message, maxMessageRunes),
		Severity: ParseSeverity(string(severity)),
	}
}

// Show ставит уведомление в очередь к уже пришедшим в запросе r.
func Show(w http.ResponseWriter, r *http.Request, message string, severity Severity) {
	pending := append(read(r), New(message, severity))
	if len(pending) > maxPending {
		pending = pending[len(pending)-maxPending:]
	}

	value, err := encode(pending)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take возвращает накопленные уведомления и очищает cookie.
func Take(w http.ResponseWriter, r *http.Request) []Notification {
	pending := read(r)
	if len(pending) == 0 {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return pending
}

// encode отбрасывает самые старые уведомления, пока значение не влезет в cookie.
// Последнее уведомление влезает всегда: его текст ограничен maxMessageRunes.
func encode(pending []Notification) (string, error) {
	for {
		payload, err := json.Marshal(pending)
		if err != nil {
			return "", err
		}

		value := base64.RawURLEncoding.EncodeToString(payload)
		if len(value) <= maxCookieValue || len(pending) == 1 {
			return value, nil
		}

		pending = pending[1:]
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func read(r *http.Request) []Notification {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var pending []Notification
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil
	}

	for i := range pending {
		pending[i].Severity = ParseSeverity(string(pending[i].Severity))
	}

	return pending
}
