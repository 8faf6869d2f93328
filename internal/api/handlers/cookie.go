package handlers

import (
	"net/http"
	"time"
)

// CookieSettings параметры сессионной cookie
type CookieSettings struct {
	Name   string
	Domain string
	Secure bool
}

// SetSessionCookie выставляет HttpOnly cookie сессии
func SetSessionCookie(w http.ResponseWriter, s CookieSettings, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    value,
		Path:     "/",
		Domain:   s.Domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет cookie сессии
func ClearSessionCookie(w http.ResponseWriter, s CookieSettings) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		Domain:   s.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
