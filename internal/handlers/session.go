package handlers

import (
	"context"
	"net/http"

	applog "pizzacost/internal/log"
	"pizzacost/internal/pricing"
	"pizzacost/internal/views/theme"
)

const (
	sessionOverridesKey = "pricing:overrides"
	sessionThemeKey     = "ui:theme"
)

// sessionOverrides returns the margin overrides stored in the caller's session. A missing
// session manager or an unreadable value yields an empty set.
func sessionOverrides(ctx context.Context) pricing.Overrides {
	if sessionManager == nil {
		return pricing.Overrides{}
	}
	overrides, err := pricing.DecodeOverrides(sessionManager.GetString(ctx, sessionOverridesKey))
	if err != nil {
		applog.Warn(ctx, "discarding unreadable margin overrides", "error", err)
		sessionManager.Remove(ctx, sessionOverridesKey)
		return pricing.Overrides{}
	}
	return overrides
}

func storeOverrides(ctx context.Context, overrides pricing.Overrides) error {
	if sessionManager == nil {
		return errNoSession
	}
	encoded, err := overrides.Encode()
	if err != nil {
		return err
	}
	if encoded == "" {
		sessionManager.Remove(ctx, sessionOverridesKey)
		return nil
	}
	sessionManager.Put(ctx, sessionOverridesKey, encoded)
	return nil
}

// sessionTheme resolves the page theme. A known ?theme= value is remembered in the session.
func sessionTheme(r *http.Request) theme.Theme {
	requested := r.URL.Query().Get("theme")
	if sessionManager == nil {
		return theme.Resolve(requested)
	}
	if theme.Known(requested) {
		resolved := theme.Resolve(requested)
		sessionManager.Put(r.Context(), sessionThemeKey, resolved.Key)
		return resolved
	}
	return theme.Resolve(sessionManager.GetString(r.Context(), sessionThemeKey))
}
