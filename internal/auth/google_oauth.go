package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	authmw "github.com/quizmint/quizmint-server/internal/auth/middleware"
	"github.com/quizmint/quizmint-server/internal/config"
)

// GoogleLoginHandler redirects to Google OAuth. Google is the external
// identity provider; profiles and grade grants stay in our users table.
func GoogleLoginHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := r.URL.Query().Get("redirect")
		if next == "" && r.Referer() != "" {
			next = r.Referer()
		}
		if next == "" {
			base := strings.TrimRight(cfg.PublicURL, "/")
			if base == "" {
				base = "/"
			}
			next = base + "/"
		}
		if !sameOrigin(next, cfg.PublicURL) {
			http.Error(w, "bad redirect", http.StatusBadRequest)
			return
		}

		state := fmt.Sprintf("s-%d", time.Now().UnixNano())
		http.SetCookie(w, &http.Cookie{
			Name:     "qm_oauth_state",
			Value:    state,
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			Expires:  time.Now().Add(10 * time.Minute),
		})
		http.SetCookie(w, &http.Cookie{
			Name:     "qm_post_auth_redirect",
			Value:    url.QueryEscape(next),
			Path:     "/",
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			Expires:  time.Now().Add(10 * time.Minute),
		})

		q := url.Values{}
		q.Set("client_id", cfg.GoogleClientID)
		q.Set("redirect_uri", cfg.GoogleRedirectURI)
		q.Set("response_type", "code")
		q.Set("scope", "openid email profile")
		q.Set("state", state)
		if cfg.GoogleAllowedHD != "" {
			q.Set("hd", cfg.GoogleAllowedHD)
		}
		http.Redirect(w, r, "https://accounts.google.com/o/oauth2/v2/auth?"+q.Encode(), http.StatusFound)
	}
}

// GoogleCallbackHandler exchanges the code, verifies the id_token, upserts
// the user and mints an internal JWT.
func GoogleCallbackHandler(a *authmw.AuthService, db *sql.DB, cfg config.Config) http.HandlerFunc {
	type tokenResp struct {
		AccessToken string `json:"access_token"`
		IdToken     string `json:"id_token"`
	}
	type tokenInfo struct {
		Iss   string `json:"iss"`
		Aud   string `json:"aud"`
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Hd    string `json:"hd"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		if state == "" {
			http.Error(w, "missing state", http.StatusBadRequest)
			return
		}
		if c, err := r.Cookie("qm_oauth_state"); err != nil || c.Value != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		// single use
		http.SetCookie(w, &http.Cookie{
			Name:     "qm_oauth_state",
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			MaxAge:   -1,
		})
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		form := url.Values{}
		form.Set("code", code)
		form.Set("client_id", cfg.GoogleClientID)
		form.Set("client_secret", cfg.GoogleClientSecret)
		form.Set("redirect_uri", cfg.GoogleRedirectURI)
		form.Set("grant_type", "authorization_code")

		resp, err := http.PostForm("https://oauth2.googleapis.com/token", form)
		if err != nil {
			http.Error(w, "token exchange error", http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()
		var tr tokenResp
		if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil || tr.IdToken == "" {
			http.Error(w, "bad token response", http.StatusBadGateway)
			return
		}

		// NOTE: for production, verify the JWT signature against Google's
		// JWKS and check nonce instead of the tokeninfo endpoint.
		tiResp, err := http.Get("https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(tr.IdToken))
		if err != nil {
			http.Error(w, "tokeninfo fetch error", http.StatusBadGateway)
			return
		}
		defer tiResp.Body.Close()
		var ti tokenInfo
		if err := json.NewDecoder(tiResp.Body).Decode(&ti); err != nil {
			http.Error(w, "tokeninfo parse error", http.StatusBadGateway)
			return
		}
		if ti.Aud != cfg.GoogleClientID {
			http.Error(w, "invalid aud", http.StatusUnauthorized)
			return
		}
		if ti.Iss != "accounts.google.com" && ti.Iss != "https://accounts.google.com" {
			http.Error(w, "invalid iss", http.StatusUnauthorized)
			return
		}
		if cfg.GoogleAllowedHD != "" && !strings.EqualFold(ti.Hd, cfg.GoogleAllowedHD) {
			http.Error(w, "unauthorized domain", http.StatusUnauthorized)
			return
		}

		// Default role: teacher. Admins are provisioned explicitly.
		role := "teacher"
		userID := "google|" + ti.Sub
		username := ti.Email

		var existingID, existingRole string
		err = db.QueryRowContext(r.Context(),
			`SELECT id, role FROM users WHERE LOWER(email)=LOWER($1)`, ti.Email).
			Scan(&existingID, &existingRole)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, _ = db.ExecContext(r.Context(),
				`INSERT INTO users (id, username, email, password_hash, role, created_at)
				 VALUES ($1,$2,$3,'',$4,$5)`,
				userID, username, ti.Email, role, time.Now().Unix())
		case err == nil:
			if existingRole != "" {
				role = existingRole
			}
			userID = existingID
		default:
			// on DB error, continue; the role middleware decides later
		}

		tok, err := a.IssueJWT(userID, ti.Email, role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     "qm_access_token",
			Value:    tok,
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			Expires:  time.Now().Add(8 * time.Hour),
		})

		target := ""
		if c, err := r.Cookie("qm_post_auth_redirect"); err == nil {
			if raw, _ := url.QueryUnescape(c.Value); raw != "" {
				target = raw
			}
		}
		if target == "" || !sameOrigin(target, cfg.PublicURL) {
			target = strings.TrimRight(cfg.PublicURL, "/") + "/"
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}

// sameOrigin allows relative targets, the configured public origin, and
// localhost (dev).
func sameOrigin(target, publicURL string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	base, err := url.Parse(publicURL)
	if err != nil || base.Host == "" {
		return true
	}
	return u.Host == "" ||
		(u.Scheme == base.Scheme && u.Host == base.Host) ||
		strings.HasPrefix(u.Host, "localhost")
}
