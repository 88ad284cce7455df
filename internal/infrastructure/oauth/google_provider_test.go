package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeGoogle levanta endpoints de token y userinfo con el perfil indicado.
func fakeGoogle(t *testing.T, profile map[string]any) *GoogleProvider {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("code") != "code-ok" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return newGoogleProvider(&oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/api/auth/callback/google",
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: []string{"openid", "email", "profile"},
	}, srv.URL+"/userinfo")
}

func TestGoogleProvider_AuthCodeURLIncluyeState(t *testing.T) {
	p := fakeGoogle(t, nil)
	u, err := url.Parse(p.AuthCodeURL("st-1"))
	require.NoError(t, err)
	assert.Equal(t, "st-1", u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
	assert.Equal(t, "google", p.Name())
}

func TestGoogleProvider_Exchange(t *testing.T) {
	p := fakeGoogle(t, map[string]any{"email": "layla@souq.test", "email_verified": true, "name": "ليلى"})

	id, err := p.Exchange(context.Background(), "code-ok")
	require.NoError(t, err)
	assert.Equal(t, "layla@souq.test", id.Email)
	assert.Equal(t, "ليلى", id.Name)
}

func TestGoogleProvider_EmailNoVerificado(t *testing.T) {
	p := fakeGoogle(t, map[string]any{"email": "x@souq.test", "email_verified": false})

	_, err := p.Exchange(context.Background(), "code-ok")
	assert.ErrorIs(t, err, ErrUnverifiedEmail)
}

func TestGoogleProvider_CodeInvalido(t *testing.T) {
	p := fakeGoogle(t, nil)

	_, err := p.Exchange(context.Background(), "code-malo")
	assert.Error(t, err)
}
