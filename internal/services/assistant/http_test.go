package assistant

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"tailortalk/internal/modkit"
	"tailortalk/internal/modkit/httpkit"
	phttp "tailortalk/internal/platform/net/http"
)

type chatEnvelope struct {
	StatusCode int          `json:"status_code"`
	Status     string       `json:"status"`
	Error      string       `json:"error"`
	Data       ChatResponse `json:"data"`
}

func chatServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc, _ := fixedService(t)
	mux := chi.NewRouter()
	mod := NewModule(modkit.Deps{Log: zerolog.Nop()}, svc)
	mod.MountRoutes(phttp.AdaptChi(mux))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, body string) (*http.Response, chatEnvelope) {
	t.Helper()
	resp, err := srv.Client().Post(srv.URL+"/assistant/chat", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	var env chatEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp, env
}

func TestChatEndpoint(t *testing.T) {
	srv := chatServer(t)

	resp, env := postChat(t, srv, `{"message":"hi"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if env.Data.Response != greetingReply {
		t.Fatalf("response = %q", env.Data.Response)
	}

	_, env = postChat(t, srv, `{"message":"help"}`)
	if env.Data.Response != helpReply {
		t.Fatalf("help response = %q", env.Data.Response)
	}
}

// TestChatMountedUnderAPIV1 wires the module the way the API binary
// does and checks the versioned path answers.
func TestChatMountedUnderAPIV1(t *testing.T) {
	svc, _ := fixedService(t)
	mux := chi.NewRouter()
	mod := NewModule(modkit.Deps{Log: zerolog.Nop()}, svc)
	httpkit.MountAPIV1(phttp.AdaptChi(mux), nil, mod.MountRoutes)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	var env chatEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if env.Data.Response != greetingReply {
		t.Fatalf("response = %q", env.Data.Response)
	}
}

func TestChatEndpointValidation(t *testing.T) {
	srv := chatServer(t)

	resp, _ := postChat(t, srv, `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing message status = %d", resp.StatusCode)
	}

	resp, _ = postChat(t, srv, `{"message":`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d", resp.StatusCode)
	}

	resp, _ = postChat(t, srv, `{"message":"hi","extra":true}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown field status = %d", resp.StatusCode)
	}
}
