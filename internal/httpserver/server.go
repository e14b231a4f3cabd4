// internal/httpserver/server.go
//
// HTTP wiring for the message channel.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Chat endpoint: POST /chat/message delivers one (conversationId, text)
//     pair to the dialogue engine and returns the reply text.
//   - Optional channel authentication (HS256 bearer token) when
//     CHANNEL_SECRET is set.
//
// Notes:
//   - This package is the external collaborator boundary: it carries no game
//     logic. The engine computes (reply, next state); the next state is
//     persisted before the reply is written, so a delivery failure is logged
//     and never rolls back a transition.
//   - CORS is origin-aware and credentials-enabled (CLIENT_ORIGIN env).

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlebot/internal/dialogue"
	"github.com/robalobadob/wordlebot/internal/store"
	"github.com/robalobadob/wordlebot/internal/words"
)

// Server bundles router, conversation state store, engine, and word store.
type Server struct {
	r        *chi.Mux
	sessions store.Store
	engine   *dialogue.Engine
	words    *words.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(sessions store.Store, engine *dialogue.Engine, w *words.Store) *Server {
	s := &Server{r: chi.NewRouter(), sessions: sessions, engine: engine, words: w}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordlebot","endpoints":["/health","POST /chat/message"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Chat endpoint — optionally gated by the channel secret.
	s.r.With(withChannelAuth()).Post("/chat/message", s.handleMessage)

	// Debug: word list counts
	s.r.Get("/debug/words", func(rw http.ResponseWriter, r *http.Request) {
		p, d := s.words.Stats()
		_ = json.NewEncoder(rw).Encode(map[string]int{"playable": p, "dictionary": d})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router. The owning process wraps it in an
// http.Server for graceful shutdown; tests serve it directly.
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withChannelAuth gates chat requests behind an HS256 bearer token when
// CHANNEL_SECRET is set. With no secret configured (dev), requests pass
// through, mirroring how the messaging provider would authenticate upstream.
func withChannelAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := os.Getenv("CHANNEL_SECRET")
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ------------------------------- CHAT --------------------------------------

// messageReq/Res payloads for POST /chat/message.
type messageReq struct {
	ConversationID string `json:"conversationId"`
	Text           string `json:"text"`
}
type messageRes struct {
	Reply string `json:"reply"`
}

// handleMessage delivers one inbound message to the dialogue engine.
// The conversation's next state is persisted inside sessions.Update before
// the reply is encoded; transport problems after that point are logged only.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.ConversationID == "" {
		http.Error(w, `{"error":"missing_conversation_id"}`, http.StatusBadRequest)
		return
	}

	var reply string
	err := s.sessions.Update(r.Context(), req.ConversationID, func(st dialogue.State) dialogue.State {
		var next dialogue.State
		reply, next = s.engine.Handle(st, req.Text)
		return next
	})
	if err != nil {
		log.Error().Err(err).Str("conversation", req.ConversationID).Msg("update conversation state")
		http.Error(w, `{"error":"state_update_failed"}`, http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(messageRes{Reply: reply}); err != nil {
		// State is already committed; a lost reply never rolls it back.
		log.Warn().Err(err).Str("conversation", req.ConversationID).Msg("deliver reply")
	}
}
