package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

// tokens maps bearer tokens to identities for local development.
var tokens = map[string]struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}{
	"alice-token": {ID: 1, Username: "alice"},
	"bruno-token": {ID: 2, Username: "bruno"},
	"carla-token": {ID: 3, Username: "carla"},
}

func main() {
	http.HandleFunc("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (10-50ms)
		time.Sleep(time.Duration(10+time.Now().UnixNano()%40) * time.Millisecond)

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		identity, ok := tokens[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			log.Printf("[Auth] %s %s - 401 Unauthorized", r.Method, r.URL.Path)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(identity); err != nil {
			log.Printf("[Auth] Write error: %v", err)
		}

		log.Printf("[Auth] %s %s - 200 OK (%s)", r.Method, r.URL.Path, identity.Username)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Auth] Health write error: %v", err)
		}
	})

	log.Println("Mock auth service running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
