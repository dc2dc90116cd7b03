package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"words-of-healing/internal/app"
	"words-of-healing/internal/domain"
)

// WSHandler drives one ProgressionController per participant connection:
// controller events stream out, submissions stream in.
type WSHandler struct {
	sync     *app.UnlockSync
	ranks    *app.RankResolver
	store    app.ParticipantStore
	puzzles  app.PuzzleProvider
	timing   app.Timing
	upgrader websocket.Upgrader
}

func NewWSHandler(unlockSync *app.UnlockSync, ranks *app.RankResolver, store app.ParticipantStore, puzzles app.PuzzleProvider, timing app.Timing) *WSHandler {
	return &WSHandler{
		sync:    unlockSync,
		ranks:   ranks,
		store:   store,
		puzzles: puzzles,
		timing:  timing,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type joinedPayload struct {
	Name         string `json:"name"`
	Region       string `json:"region"`
	SecurityCode string `json:"securityCode"`
}

// ServeWS upgrades the request and plays the whole event over the socket.
// Query params: name (required, >=2 chars), region, code (optional re-entry
// security code).
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	region := r.URL.Query().Get("region")

	session, err := app.NewSession(name, region)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if code := r.URL.Query().Get("code"); code != "" {
		session.SetSecurityCode(code)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	controller := app.NewController(session, h.sync, h.ranks, h.store, h.puzzles, h.timing)

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := controller.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("ws controller stopped: %v", err)
		}
	}()

	eventsDone := make(chan struct{})
	go func() {
		defer close(eventsDone)
		for event := range controller.Events() {
			select {
			case send <- outboundMessage[any]{Type: string(event.Type), Payload: event}:
			case <-ctx.Done():
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "joined", Payload: joinedPayload{
		Name:         session.Name(),
		Region:       session.Region(),
		SecurityCode: session.SecurityCode(),
	}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "submit":
			var answer domain.Answer
			if err := json.Unmarshal(inbound.Payload, &answer); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid submit payload"}}
				continue
			}
			controller.Submit(answer)
		case "verify":
			var payload struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid verify payload"}}
				continue
			}
			ok, err := session.Verify(payload.Code)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "verified", Payload: map[string]bool{"ok": ok}}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	cancel()
	<-runDone
	<-eventsDone
	close(send)
	<-writerDone
}
