package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Dias221467/health-o-mania/internal/realtime"
	"github.com/Dias221467/health-o-mania/internal/services"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	jwtutil "github.com/Dias221467/health-o-mania/pkg/jwt"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SyncHandler streams live query snapshots over a websocket.
type SyncHandler struct {
	Service   *services.SyncService
	JWTSecret string
}

func NewSyncHandler(service *services.SyncService, jwtSecret string) *SyncHandler {
	return &SyncHandler{Service: service, JWTSecret: jwtSecret}
}

// SyncWebSocketHandler serves /ws/sync?token=...&topics=tasks,friends.
// Browsers cannot set headers on a websocket handshake, so the token
// travels in the query string. Each message is one realtime.Snapshot.
func (h *SyncHandler) SyncWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, r, errUnauthenticated)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		writeError(w, r, apperr.Wrap(err, apperr.Unauthenticated, "You must be logged in."))
		return
	}
	userID := claims.UserID

	topics := parseTopics(r.URL.Query().Get("topics"))
	if len(topics) == 0 {
		writeError(w, r, apperr.New(apperr.InvalidArgument, "At least one topic is required."))
		return
	}
	for _, topic := range topics {
		if _, err := h.Service.Query(userID, topic); err != nil {
			writeError(w, r, apperr.Wrap(err, apperr.InvalidArgument, "Unknown topic: "+topic+"."))
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	log := logger.Log.WithFields(logrus.Fields{"user_id": userID, "topics": topics})
	log.Info("WebSocket connected")

	// The request context is not cancelled when a hijacked connection
	// drops, so the read loop owns cancellation.
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		conn.Close()
		log.Info("WebSocket disconnected")
	}()

	merged := make(chan realtime.Snapshot)
	for _, topic := range topics {
		ch, stop, err := h.Service.Subscribe(ctx, userID, topic)
		if err != nil {
			log.WithError(err).Error("Subscribe failed")
			return
		}
		defer stop()
		go forward(ctx, ch, merged)
	}

	go readPump(conn, cancel)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case snap := <-merged:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				log.WithError(err).Debug("WebSocket write failed")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func forward(ctx context.Context, in <-chan realtime.Snapshot, out chan<- realtime.Snapshot) {
	for snap := range in {
		select {
		case out <- snap:
		case <-ctx.Done():
			return
		}
	}
}

// readPump discards client messages and cancels once the peer goes away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func parseTopics(raw string) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		topics = append(topics, t)
	}
	return topics
}
