package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventsWriteWait  = 10 * time.Second
	eventsPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// events は状態が変わるたびにスナップショットを WebSocket で送信します。
// 接続直後に現在の状態を 1 回送ります。
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	ctl, ok := s.sessions.Lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "no session")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "WebSocket へのアップグレードに失敗しました", "error", err)
		return
	}
	defer conn.Close()

	// クライアントからのメッセージは読み捨て、切断だけを検知します。
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(eventsPingPeriod)
	defer ping.Stop()

	for {
		changed := ctl.Changed()
		_ = conn.SetWriteDeadline(time.Now().Add(eventsWriteWait))
		if err := conn.WriteJSON(newStateView(ctl.Snapshot())); err != nil {
			return
		}

		if !waitForChange(conn, changed, closed, ping.C) {
			return
		}
	}
}

// waitForChange は状態の変化を待つ間、定期的に ping を送ります。
// 切断やエラーで待機を打ち切った場合は false を返します。
func waitForChange(conn *websocket.Conn, changed, closed <-chan struct{}, ping <-chan time.Time) bool {
	for {
		select {
		case <-changed:
			return true
		case <-closed:
			return false
		case <-ping:
			_ = conn.SetWriteDeadline(time.Now().Add(eventsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return false
			}
		}
	}
}
