package observer

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"lostnaut/internal/game"
)

func quietServer() *Server {
	return NewServer(log.New(io.Discard, "", 0))
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/observe"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Timed out")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var f Frame
	if err := json.Unmarshal(msg, &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return f
}

func TestPublishReachesSpectator(t *testing.T) {
	s := quietServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()
	waitFor(t, func() bool { return s.Subscribers() == 1 })

	s.Publish(game.State{Frame: 7, Deaths: 2})
	f := readFrame(t, conn)
	if f.Type != "FRAME" || f.Version != Version {
		t.Errorf("Unexpected envelope %+v", f)
	}
	if f.State.Frame != 7 || f.State.Deaths != 2 {
		t.Errorf("Expected frame 7 with 2 deaths, got %+v", f.State)
	}
}

func TestLateJoinerGetsLatest(t *testing.T) {
	s := quietServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	s.Publish(game.State{Frame: 1})
	s.Publish(game.State{Frame: 2})

	conn := dial(t, ts)
	defer conn.Close()
	if f := readFrame(t, conn); f.State.Frame != 2 {
		t.Errorf("Expected the latest frame first, got %d", f.State.Frame)
	}
}

func TestSlowSpectatorDoesNotBlock(t *testing.T) {
	s := quietServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()
	waitFor(t, func() bool { return s.Subscribers() == 1 })

	done := make(chan struct{})
	go func() {
		for i := 0; i < 2000; i++ {
			s.Publish(game.State{Frame: i})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked on a slow spectator")
	}
}

func TestLaggingSubscriberDropsFrames(t *testing.T) {
	s := quietServer()
	id, ch := s.subscribe()
	defer s.unsubscribe(id)

	for i := 0; i < subscriberBuffer+5; i++ {
		s.Publish(game.State{Frame: i})
	}
	if got := s.Dropped(); got != 5 {
		t.Errorf("Expected 5 dropped frames, got %d", got)
	}
	if len(ch) != subscriberBuffer {
		t.Errorf("Expected a full buffer, got %d", len(ch))
	}
}

func TestUnsubscribeOnClose(t *testing.T) {
	s := quietServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	waitFor(t, func() bool { return s.Subscribers() == 1 })
	conn.Close()
	waitFor(t, func() bool { return s.Subscribers() == 0 })
}

func TestStateHandler(t *testing.T) {
	s := quietServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/state", nil)
	req.RemoteAddr = "127.0.0.1:5000"
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before any frame, got %d", rec.Code)
	}

	s.Publish(game.State{Frame: 3})
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"frame":3`) {
		t.Errorf("Expected the latest frame, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRejectsRemoteClients(t *testing.T) {
	s := quietServer()
	for _, path := range []string{"/v1/observe", "/v1/state"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.1.2.3:4567"
		s.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", path, rec.Code)
		}
	}
}

func TestIsLoopbackRemote(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"127.0.0.1:80", true},
		{"[::1]:9000", true},
		{"::1", true},
		{"192.168.1.4:80", false},
		{"example.com:80", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isLoopbackRemote(tt.addr); got != tt.want {
			t.Errorf("isLoopbackRemote(%q): expected %v, got %v", tt.addr, tt.want, got)
		}
	}
}
