package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	env "github.com/orbitguard/deflect/internal/config"
	"github.com/orbitguard/deflect/internal/effect"
	"github.com/orbitguard/deflect/internal/loop/config"
	"github.com/orbitguard/deflect/internal/loop/server"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"

	snapshotInterval = 100 * time.Millisecond
	pingInterval     = 30 * time.Second
)

//go:embed index.html
var htmlPage string

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	host := env.GetEnv("WEB_HOST", defaultHost)
	port := env.GetEnv("WEB_PORT", defaultPort)
	sshHost := env.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Headless shared simulation, driven by the autopilot so the live
	// feed always has something happening.
	simServer := server.NewServer(config.ThreatFromEnv(), logger)
	go simServer.Run(ctx)
	go runAutopilot(ctx, simServer)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := strings.Replace(htmlPage, "{{.SSHHost}}", sshHost, -1)
		fmt.Fprint(w, page)
	})
	http.HandleFunc("/live", serveLive(simServer, logger))

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// serveLive upgrades the connection and streams simulation snapshots as
// JSON text messages until the peer goes away.
func serveLive(s *server.Server, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("upgrade failed", "err", err)
			return
		}
		defer conn.Close()

		logger.Info("live feed connected", "remote", r.RemoteAddr)

		// Reader goroutine: we never expect messages, but reading is how
		// close frames and errors surface.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		snapTicker := time.NewTicker(snapshotInterval)
		defer snapTicker.Stop()
		pingTicker := time.NewTicker(pingInterval)
		defer pingTicker.Stop()

		for {
			select {
			case <-done:
				logger.Info("live feed closed", "remote", r.RemoteAddr)
				return
			case <-snapTicker.C:
				payload, err := json.Marshal(s.GetSnapshot())
				if err != nil {
					logger.Error("snapshot marshal failed", "err", err)
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			case <-pingTicker.C:
				if err := conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
					return
				}
			}
		}
	}
}

// runAutopilot cycles through the deflection techniques and periodically
// runs an analysis so unattended viewers see the whole repertoire.
func runAutopilot(ctx context.Context, s *server.Server) {
	handle := s.RegisterClient("autopilot")
	defer s.UnregisterClient(handle.ID)

	techTicker := time.NewTicker(12 * time.Second)
	defer techTicker.Stop()
	scanTicker := time.NewTicker(45 * time.Second)
	defer scanTicker.Stop()

	next := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-techTicker.C:
			s.SendCommand(handle.ID, server.Command{
				Kind:      server.CommandToggleTechnique,
				Technique: effect.Techniques[next%len(effect.Techniques)],
			})
			next++
		case <-scanTicker.C:
			s.SendCommand(handle.ID, server.Command{Kind: server.CommandStartAnalysis})
			time.AfterFunc(12*time.Second, func() {
				s.SendCommand(handle.ID, server.Command{Kind: server.CommandCloseReport})
			})
		}
	}
}
