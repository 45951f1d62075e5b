package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// workerReadLimit bounds incoming tile results. A tile result is JSON, so
// a 64×64 tile at a few digits per count is tens of kilobytes; leave
// ample headroom for larger tiles and deep iteration limits.
const workerReadLimit = 1 << 22

// webServer builds the HTTP server with the worker websocket endpoint
// and the finished-grid endpoint.
func webServer(ctx context.Context, port int, sched *gridScheduler) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", workerHandler(ctx, sched))
	mux.HandleFunc("/grid", gridHandler(sched))

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// workerHandler upgrades the connection and drives a worker session on
// it: every connected worker renders tiles until none remain.
func workerHandler(ctx context.Context, sched *gridScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		c.SetReadLimit(workerReadLimit)

		log.Printf("got connection from: %s", r.RemoteAddr)

		if err := sched.serveWorker(ctx, c); err != nil {
			log.Printf("err: worker %q: %v", r.RemoteAddr, err)
			c.Close(websocket.StatusInternalError, "worker session failed")
			return
		}
		c.Close(websocket.StatusNormalClosure, "all tiles rendered")
	}
}

// gridHandler serves the assembled grid as JSON. The response is sent
// once the render is complete; until then the request blocks, mirroring
// GridProvider.GetGrid.
func gridHandler(sched *gridScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grid, err := sched.GetGrid()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(grid); err != nil {
			log.Printf("err: encode grid for %q: %v", r.RemoteAddr, err)
		}
	}
}
