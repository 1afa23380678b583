package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quorumdao/govproposals/src/propd/config"
	"github.com/quorumdao/govproposals/src/propd/webserver"
	"github.com/quorumdao/govproposals/src/shared/data"
	"github.com/quorumdao/govproposals/src/shared/gov"
)

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	rdb := data.MustRedis(cfg.RedisURL)

	store := gov.NewStore(data.NewStreamEmitter(rdb))
	st, err := data.LoadState(db)
	if err != nil {
		log.Fatalf("load state: %v", err)
	}
	if err := store.RestoreState(st); err != nil {
		log.Fatalf("restore state: %v", err)
	}
	log.Printf("restored %d proposals, %d ballots", len(st.Proposals), len(st.Ballots))

	ctx, cancel := context.WithCancel(context.Background())

	// Periodic state snapshots; a final one runs on shutdown.
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.SnapshotInterval) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := data.SaveState(db, store.ExportState()); err != nil {
					log.Printf("snapshot: %v", err)
				}
			}
		}
	}()

	router := webserver.New(cfg, store, rdb)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	cancel()
	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)

	if err := data.SaveState(db, store.ExportState()); err != nil {
		log.Printf("final snapshot: %v", err)
	}
}
