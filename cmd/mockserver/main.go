// Command mockserver serves the ThreadsCity API in memory for local
// development of the terminal client.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fragmede/threadscity/internal/config"
	"github.com/fragmede/threadscity/internal/mockserver"
)

func main() {
	cfg := config.Load()
	addr := flag.String("addr", cfg.MockServerAddr, "listen address")
	demo := flag.Bool("demo", true, "seed the demo account hg.ducc / 123456")
	flag.Parse()

	srv := mockserver.New(mockserver.WithRequestLog())
	if *demo {
		if err := srv.AddUser("hg.ducc", "hg.ducc@example.com", "123456", "Hoàng Đức"); err != nil {
			log.Fatalf("seeding demo user: %v", err)
		}
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("mock API listening on %s/api", *addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
