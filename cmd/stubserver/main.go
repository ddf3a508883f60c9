// Command stubserver runs the in-memory stand-in for the QR backend so the
// CLI can be exercised without the real service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/qrtrack/internal/stub"
)

func main() {
	addr := flag.String("a", "localhost:5001", "address to listen on")
	flag.Parse()

	baseURL := fmt.Sprintf("http://%s", *addr)
	srv := &http.Server{
		Addr:    *addr,
		Handler: stub.NewRouter(stub.NewStore(), baseURL),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("stub backend listening on %s", baseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("%v", err)
	}
}
