// file: main.go
package main

import (
	"RecipeBattle/database"
	"RecipeBattle/metrics"
	"RecipeBattle/routes"
	"RecipeBattle/services"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	database.Connect()
	if os.Getenv("AUTO_MIGRATE") == "1" {
		database.MigrateTables()
	}
	database.InitRedis()

	metrics.Register()

	// 后台任务随进程生命周期启停：收到信号后随 ctx 取消退出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go services.StartStatusReconciler(ctx, database.DB)
	go services.StartLeaderboardRefresher(ctx, database.DB)

	r := routes.SetupRouter()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Println("Starting server on " + addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited.")
}
