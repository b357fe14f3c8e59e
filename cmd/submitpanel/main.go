package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"scriptsubmit/internal/archive"
	"scriptsubmit/internal/config"
	"scriptsubmit/internal/discord"
	"scriptsubmit/internal/logbuf"
	"scriptsubmit/internal/panel"
)

// submitpanel serves the control panel; the bot itself is started and
// stopped over HTTP rather than at boot.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Token == "" {
		log.Fatalln("DISCORD_TOKEN is not set in environment")
	}

	rec := logbuf.New()

	var arch *archive.Store
	if cfg.ArchivePath != "" {
		a, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			log.Fatalf("archive init error: %v", err)
		}
		defer a.Close()
		arch = a
	}

	bot := discord.New(cfg, rec, arch)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.PanelPort),
		Handler:      panel.NewServer(bot, rec, arch).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		rec.Infof("panel listening on :%s", cfg.PanelPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("panel server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if bot.Running() {
		if err := bot.Stop(); err != nil {
			log.Printf("bot shutdown error: %v", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Stopped")
}
