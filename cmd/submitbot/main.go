package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"scriptsubmit/internal/archive"
	"scriptsubmit/internal/config"
	"scriptsubmit/internal/discord"
	"scriptsubmit/internal/logbuf"
)

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
	if err := bot.Start(); err != nil {
		log.Fatalf("cannot start bot: %v", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down.")
	if err := bot.Stop(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
