package main

import (
	"log"

	"github.com/JoshuaBalles/rgcs/internal/app"
	"github.com/JoshuaBalles/rgcs/internal/config"
	"github.com/JoshuaBalles/rgcs/internal/database"
	"github.com/JoshuaBalles/rgcs/internal/mailer"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	send := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	srv := app.New(cfg, send)

	log.Println("server listening on port", cfg.HTTPPort)
	if err := srv.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
