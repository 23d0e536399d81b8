package main

import (
	"context"
	"log"
	"time"

	"go-job-digest/internal/config"
	"go-job-digest/internal/mailer"
	"go-job-digest/internal/pipeline"
	"go-job-digest/internal/reporter"
	"go-job-digest/internal/scraper/serper"
	"go-job-digest/internal/telegram"
)

func main() {
	//load config
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Printf("⚠️ Config problem, continuing with defaults: %v", err)
	}
	if missing := cfg.Missing(); len(missing) > 0 {
		log.Printf("⚠️ Missing secrets: %v", missing)
	}
	log.Printf("🔧 Config loaded. Query: %q (%s/%s, last %s)", cfg.Query, cfg.Region, cfg.Language, cfg.Recency)

	query, err := pipeline.QueryFromConfig(cfg)
	if err != nil {
		log.Printf("⚠️ %v, using last day", err)
	}

	//setup context with timeout = 2 mins
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := serper.NewClient(cfg.SerperAPIKey,
		serper.WithEndpoint(cfg.SearchEndpoint),
		serper.WithNum(cfg.ResultCount),
		serper.WithTimeout(cfg.SearchTimeout),
	)

	runner := pipeline.NewRunner(
		client,
		reporter.NewHTMLReporter(cfg.ReportHeading),
		mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort),
		query,
		pipeline.Credentials{
			From:     cfg.SenderEmail,
			To:       cfg.ReceiverEmail,
			Password: cfg.SenderPassword,
		},
		cfg.SubjectPrefix,
	)

	//telegram is optional
	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
		} else {
			log.Println("🤖 Telegram Bot initialized.")
			runner.WithNotifier(bot)
		}
	}

	res := runner.Run(ctx)

	log.Printf("🏁 Execution finished. %d jobs, email sent: %t", len(res.Jobs), res.Sent)
}
