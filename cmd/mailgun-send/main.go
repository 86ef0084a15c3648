package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Evanfeenstra/mailgun-go"
	"github.com/Evanfeenstra/mailgun-go/internal/config"
	"github.com/Evanfeenstra/mailgun-go/internal/logger"
)

func main() {
	var (
		to       addressList
		cc       addressList
		bcc      addressList
		tmplVars varMap
	)

	subject := flag.String("subject", "", "message subject")
	text := flag.String("text", "", "plain text body")
	html := flag.String("html", "", "HTML body")
	template := flag.String("template", "", "name of a template stored on the provider")
	recipientVars := flag.String("recipient-vars", "", "per-recipient template variables as a JSON object keyed by address")
	flag.Var(&to, "to", "recipient address; repeatable")
	flag.Var(&cc, "cc", "cc address; repeatable")
	flag.Var(&bcc, "bcc", "bcc address; repeatable")
	flag.Var(&tmplVars, "var", "template variable as name=value; repeatable")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail("config load", err)
	}

	baseLogger, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		fail("logger init", err)
	}
	log := baseLogger.With().
		Str("service", "mailgun-send").
		Str("send_id", uuid.NewString()).
		Logger()

	if len(to.addrs) == 0 {
		log.Fatal().Msg("at least one -to recipient is required")
	}

	var perRecipient map[string]map[string]string
	if *recipientVars != "" {
		if err := json.Unmarshal([]byte(*recipientVars), &perRecipient); err != nil {
			log.Fatal().Err(err).Msg("-recipient-vars is not a valid JSON object")
		}
	}

	client, err := mailgun.NewClient(cfg.Mailgun.Domain, cfg.Mailgun.APIKey,
		mailgun.WithLogger(log.With().Str("component", "client").Logger()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise client")
	}
	if base := cfg.Mailgun.BaseURL(); base != "" {
		client.SetZone(base)
	}

	msg := &mailgun.Message{
		To:            to.addrs,
		CC:            cc.addrs,
		BCC:           bcc.addrs,
		Subject:       *subject,
		Text:          *text,
		HTML:          *html,
		Template:      *template,
		TemplateVars:  tmplVars.vars,
		RecipientVars: perRecipient,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Send.TimeoutSeconds)*time.Second)
	defer cancel()

	log.Info().
		Str("domain", cfg.Mailgun.Domain).
		Int("recipients", len(msg.To)+len(msg.CC)+len(msg.BCC)).
		Msg("sending message")

	resp, err := client.Send(ctx, cfg.Mailgun.Sender(), msg)
	if err != nil {
		var apiErr *mailgun.APIError
		if errors.As(err, &apiErr) {
			log.Fatal().Int("status", apiErr.StatusCode).Str("body", apiErr.Body).Msg("message rejected")
		}
		log.Fatal().Err(err).Msg("send failed")
	}

	log.Info().Str("id", resp.ID).Str("message", resp.Message).Msg("message accepted")
}

func fail(stage string, err error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger.Fatal().Err(err).Str("stage", stage).Msg("mailgun-send init failed")
}
