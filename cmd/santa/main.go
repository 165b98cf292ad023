package main

import (
	"context"
	"flag"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"github.com/noelops/secret-santa/internal/config"
	"github.com/noelops/secret-santa/internal/logger"
	"github.com/noelops/secret-santa/internal/mailer"
	"github.com/noelops/secret-santa/internal/matcher"
	"github.com/noelops/secret-santa/internal/settings"
)

func main() {
	// 1. Flags
	noDryRun := flag.Bool("no-dry-run", false, "actually send e-mails instead of printing them")
	testEmail := flag.Bool("test-email", false, "send one giver and one receiver e-mail to the configured test address")
	settingsPath := flag.String("settings", "", "path to settings file (overrides SETTINGS_PATH)")
	flag.Parse()

	dryRun := !*noDryRun

	// 2. Env + config
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if *settingsPath != "" {
		cfg.SettingsPath = *settingsPath
	}

	// 3. Logger
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()

	// 4. Settings
	s, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SettingsPath).Msg("settings are invalid")
	}
	log.Info().Int("participants", len(s.Participants)).Msg("settings validated")

	if err := s.ResolvePassword(dryRun && !*testEmail); err != nil {
		log.Fatal().Err(err).Msg("cannot resolve smtp password")
	}

	// 5. Template + mailer
	tmpl, err := mailer.LoadTemplate(cfg.TemplatePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TemplatePath).Msg("cannot load e-mail template")
	}

	m := mailer.New(s, tmpl, mailer.Options{
		DryRun:       dryRun,
		SendInterval: time.Duration(cfg.SendIntervalSec) * time.Second,
	}, log)

	ctx := context.Background()

	// Test-email mode: exercise the SMTP path and exit.
	if *testEmail {
		log.Info().Str("to", s.Config.Testing.Email).Msg("sending test e-mail")
		if err := m.SendTest(ctx); err != nil {
			log.Fatal().Err(err).Msg("test e-mail failed")
		}
		log.Info().Msg("test e-mail sent")
		return
	}

	// 6. Solve
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	driver := matcher.NewDriver(rng, cfg.MaxAttempts, log)

	pairing, err := driver.Run(s.Participants)
	if err != nil {
		log.Fatal().Err(err).Msg("could not pair participants")
	}
	log.Info().Int("pairs", len(pairing)).Bool("dry_run", dryRun).Msg("pairing complete")

	// 7. Deliver
	if _, err := m.Deliver(ctx, pairing); err != nil {
		log.Fatal().Err(err).Msg("delivery incomplete")
	}

	log.Info().Msg("finished")
}
