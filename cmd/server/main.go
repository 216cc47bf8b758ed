package main

import (
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/dhalverson/homebase"
	fiberadapter "github.com/dhalverson/homebase/adapters/fiber"
	fileadapter "github.com/dhalverson/homebase/adapters/file"
	"github.com/dhalverson/homebase/adapters/postgres"
	"github.com/dhalverson/homebase/config"
	"github.com/dhalverson/homebase/core"
	"github.com/dhalverson/homebase/mailer"
	"github.com/dhalverson/homebase/topics"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.FromEnv()

	storage, cleanup, err := newStorage(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}
	defer cleanup()

	app := fiber.New()

	_, err = homebase.New(homebase.Config{
		Secret:      cfg.Secret,
		Storage:     storage,
		Mailer:      newMailer(cfg, log),
		HTTP:        fiberadapter.New(app),
		AdminEmails: cfg.AdminEmails,
		BaseURL:     cfg.BaseURL,
		Log:         log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("auth init failed")
	}

	registerPages(app)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newStorage picks the backend once at startup: relational when a
// connection string is configured, otherwise the local JSON document.
func newStorage(cfg config.Config, log zerolog.Logger) (core.AuthStorage, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("using postgres storage")
		return pg, pg.Close, nil
	}

	log.Info().Str("path", cfg.AuthFile).Msg("using file storage (single-process only)")
	return fileadapter.New(cfg.AuthFile), func() {}, nil
}

func newMailer(cfg config.Config, log zerolog.Logger) mailer.Mailer {
	if cfg.Production() {
		return mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	}
	return mailer.NewLog(log)
}

// registerPages mounts the dashboard and editorial routes. The pages
// themselves are rendered client-side; these handlers only give the gate
// real paths to protect and the topics their preview/full split.
func registerPages(app *fiber.App) {
	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "home", "topics": topics.All()})
	})

	for _, slug := range []string{"wardrobe", "meals", "workouts", "wishlist", "routines"} {
		page := slug
		app.Get("/"+page, func(c fiber.Ctx) error {
			return c.JSON(fiber.Map{"page": page})
		})
	}

	app.Get("/wishlist/preview", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "wishlist-preview", "shared": true})
	})

	for _, t := range topics.All() {
		topic := t
		app.Get("/"+topic.Slug, func(c fiber.Ctx) error {
			// Preview topics decide preview-vs-full here, not at the
			// gate: unauthenticated visitors get the trimmed rendering.
			preview := topic.Visibility == topics.Preview && c.Cookies(fiberadapter.CookieName) == ""
			return c.JSON(fiber.Map{"page": topic.Slug, "preview": preview})
		})
	}
}
