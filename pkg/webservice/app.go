package webservice

import (
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/config"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/handler"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/imagestore"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/repositories"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/services"
	"github.com/wI2L/fizz"
	"gorm.io/gorm"
)

// App holds the wired service. db may be nil, requests then answer 503.
type App struct {
	Router   *fizz.Fizz
	Messages *services.MessageService
	Batches  *services.BatchService
	Sweep    *services.SweepService
	Images   *imagestore.FileStore
}

func NewApp(cfg config.Config, db *gorm.DB) *App {
	repo := repositories.NewMessageRepository(db)
	images := imagestore.New(cfg.ImageRoot)

	messages := services.NewMessageService(repo)
	batches := services.NewBatchService(repo, images)
	sweep := services.NewSweepService(repo, images, services.DefaultSweepGrace)

	bottles := handler.NewBottlesController(messages, batches, images, handler.Options{
		BaseURL:    cfg.BaseURL,
		Debug:      cfg.Debug,
		ServerName: cfg.ServerName,
	})
	health := handler.NewHealthController(messages)

	return &App{
		Router:   NewRouter(cfg.APIVersion, cfg.BaseURL, bottles, health),
		Messages: messages,
		Batches:  batches,
		Sweep:    sweep,
		Images:   images,
	}
}
