package main

import (
	"context"
	"log"
	"net/http"

	"github.com/developer-overheid-nl/bottles-api/pkg/jobs"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/config"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Printf("[WARN] no database connection: %v", err)
		log.Println("[INFO] starting without database, bottle requests answer 503")
		db = nil
	}

	app := webservice.NewApp(cfg, db)

	if cfg.ImageSweepSchedule != "" {
		if _, err := jobs.ScheduleImageSweep(context.Background(), cfg.ImageSweepSchedule, app.Sweep); err != nil {
			log.Fatalf("invalid IMAGE_SWEEP_SCHEDULE %q: %v", cfg.ImageSweepSchedule, err)
		}
	}

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, app.Router))
}
