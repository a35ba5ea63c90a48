package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/developer-overheid-nl/bottles-api/pkg/msgimport"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/config"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/database"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/imagestore"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/repositories"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/services"
)

func main() {
	csvPath := flag.String("csv", "messages.csv", "path to the message export CSV")
	imageDir := flag.String("images", "", "directory the img column is relative to (default: directory of -csv)")
	dryRun := flag.Bool("dry-run", false, "parse without writing to the database")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var writer msgimport.Writer
	if !*dryRun {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		repo := repositories.NewMessageRepository(db)
		writer = services.NewBatchService(repo, imagestore.New(cfg.ImageRoot))
	}

	result, err := msgimport.ImportCSV(context.Background(), writer, msgimport.Options{
		CSVPath:  *csvPath,
		ImageDir: *imageDir,
		DryRun:   *dryRun,
	})
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	if result.ParseErrors > 0 || result.Rejected > 0 {
		os.Exit(1)
	}
}
