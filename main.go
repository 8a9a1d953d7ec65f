package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"yatube/crud"
	"yatube/domain"
	"yatube/http"
	"yatube/storage"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're running
	// in production, where a .config.json file is required before the
	// application starts.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	seedGroup := flag.String("seedgroup", "", "Create a group before serving, format: slug:title[:description]. Groups have no http write surface.")
	flag.Parse()

	config := LoadConfig(*productionBool)

	// Structured logging for the whole process.
	level := slog.LevelDebug
	if config.IsProd() {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper, config.HMACKey),
		crud.WithPost(),
		crud.WithGroup(),
		crud.WithComment(),
		crud.WithFollow(),
	)
	must(err)

	if *seedGroup != "" {
		must(seedGroupFromFlag(services.Group, *seedGroup))
	}

	// Image files live on disk, below the configured media directory.
	images := storage.NewImageService(config.MediaDir)

	// Set up a webserver.
	server := http.NewServer(services, images, http.Options{
		CSRFKey:     config.CSRFKey,
		CSRFEnabled: config.CSRFEnabled,
		CSRFSecure:  config.IsProd(),
		CacheTTL:    time.Duration(config.CacheTTLSecs) * time.Second,
		MediaDir:    config.MediaDir,
	})

	// Serve the app.
	server.Run(config.Port)
}

// seedGroupFromFlag parses "slug:title[:description]" and creates the group.
// An already existing slug is not an error, so the flag is safe to leave in
// a start script.
func seedGroupFromFlag(gs *crud.GroupService, arg string) error {
	parts := strings.SplitN(arg, ":", 3)
	group := domain.Group{
		Slug:  parts[0],
		Title: parts[0],
	}
	if len(parts) > 1 && parts[1] != "" {
		group.Title = parts[1]
	}
	if len(parts) > 2 {
		group.Description = parts[2]
	}
	if _, err := gs.BySlug(group.Slug); err == nil {
		slog.Info("group already exists, skipping seed", "slug", group.Slug)
		return nil
	}
	if err := gs.Create(&group); err != nil {
		return err
	}
	slog.Info("seeded group", "slug", group.Slug)
	return nil
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
