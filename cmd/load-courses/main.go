package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/uniak/teaching-backend/internal/config"
	"github.com/uniak/teaching-backend/internal/database"
	"github.com/uniak/teaching-backend/internal/loader"
	"github.com/uniak/teaching-backend/internal/logger"
)

func main() {
	var (
		file       string
		clearFirst bool
	)
	flag.StringVar(&file, "file", "scraped_course_data.json", "JSON file containing scraped course data")
	flag.BoolVar(&clearFirst, "clear", false, "Clear existing data before loading new data")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	f, err := os.Open(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to open data file")
	}
	doc, err := loader.ParseDocument(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to read data file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	l := loader.New(pool, log)

	if clearFirst {
		fmt.Println("Clearing existing data...")
		if err := l.Clear(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear existing data")
		}
		fmt.Println("Existing data cleared")
	}

	fmt.Printf("Loading data from %s...\n", file)
	sum, err := l.Load(ctx, doc)
	if err != nil {
		log.Fatal().Err(err).Msg("Load failed")
	}

	fmt.Printf("\nData loading complete!\n"+
		"Departments: %d\n"+
		"Institutes: %d\n"+
		"Teachers: %d\n"+
		"Courses: %d\n"+
		"New courses created: %d\n"+
		"Records skipped: %d\n",
		sum.Departments, sum.Institutes, sum.Teachers, sum.Courses, sum.CoursesCreated, sum.Failed)
}
