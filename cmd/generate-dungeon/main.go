package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-builder/internal/config"
	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	"github.com/KirkDiggler/dungeon-builder/internal/events"
	"github.com/KirkDiggler/dungeon-builder/internal/render"
	"github.com/KirkDiggler/dungeon-builder/internal/repositories/layouts"
	"github.com/KirkDiggler/dungeon-builder/internal/repositories/levels"
	dungeonService "github.com/KirkDiggler/dungeon-builder/internal/services/dungeon"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Parse command line arguments
	levelName := flag.String("level", "", "Level to generate (default: every level in -levels)")
	levelsDir := flag.String("levels", cfg.Dungeon.LevelsDir, "Directory of level JSON files")
	seed := flag.Int64("seed", cfg.Dungeon.Seed, "Seed for reproducible layouts (0 seeds from the clock)")
	save := flag.Bool("save", false, "Store generated layouts in Redis (requires REDIS_URL)")
	preview := flag.Bool("preview", true, "Print an ASCII preview of each layout")
	flag.Parse()

	loaded, err := levels.LoadDir(*levelsDir, cfg.Dungeon.Settings.MaxChildCorridors)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}
	if len(loaded) == 0 {
		log.Fatalf("No level files found in %s", *levelsDir)
	}

	// Report the seed of every failed level so it can be replayed
	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypeGenerationFailed, &events.ListenerFunc{
		Name: "cli-failure-reporter",
		Fn: func(e events.Event) error {
			if failed, ok := e.(*events.GenerationFailedEvent); ok {
				log.Printf("Level %s failed with seed %d: %v", failed.LevelName, failed.Seed, failed.Err)
			}
			return nil
		},
	})

	ctx := context.Background()
	service := dungeonService.NewService(&dungeonService.ServiceConfig{
		Repository: layoutRepository(ctx, cfg, *save),
		Levels:     levels.NewInMemoryRepository(loaded...),
		Settings:   &cfg.Dungeon.Settings,
		Timeout:    cfg.Dungeon.Timeout,
		EventBus:   eventBus,
	})

	names := []string{*levelName}
	if *levelName == "" {
		names = names[:0]
		for _, level := range loaded {
			names = append(names, level.Name)
		}
	}

	output, err := service.GenerateBatch(ctx, &dungeonService.GenerateBatchInput{
		LevelNames: names,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("Failed to generate dungeon: %v", err)
	}

	for _, layout := range output.Layouts {
		printLayout(layout, *preview)
	}
}

// layoutRepository stores in Redis when asked to and configured, in memory otherwise
func layoutRepository(ctx context.Context, cfg *config.Config, save bool) layouts.Repository {
	if !save {
		return layouts.NewInMemoryRepository()
	}
	if !cfg.Redis.Enabled() {
		log.Fatal("-save requires REDIS_URL")
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	return layouts.NewRedis(client)
}

func printLayout(layout *dungeon.Layout, preview bool) {
	fmt.Printf("=== Layout %s ===\n", layout.ID)
	fmt.Printf("Level: %s\n", layout.LevelName)
	fmt.Printf("Graph: %s\n", layout.GraphID)
	fmt.Printf("Seed: %d\n", layout.Seed)
	fmt.Printf("Attempts: %d\n", layout.Attempts)
	fmt.Printf("Rooms: %d\n", len(layout.Rooms))

	for _, id := range layout.Order {
		room := layout.Rooms[id]
		fmt.Printf("  %-12s %-12s %-20s %s..%s doors %d/%d\n",
			room.ID, room.Type, room.TemplateID, room.LowerBounds, room.UpperBounds,
			room.ConnectedDoorways(), len(room.Doorways))
	}

	if preview {
		fmt.Println()
		fmt.Print(render.ASCII(layout))
	}
	fmt.Println()
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\nGenerates dungeon layouts from level files.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}
