package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-builder/internal/domain/dungeon"
	layoutsRepo "github.com/KirkDiggler/dungeon-builder/internal/repositories/layouts"
	"github.com/KirkDiggler/dungeon-builder/internal/uuid"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Parse command line arguments
	layoutID := flag.String("layout", "", "Layout ID to debug")
	levelName := flag.String("level", "", "List stored layouts for a level instead")
	flag.Parse()

	if *layoutID == "" && *levelName == "" {
		log.Fatal("Please provide a layout ID with -layout or a level with -level")
	}
	if *layoutID != "" && !uuid.IsValid(*layoutID) {
		log.Printf("Warning: layout ID %q is not a UUID; generated layouts use UUIDs", *layoutID)
	}

	// Setup Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Create repository
	repo := layoutsRepo.NewRedisRepository(&layoutsRepo.RedisRepoConfig{
		Client: client,
	})

	if *levelName != "" {
		stored, err := repo.ListByLevel(ctx, *levelName)
		if err != nil {
			log.Fatalf("Failed to list layouts: %v", err)
		}

		fmt.Printf("=== Layouts for %s ===\n", *levelName)
		for _, layout := range stored {
			fmt.Printf("  %s graph=%s seed=%d rooms=%d created=%s\n",
				layout.ID, layout.GraphID, layout.Seed, len(layout.Rooms), layout.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		if *layoutID == "" {
			return
		}
		fmt.Println()
	}

	layout, err := repo.Get(ctx, *layoutID)
	if err != nil {
		log.Fatalf("Failed to get layout: %v", err)
	}

	// Display layout information
	fmt.Printf("=== Layout ===\n")
	fmt.Printf("ID: %s\n", layout.ID)
	fmt.Printf("Level: %s\n", layout.LevelName)
	fmt.Printf("Graph: %s\n", layout.GraphID)
	fmt.Printf("Seed: %d\n", layout.Seed)
	fmt.Printf("Attempts: %d\n", layout.Attempts)
	fmt.Printf("Bounds: %s..%s\n", layout.Bounds().Lower, layout.Bounds().Upper)

	fmt.Printf("\nRooms:\n")
	for j, id := range layout.Order {
		room := layout.Rooms[id]
		if room == nil {
			fmt.Printf("  %d. %s: MISSING\n", j+1, id)
			continue
		}
		printRoom(j+1, room)
	}

	fmt.Printf("\nState Checks:\n")
	fmt.Printf("  Rooms in order: %d, rooms stored: %d\n", len(layout.Order), len(layout.Rooms))
	if entrance := layout.Entrance(); entrance != nil {
		fmt.Printf("  Entrance: %s (visited: %v)\n", entrance.ID, entrance.IsPreviouslyVisited)
	} else {
		fmt.Printf("  Entrance: MISSING\n")
	}
	for _, room := range layout.Rooms {
		if !room.IsPositioned {
			fmt.Printf("  Room %s is not positioned\n", room.ID)
		}
		if room.ParentID != "" && layout.Room(room.ParentID) == nil {
			fmt.Printf("  Room %s has unknown parent %s\n", room.ID, room.ParentID)
		}
	}
}

func printRoom(n int, room *dungeon.Room) {
	fmt.Printf("  %d. %s (%s) template=%s parent=%q\n", n, room.ID, room.Type, room.TemplateID, room.ParentID)
	fmt.Printf("     bounds %s..%s offset %s\n", room.LowerBounds, room.UpperBounds, room.WorldOffset())
	fmt.Printf("     lit=%v cleared=%v visited=%v\n", room.IsLit, room.IsClearedOfEnemies, room.IsPreviouslyVisited)
	for i, doorway := range room.Doorways {
		state := "open"
		switch {
		case doorway.IsConnected:
			state = "connected"
		case doorway.IsUnavailable:
			state = "unavailable"
		}
		fmt.Printf("     door %d %-5s at %s: %s\n", i, doorway.Orientation, room.DoorwayWorldPosition(i), state)
	}
}
