package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/app"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/observability"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/config"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/services/afterschool"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/services/notifications"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("BRAININK_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	shutdown := observability.InitTracing(ctx, log, observability.OtelConfig{
		ServiceName: "afterschool-cli",
	})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()
	metrics := observability.Init()
	defer func() {
		for key, st := range metrics.Snapshot() {
			log.Debug("request metric",
				"key", key,
				"count", st.Count,
				"errors", st.Errors,
				"total_latency", st.TotalLatency.String(),
			)
		}
	}()

	client, err := app.New(log, cfg)
	if err != nil {
		log.Fatal("client init failed", "error", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(ctx, client, os.Args[1], os.Args[2:]); err != nil {
		log.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *app.Client, command string, args []string) error {
	switch command {
	case "courses":
		list, err := client.AfterSchool.ListCourses(ctx, afterschool.CourseFilter{})
		if err != nil {
			return err
		}
		return printJSON(list)

	case "course":
		id, err := intArg(args, 0, "course id")
		if err != nil {
			return err
		}
		unified, err := client.AfterSchool.GetUnifiedCourse(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(unified)

	case "dashboard":
		dash, err := client.AfterSchool.GetDashboard(ctx)
		if err != nil {
			return err
		}
		return printJSON(dash)

	case "progress":
		id, err := intArg(args, 0, "course id")
		if err != nil {
			return err
		}
		blocks, err := client.AfterSchool.GetBlocksProgress(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(blocks)

	case "notifications":
		items, err := client.Notifications.List(ctx, notifications.ListFilter{Limit: 50})
		if err != nil {
			return err
		}
		return printJSON(items)

	case "mark-done":
		blockID, err := intArg(args, 0, "block id")
		if err != nil {
			return err
		}
		courseID, err := intArg(args, 1, "course id")
		if err != nil {
			return err
		}
		record, err := client.AfterSchool.MarkBlockDone(ctx, blockID, courseID)
		if err != nil {
			return err
		}
		return printJSON(record)

	case "digest":
		digest, err := client.Progress.GetWeeklyDigest(ctx, time.Time{})
		if err != nil {
			return err
		}
		return printJSON(digest)

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func intArg(args []string, idx int, name string) (int, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("%s required", name)
	}
	v, err := strconv.Atoi(args[idx])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[idx])
	}
	return v, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: afterschool <command> [args]

commands:
  courses                  list the course catalog
  course <id>              unified course fetch (blocks, lessons, assignments)
  dashboard                home-screen aggregate
  progress <course-id>     per-block completion for a course
  notifications            recent notifications
  mark-done <block> <course>  record a block as completed
  digest                   weekly AI progress digest`)
}
