// Command summary prints the daily work summary for a given date to stdout.
// It is intended to be invoked by an external cron job or shell alias, not
// as an in-process goroutine.
//
// Usage:
//
//	summary            # today's summary
//	summary 2026-08-31 # a specific date
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/worklog-backend/internal/app"
	"github.com/heartmarshall/worklog-backend/internal/domain"
	"github.com/heartmarshall/worklog-backend/internal/service/worklog"
)

func main() {
	var input worklog.SummaryInput
	if len(os.Args) > 1 {
		date, err := time.Parse(time.DateOnly, os.Args[1])
		if err != nil {
			log.Fatalf("parse date %q: %v (expected YYYY-MM-DD)", os.Args[1], err)
		}
		input.Date = &date
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	container, err := app.NewContainer(ctx)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer container.Close()

	result, err := container.Worklog.DailySummary(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println("No journal for that date.")
			return
		}
		container.Log.Error("daily summary failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Summary for %s\n\n", result.Date.Format(time.DateOnly))
	fmt.Println(result.Summary)
	fmt.Printf("\nHours: %.2f  Sessions: %d  Tasks: %d  Learnings: %d  Challenges: %d\n",
		result.Stats.TotalHours,
		result.Stats.Sessions,
		result.Stats.TasksWorkedOn,
		result.Stats.LearningsCaptured,
		result.Stats.ChallengesNoted,
	)
}
