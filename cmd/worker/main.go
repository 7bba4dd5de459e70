package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"promptsep/db"
	"promptsep/internal/model"
	"promptsep/internal/repository"
	"promptsep/pkg/llm"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const maxAttempts = 3

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	batchRepo := repository.NewBatchRepository(db.DB)

	separator, err := llm.NewFromEnv()
	if err != nil {
		log.Fatalf("error configuring LLM provider: %v", err)
	}

	for {
		raw, err := db.PopFromQueue(db.BatchQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		itemID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			slog.Error("invalid batch item id in queue", "id", raw, "error", err)
			continue
		}

		item, err := batchRepo.GetItemByID(itemID)
		if err != nil {
			slog.Error("error getting batch item from DB", "error", err, "item_id", itemID)
			continue
		}

		if item == nil {
			slog.Warn("batch item not found in DB", "item_id", itemID)
			continue
		}

		attempts, err := batchRepo.IncrementAttempt(itemID)
		if err != nil {
			slog.Error("error incrementing attempt count", "error", err, "item_id", itemID)
			continue
		}

		if err := batchRepo.UpdateItemStatus(itemID, model.StatusProcessing); err != nil {
			slog.Error("error updating item status", "error", err, "item_id", itemID)
			continue
		}

		result, err := separator.Separate(llm.SeparationInput{Text: item.InputText})
		if err != nil {
			slog.Error("separation failed", "item_id", itemID, "attempt", attempts, "error", err)

			if attempts >= maxAttempts {
				slog.Warn("batch item exceeded max attempts, marking as failed", "item_id", itemID, "attempts", attempts)
				if err := batchRepo.MarkItemFailed(itemID, err.Error()); err != nil {
					slog.Error("error marking item failed", "error", err, "item_id", itemID)
				}
				if err := db.PushToQueue(db.DeadLetterKey, raw); err != nil {
					slog.Error("error pushing to dead letter queue", "error", err, "item_id", itemID)
				}
				continue
			}

			if err := batchRepo.UpdateItemStatus(itemID, model.StatusPending); err != nil {
				slog.Error("error resetting item status", "error", err, "item_id", itemID)
			}
			if err := db.PushToQueue(db.BatchQueueKey, raw); err != nil {
				slog.Error("error requeueing item", "error", err, "item_id", itemID)
			}
			continue
		}

		item.Title = result.Title
		item.Prompt = result.Prompt
		item.Output = result.Output
		item.ModelUsed = result.ModelUsed

		if err := batchRepo.SaveItemResult(item); err != nil {
			slog.Error("error saving batch item result", "error", err, "item_id", itemID)
			continue
		}

		slog.Info("batch item separated", "item_id", itemID, "model", result.ModelUsed)
	}
}
