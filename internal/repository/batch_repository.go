package repository

import (
	"database/sql"
	"promptsep/internal/model"
)

type BatchRepository struct {
	db *sql.DB
}

func NewBatchRepository(db *sql.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// CreateJob inserts the job and one pending item per row in a single
// transaction and returns the item IDs in row order.
func (r *BatchRepository) CreateJob(job *model.BatchJob, texts []string) ([]int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO batch_job(filename, column_name, total_items)
		VALUES($1, $2, $3)
		RETURNING id, created_at
	`, job.Filename, job.ColumnName, job.TotalItems).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, 0, len(texts))
	for i, text := range texts {
		var id int64
		err = tx.QueryRow(`
			INSERT INTO batch_item(job_id, row_index, input_text, status)
			VALUES($1, $2, $3, $4)
			RETURNING id
		`, job.ID, i, text, model.StatusPending).Scan(&id)
		if err != nil {
			return nil, err
		}
		itemIDs = append(itemIDs, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return itemIDs, nil
}

func (r *BatchRepository) GetJob(id int64) (*model.BatchJob, error) {
	var job model.BatchJob
	err := r.db.QueryRow(`
		SELECT id, filename, column_name, total_items, created_at
		FROM batch_job
		WHERE id = $1
	`, id).Scan(&job.ID, &job.Filename, &job.ColumnName, &job.TotalItems, &job.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &job, nil
}

func (r *BatchRepository) GetItemsByJobID(jobID int64) ([]model.BatchItem, error) {
	rows, err := r.db.Query(`
		SELECT id, job_id, row_index, input_text, title, prompt, output, status, error_message, attempt_count, model_used, created_at
		FROM batch_item
		WHERE job_id = $1
		ORDER BY row_index ASC
	`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.BatchItem
	for rows.Next() {
		var item model.BatchItem
		err := rows.Scan(&item.ID, &item.JobID, &item.RowIndex, &item.InputText, &item.Title, &item.Prompt, &item.Output,
			&item.Status, &item.ErrorMessage, &item.AttemptCount, &item.ModelUsed, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *BatchRepository) GetItemByID(id int64) (*model.BatchItem, error) {
	var item model.BatchItem
	err := r.db.QueryRow(`
		SELECT id, job_id, row_index, input_text, title, prompt, output, status, error_message, attempt_count, model_used, created_at
		FROM batch_item
		WHERE id = $1
	`, id).Scan(&item.ID, &item.JobID, &item.RowIndex, &item.InputText, &item.Title, &item.Prompt, &item.Output,
		&item.Status, &item.ErrorMessage, &item.AttemptCount, &item.ModelUsed, &item.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *BatchRepository) UpdateItemStatus(id int64, status string) error {
	_, err := r.db.Exec(`
		UPDATE batch_item SET status = $1 WHERE id = $2
	`, status, id)
	return err
}

func (r *BatchRepository) IncrementAttempt(id int64) (int, error) {
	var count int
	err := r.db.QueryRow(`
		UPDATE batch_item SET attempt_count = attempt_count + 1
		WHERE id = $1
		RETURNING attempt_count
	`, id).Scan(&count)
	return count, err
}

func (r *BatchRepository) SaveItemResult(item *model.BatchItem) error {
	_, err := r.db.Exec(`
		UPDATE batch_item
		SET title = $1, prompt = $2, output = $3, model_used = $4, status = $5, error_message = ''
		WHERE id = $6
	`, item.Title, item.Prompt, item.Output, item.ModelUsed, model.StatusCompleted, item.ID)
	return err
}

func (r *BatchRepository) MarkItemFailed(id int64, message string) error {
	_, err := r.db.Exec(`
		UPDATE batch_item SET status = $1, error_message = $2 WHERE id = $3
	`, model.StatusFailed, message, id)
	return err
}
