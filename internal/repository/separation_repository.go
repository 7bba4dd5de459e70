package repository

import (
	"database/sql"
	"promptsep/internal/model"
)

type SeparationRepository struct {
	db *sql.DB
}

func NewSeparationRepository(db *sql.DB) *SeparationRepository {
	return &SeparationRepository{db: db}
}

func (r *SeparationRepository) Save(s *model.Separation) error {
	return r.db.QueryRow(`
		INSERT INTO separation(input_text, title, prompt, output, prompt_version, model_used)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, s.InputText, s.Title, s.Prompt, s.Output, s.PromptVersion, s.ModelUsed).Scan(&s.ID, &s.CreatedAt)
}

func (r *SeparationRepository) GetHistory(limit, offset int) ([]model.Separation, error) {
	rows, err := r.db.Query(`
		SELECT id, input_text, title, prompt, output, prompt_version, model_used, created_at
		FROM separation
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var separations []model.Separation
	for rows.Next() {
		var s model.Separation
		err := rows.Scan(&s.ID, &s.InputText, &s.Title, &s.Prompt, &s.Output, &s.PromptVersion, &s.ModelUsed, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		separations = append(separations, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return separations, nil
}

func (r *SeparationRepository) GetHistoryTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM separation`).Scan(&total)
	return total, err
}

func (r *SeparationRepository) ClearHistory() error {
	_, err := r.db.Exec(`DELETE FROM separation`)
	return err
}
