package quiz

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listQuestionsQuery = `SELECT id, name FROM questions WHERE NOT is_deleted ORDER BY id`
	listOptionsQuery   = `
		SELECT id, question_id, label, suitable_type FROM options
		WHERE NOT is_deleted ORDER BY question_id, id
	`
	insertQuestionQuery = `INSERT INTO questions (name) VALUES ($1) RETURNING id`
	updateQuestionQuery = `UPDATE questions SET name = $1 WHERE id = $2 AND NOT is_deleted`
	deleteQuestionQuery = `UPDATE questions SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted`
	insertOptionQuery   = `
		INSERT INTO options (question_id, label, suitable_type)
		SELECT $1, $2, $3 WHERE EXISTS (SELECT 1 FROM questions WHERE id = $1 AND NOT is_deleted)
		RETURNING id
	`
	updateOptionQuery = `UPDATE options SET label = $1, suitable_type = $2 WHERE id = $3 AND NOT is_deleted`
	deleteOptionQuery = `UPDATE options SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted`
	optionsByIDsQuery = `
		SELECT id, question_id, label, suitable_type FROM options
		WHERE id = ANY($1::int[])
		ORDER BY array_position($1::int[], id)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListQuestions() []Question {
	rows, err := r.db.Query(listQuestionsQuery)
	if err != nil {
		return []Question{}
	}
	defer rows.Close()

	out := make([]Question, 0)
	index := make(map[int]int)
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Name); err != nil {
			continue
		}
		q.Options = []Option{}
		index[q.ID] = len(out)
		out = append(out, q)
	}

	optRows, err := r.db.Query(listOptionsQuery)
	if err != nil {
		return out
	}
	defer optRows.Close()
	for optRows.Next() {
		var opt Option
		if err := optRows.Scan(&opt.ID, &opt.QuestionID, &opt.Label, &opt.SuitableType); err != nil {
			continue
		}
		if i, ok := index[opt.QuestionID]; ok {
			out[i].Options = append(out[i].Options, opt)
		}
	}
	return out
}

func (r *PostgresRepository) CreateQuestion(q Question) (Question, error) {
	if err := r.db.QueryRow(insertQuestionQuery, q.Name).Scan(&q.ID); err != nil {
		return Question{}, err
	}
	q.Options = []Option{}
	return q, nil
}

func (r *PostgresRepository) UpdateQuestion(id int, q Question) (Question, error) {
	res, err := r.db.Exec(updateQuestionQuery, q.Name, id)
	if err != nil {
		return Question{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Question{}, ErrNotFound
	}
	q.ID = id
	return q, nil
}

func (r *PostgresRepository) DeleteQuestion(id int) error {
	res, err := r.db.Exec(deleteQuestionQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateOption(questionID int, opt Option) (Option, error) {
	err := r.db.QueryRow(insertOptionQuery, questionID, opt.Label, opt.SuitableType).Scan(&opt.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return Option{}, ErrNotFound
		}
		return Option{}, err
	}
	opt.QuestionID = questionID
	return opt, nil
}

func (r *PostgresRepository) UpdateOption(id int, opt Option) (Option, error) {
	res, err := r.db.Exec(updateOptionQuery, opt.Label, opt.SuitableType, id)
	if err != nil {
		return Option{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Option{}, ErrNotFound
	}
	opt.ID = id
	return opt, nil
}

func (r *PostgresRepository) DeleteOption(id int) error {
	res, err := r.db.Exec(deleteOptionQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListOptionsByIDs(ids []int) ([]Option, error) {
	rows, err := r.db.Query(optionsByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Option, 0, len(ids))
	for rows.Next() {
		var opt Option
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.Label, &opt.SuitableType); err != nil {
			return nil, err
		}
		out = append(out, opt)
	}
	return out, nil
}
