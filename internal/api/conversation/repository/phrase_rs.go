package conversationRepository

import (
	"ReservaGolang/internal/entity"
	contextPkg "ReservaGolang/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type TrainingPhraseDB struct {
	ID        sql.NullString  `db:"id"`
	Text      sql.NullString  `db:"text"`
	Label     sql.NullString  `db:"label"`
	Weight    sql.NullFloat64 `db:"weight"`
	CreatedAt time.Time       `db:"created_at"`
}

func (r *phraseRepository) CreateTrainingPhrase(ctx context.Context, phrase entity.TrainingPhrase) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         phrase.ID,
		"text":       phrase.Text,
		"label":      phrase.Label,
		"weight":     phrase.Weight,
		"created_at": phrase.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTrainingPhrase, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTrainingPhrase")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating training phrase")
		return err
	}

	return nil
}

func (r *phraseRepository) GetAllTrainingPhrases(ctx context.Context) ([]entity.TrainingPhrase, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var rows []TrainingPhraseDB
	if err := r.q.SelectContext(ctx, &rows, r.q.Rebind(queryGetAllTrainingPhrases)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching training phrases")
		return nil, err
	}

	phrases := make([]entity.TrainingPhrase, 0, len(rows))
	for _, row := range rows {
		phrases = append(phrases, entity.TrainingPhrase{
			ID:        row.ID.String,
			Text:      row.Text.String,
			Label:     row.Label.String,
			Weight:    row.Weight.Float64,
			CreatedAt: row.CreatedAt,
		})
	}

	return phrases, nil
}
