package conversationRepository

import (
	"ReservaGolang/internal/entity"
	contextPkg "ReservaGolang/pkg/context"
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ConversationTurnDB struct {
	ID         sql.NullString  `db:"id"`
	SessionID  sql.NullString  `db:"session_id"`
	UserText   sql.NullString  `db:"user_text"`
	Intent     sql.NullString  `db:"intent"`
	Confidence sql.NullFloat64 `db:"confidence"`
	Source     sql.NullString  `db:"source"`
	Step       sql.NullString  `db:"step"`
	Reply      sql.NullString  `db:"reply"`
	Metadata   sql.NullString  `db:"metadata"`
	CreatedAt  time.Time       `db:"created_at"`
}

func (t ConversationTurnDB) toEntity() entity.ConversationTurn {
	turn := entity.ConversationTurn{
		ID:         t.ID.String,
		SessionID:  t.SessionID.String,
		UserText:   t.UserText.String,
		Intent:     t.Intent.String,
		Confidence: t.Confidence.Float64,
		Source:     t.Source.String,
		Step:       t.Step.String,
		Reply:      t.Reply.String,
		CreatedAt:  t.CreatedAt,
	}

	if t.Metadata.Valid && t.Metadata.String != "" {
		_ = json.Unmarshal([]byte(t.Metadata.String), &turn.Metadata)
	}

	return turn
}

func (r *turnRepository) CreateTurn(ctx context.Context, turn entity.ConversationTurn) error {
	requestID := contextPkg.GetRequestID(ctx)

	metadataJSON, err := json.Marshal(turn.Metadata)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal turn metadata")
		return err
	}

	argsKV := map[string]interface{}{
		"id":         turn.ID,
		"session_id": turn.SessionID,
		"user_text":  turn.UserText,
		"intent":     turn.Intent,
		"confidence": turn.Confidence,
		"source":     turn.Source,
		"step":       turn.Step,
		"reply":      turn.Reply,
		"metadata":   string(metadataJSON),
		"created_at": turn.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTurn, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTurn")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating conversation turn")
		return err
	}

	return nil
}

func (r *turnRepository) GetTurnsBySessionID(ctx context.Context, sessionID string, limit, offset int) ([]entity.ConversationTurn, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"session_id": sessionID,
		"limit":      limit,
		"offset":     offset,
	}

	query, args, err := sqlx.Named(queryGetTurnsBySessionID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for GetTurnsBySessionID")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []ConversationTurnDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Database error when fetching conversation turns")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountTurnsBySessionID, map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Database error when counting conversation turns")
		return nil, 0, err
	}

	turns := make([]entity.ConversationTurn, 0, len(rows))
	for _, row := range rows {
		turns = append(turns, row.toEntity())
	}

	return turns, total, nil
}

func (r *turnRepository) GetTurnsSince(ctx context.Context, since time.Time, limit int) ([]entity.ConversationTurn, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"since": since,
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryGetTurnsSince, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for GetTurnsSince")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []ConversationTurnDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching recent turns")
		return nil, err
	}

	turns := make([]entity.ConversationTurn, 0, len(rows))
	for _, row := range rows {
		turns = append(turns, row.toEntity())
	}

	return turns, nil
}

func (r *turnRepository) CountCompletedSince(ctx context.Context, since time.Time) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCountCompletedTurnsSince, map[string]interface{}{
		"since": since,
	})
	if err != nil {
		return 0, err
	}
	query = r.q.Rebind(query)

	var total int
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting completed turns")
		return 0, err
	}

	return total, nil
}
