package conversationRepository

import (
	"ReservaGolang/internal/entity"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Turns:    &turnRepository{q: sqlExecutor, log: r.log},
		Phrases:  &phraseRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Turns interface {
		CreateTurn(ctx context.Context, turn entity.ConversationTurn) error
		GetTurnsBySessionID(ctx context.Context, sessionID string, limit, offset int) ([]entity.ConversationTurn, int, error)
		GetTurnsSince(ctx context.Context, since time.Time, limit int) ([]entity.ConversationTurn, error)
		CountCompletedSince(ctx context.Context, since time.Time) (int, error)
	}

	Phrases interface {
		CreateTrainingPhrase(ctx context.Context, phrase entity.TrainingPhrase) error
		GetAllTrainingPhrases(ctx context.Context) ([]entity.TrainingPhrase, error)
	}

	Commit   func() error
	Rollback func() error
}

type turnRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type phraseRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
