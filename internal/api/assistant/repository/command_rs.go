package assistantRepository

import (
	"ProjectSenorita/internal/entity"
	contextPkg "ProjectSenorita/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CommandLogDB struct {
	ID           sql.NullString `db:"id"`
	SessionID    sql.NullString `db:"session_id"`
	UserID       sql.NullString `db:"user_id"`
	Transcript   sql.NullString `db:"transcript"`
	Intent       sql.NullString `db:"intent"`
	ResponseType sql.NullString `db:"response_type"`
	ResponseText sql.NullString `db:"response_text"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (c CommandLogDB) toEntity() entity.CommandLog {
	return entity.CommandLog{
		ID:           c.ID.String,
		SessionID:    c.SessionID.String,
		UserID:       c.UserID.String,
		Transcript:   c.Transcript.String,
		Intent:       c.Intent.String,
		ResponseType: c.ResponseType.String,
		ResponseText: c.ResponseText.String,
		CreatedAt:    c.CreatedAt,
	}
}

func (r *commandRepository) CreateCommandLog(c context.Context, cmd entity.CommandLog) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            cmd.ID,
		"session_id":    cmd.SessionID,
		"user_id":       cmd.UserID,
		"transcript":    cmd.Transcript,
		"intent":        cmd.Intent,
		"response_type": cmd.ResponseType,
		"response_text": cmd.ResponseText,
		"created_at":    time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateCommandLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCommandLog")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating command log")

		return err
	}

	return nil
}

func (r *commandRepository) GetCommandLogsBySessionID(c context.Context, sessionID string, limit int) ([]entity.CommandLog, error) {
	return r.getCommandLogs(c, queryGetCommandLogsBySessionID, map[string]interface{}{
		"session_id": sessionID,
		"limit":      limit,
	})
}

func (r *commandRepository) GetCommandLogsByUserID(c context.Context, userID string, limit int) ([]entity.CommandLog, error) {
	return r.getCommandLogs(c, queryGetCommandLogsByUserID, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	})
}

func (r *commandRepository) getCommandLogs(c context.Context, namedQuery string, argsKV map[string]interface{}) ([]entity.CommandLog, error) {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for command log lookup")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []CommandLogDB
	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching command logs")
		return nil, err
	}

	logs := make([]entity.CommandLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toEntity())
	}

	return logs, nil
}
