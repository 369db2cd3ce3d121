package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"clario/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) UpsertSession(ctx context.Context, session *model.Session) error {
	messages, err := json.Marshal(session.Messages)
	if err != nil {
		return fmt.Errorf("could not marshal messages: %w", err)
	}

	query := `
		INSERT INTO sessions (id, title, messages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			messages = excluded.messages,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		session.ID, session.Title, string(messages), session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not upsert session: %w", err)
	}
	return nil
}

func (r *sqliteRepository) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	query := "SELECT id, title, messages, created_at, updated_at FROM sessions WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, sessionID)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (r *sqliteRepository) ListSessions(ctx context.Context) ([]*model.Session, error) {
	query := "SELECT id, title, messages, created_at, updated_at FROM sessions ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *sqliteRepository) DeleteSession(ctx context.Context, sessionID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(s scanner) (*model.Session, error) {
	var session model.Session
	var messages string
	if err := s.Scan(&session.ID, &session.Title, &messages, &session.CreatedAt, &session.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(messages), &session.Messages); err != nil {
		return nil, fmt.Errorf("could not unmarshal messages for session %s: %w", session.ID, err)
	}
	return &session, nil
}
