package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"tuberank/internal/models"
)

// InsertRankHistory appends one rank observation. History records are
// append-only; there is no update or delete path.
func (d *DB) InsertRankHistory(ctx context.Context, h *models.RankHistory) error {
	competitors := h.TopCompetitors
	if competitors == nil {
		competitors = []models.Competitor{}
	}
	raw, err := json.Marshal(competitors)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rank_history (video_id, keyword, position, total_results, top_competitors, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return d.Pool.QueryRow(ctx, query,
		h.VideoID,
		h.Keyword,
		h.Position,
		h.TotalResults,
		raw,
		h.CheckedAt,
	).Scan(&h.ID)
}

// GetRankHistoryByVideoID returns all observations for a video, newest first.
func (d *DB) GetRankHistoryByVideoID(ctx context.Context, videoID string) ([]models.RankHistory, error) {
	query := `
		SELECT id, video_id, keyword, position, total_results, top_competitors, checked_at
		FROM rank_history
		WHERE video_id = $1
		ORDER BY checked_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.RankHistory
	for rows.Next() {
		var h models.RankHistory
		var raw []byte
		if err := rows.Scan(&h.ID, &h.VideoID, &h.Keyword, &h.Position, &h.TotalResults, &raw, &h.CheckedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &h.TopCompetitors); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// CountRankHistory returns the total number of history records.
func (d *DB) CountRankHistory(ctx context.Context) (int64, error) {
	var count int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM rank_history`).Scan(&count)
	return count, err
}

// CountRankHistorySince returns the number of records observed at or after t.
func (d *DB) CountRankHistorySince(ctx context.Context, t time.Time) (int64, error) {
	var count int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM rank_history WHERE checked_at >= $1`, t).Scan(&count)
	return count, err
}

// LatestCheckTime returns the timestamp of the most recent observation,
// or nil if no checks have run yet.
func (d *DB) LatestCheckTime(ctx context.Context) (*time.Time, error) {
	var t time.Time
	err := d.Pool.QueryRow(ctx, `SELECT checked_at FROM rank_history ORDER BY checked_at DESC LIMIT 1`).Scan(&t)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
