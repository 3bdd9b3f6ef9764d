package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tuberank/internal/models"
)

// trackedVideoColumns is the standard column list for tracked video queries.
const trackedVideoColumns = `id, video_id, channel_id, video_title, channel_title,
	target_keywords, video_url, is_active, created_at, updated_at`

// scanTrackedVideo scans a row into a TrackedVideo struct.
func scanTrackedVideo(row pgx.Row) (*models.TrackedVideo, error) {
	var v models.TrackedVideo
	err := row.Scan(
		&v.ID,
		&v.VideoID,
		&v.ChannelID,
		&v.VideoTitle,
		&v.ChannelTitle,
		&v.TargetKeywords,
		&v.VideoURL,
		&v.IsActive,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTrackedVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateTrackedVideo inserts a new tracked video record.
func (d *DB) CreateTrackedVideo(ctx context.Context, v *models.TrackedVideo) error {
	query := `
		INSERT INTO tracked_videos (video_id, channel_id, video_title, channel_title, target_keywords, video_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		v.VideoID,
		v.ChannelID,
		v.VideoTitle,
		v.ChannelTitle,
		v.TargetKeywords,
		v.VideoURL,
		v.IsActive,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateVideo
		}
		return err
	}

	return nil
}

// GetTrackedVideoByVideoID returns the tracked video for a YouTube video ID.
func (d *DB) GetTrackedVideoByVideoID(ctx context.Context, videoID string) (*models.TrackedVideo, error) {
	query := `SELECT ` + trackedVideoColumns + ` FROM tracked_videos WHERE video_id = $1`
	return scanTrackedVideo(d.Pool.QueryRow(ctx, query, videoID))
}

// GetActiveTrackedVideos returns all active tracked videos in a stable order.
func (d *DB) GetActiveTrackedVideos(ctx context.Context) ([]models.TrackedVideo, error) {
	query := `SELECT ` + trackedVideoColumns + ` FROM tracked_videos WHERE is_active ORDER BY created_at, video_id`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []models.TrackedVideo
	for rows.Next() {
		var v models.TrackedVideo
		if err := rows.Scan(
			&v.ID,
			&v.VideoID,
			&v.ChannelID,
			&v.VideoTitle,
			&v.ChannelTitle,
			&v.TargetKeywords,
			&v.VideoURL,
			&v.IsActive,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// AddTargetKeywords appends keywords to an existing tracked video. A keyword
// already present in the target set (case-insensitive) is rejected with
// ErrDuplicateKeyword; nothing is appended in that case. The save is
// last-write-wins; keyword mutation is guarded by the duplicate check only.
func (d *DB) AddTargetKeywords(ctx context.Context, videoID string, keywords []string) (*models.TrackedVideo, error) {
	video, err := d.GetTrackedVideoByVideoID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(video.TargetKeywords))
	for _, k := range video.TargetKeywords {
		existing[strings.ToLower(k)] = true
	}
	for _, k := range keywords {
		if existing[strings.ToLower(k)] {
			return nil, ErrDuplicateKeyword
		}
	}

	video.TargetKeywords = append(video.TargetKeywords, keywords...)

	query := `
		UPDATE tracked_videos
		SET target_keywords = $2, updated_at = NOW()
		WHERE video_id = $1
		RETURNING updated_at
	`
	if err := d.Pool.QueryRow(ctx, query, videoID, video.TargetKeywords).Scan(&video.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrackedVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// UpdateTrackedVideoDetails fills in title and channel fields once enrichment
// data is available. Placeholder values are overwritten in place.
func (d *DB) UpdateTrackedVideoDetails(ctx context.Context, videoID, channelID, videoTitle, channelTitle string) error {
	query := `
		UPDATE tracked_videos
		SET channel_id = $2, video_title = $3, channel_title = $4, updated_at = NOW()
		WHERE video_id = $1
	`
	tag, err := d.Pool.Exec(ctx, query, videoID, channelID, videoTitle, channelTitle)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTrackedVideoNotFound
	}
	return nil
}

// CountActiveTrackedVideos returns the number of active tracked videos.
func (d *DB) CountActiveTrackedVideos(ctx context.Context) (int64, error) {
	var count int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tracked_videos WHERE is_active`).Scan(&count)
	return count, err
}
