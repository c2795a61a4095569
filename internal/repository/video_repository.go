package repository

import (
	"context"
	"errors"

	"nationwide/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var videoColumns = []string{
	"id", "title", "description", "course_name", "url", "public_id", "duration", "sort_order", "is_active", "thumbnail", "created_at", "updated_at",
}

type PostgresVideoRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresVideoRepository(db *pgxpool.Pool, logger *zap.Logger) *PostgresVideoRepository {
	return &PostgresVideoRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresVideoRepository) Create(ctx context.Context, v *models.Video) error {
	query := squirrel.Insert("videos").
		Columns(videoColumns...).
		Values(v.ID, v.Title, v.Description, v.CourseName, v.URL, v.PublicID, v.Duration, v.Order, v.IsActive, v.Thumbnail, v.CreatedAt, v.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PostgresVideoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	sql, args, err := squirrel.Select(videoColumns...).
		From("videos").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	v, err := scanVideo(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func (r *PostgresVideoRepository) Update(ctx context.Context, v *models.Video) error {
	query := squirrel.Update("videos").
		Set("title", v.Title).
		Set("description", v.Description).
		Set("course_name", v.CourseName).
		Set("url", v.URL).
		Set("public_id", v.PublicID).
		Set("duration", v.Duration).
		Set("sort_order", v.Order).
		Set("is_active", v.IsActive).
		Set("thumbnail", v.Thumbnail).
		Set("updated_at", v.UpdatedAt).
		Where(squirrel.Eq{"id": v.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresVideoRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := squirrel.Delete("videos").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresVideoRepository) List(ctx context.Context, activeOnly bool) ([]*models.Video, error) {
	query := squirrel.Select(videoColumns...).
		From("videos").
		OrderBy("sort_order ASC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar)
	if activeOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func scanVideo(row pgx.Row) (*models.Video, error) {
	var v models.Video
	if err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.CourseName, &v.URL, &v.PublicID, &v.Duration, &v.Order, &v.IsActive, &v.Thumbnail, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}
