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

var achievementColumns = []string{
	"id", "title", "description", "student_name", "date", "photo_url", "photo_public_id", "created_at", "updated_at",
}

var achievementSortColumns = map[string]string{
	models.AchievementSortDate:        "date",
	models.AchievementSortCreatedAt:   "created_at",
	models.AchievementSortTitle:       "title",
	models.AchievementSortStudentName: "student_name",
}

type PostgresAchievementRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresAchievementRepository(db *pgxpool.Pool, logger *zap.Logger) *PostgresAchievementRepository {
	return &PostgresAchievementRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresAchievementRepository) Create(ctx context.Context, a *models.Achievement) error {
	photoURL, photoID := photoColumns(a.Photo)
	query := squirrel.Insert("achievements").
		Columns(achievementColumns...).
		Values(a.ID, a.Title, a.Description, a.StudentName, a.Date, photoURL, photoID, a.CreatedAt, a.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PostgresAchievementRepository) GetByID(ctx context.Context, id string) (*models.Achievement, error) {
	query := squirrel.Select(achievementColumns...).
		From("achievements").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	a, err := scanAchievement(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *PostgresAchievementRepository) Update(ctx context.Context, a *models.Achievement) error {
	photoURL, photoID := photoColumns(a.Photo)
	query := squirrel.Update("achievements").
		Set("title", a.Title).
		Set("description", a.Description).
		Set("student_name", a.StudentName).
		Set("date", a.Date).
		Set("photo_url", photoURL).
		Set("photo_public_id", photoID).
		Set("updated_at", a.UpdatedAt).
		Where(squirrel.Eq{"id": a.ID}).
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

func (r *PostgresAchievementRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := squirrel.Delete("achievements").
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

func (r *PostgresAchievementRepository) List(ctx context.Context, filter models.AchievementFilter) ([]*models.Achievement, int64, error) {
	var where squirrel.Sqlizer = squirrel.Expr("TRUE")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"student_name": pattern},
		}
	}

	countSQL, countArgs, err := squirrel.Select("COUNT(*)").
		From("achievements").
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := achievementSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := " ASC"
	if filter.SortDesc {
		direction = " DESC"
	}

	query := squirrel.Select(achievementColumns...).
		From("achievements").
		Where(where).
		OrderBy(column+direction, "id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	achievements := make([]*models.Achievement, 0, filter.Limit)
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, 0, err
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return achievements, total, nil
}

func scanAchievement(row pgx.Row) (*models.Achievement, error) {
	var a models.Achievement
	var photoURL, photoID string
	if err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.StudentName, &a.Date, &photoURL, &photoID, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if photoURL != "" {
		a.Photo = &models.Media{URL: photoURL, PublicID: photoID}
	}
	return &a, nil
}

func photoColumns(m *models.Media) (string, string) {
	if m == nil {
		return "", ""
	}
	return m.URL, m.PublicID
}
