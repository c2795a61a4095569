package client

import (
	"context"
	"net/http"
	"net/url"

	"nationwide/internal/dto"
	"nationwide/internal/models"
)

// AchievementInput is the form for creating or updating an achievement. Date is YYYY-MM-DD.
// Empty fields are left unchanged on update.
type AchievementInput struct {
	Title       string
	Description string
	StudentName string
	Date        string
	Photo       *File
}

func (in AchievementInput) fields() map[string]string {
	fields := map[string]string{}
	for k, v := range map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"studentName": in.StudentName,
		"date":        in.Date,
	} {
		if v != "" {
			fields[k] = v
		}
	}
	return fields
}

func (c *Client) ListAchievements(ctx context.Context, q dto.AdminAchievementQuery) (*dto.AdminAchievementList, error) {
	var out dto.AdminAchievementList
	path := "/api/admin/achievements" + query(map[string]string{
		"page":  itoa(q.Page),
		"limit": itoa(q.Limit),
		"name":  q.Name,
	})
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAchievement(ctx context.Context, in AchievementInput, progress ProgressFunc) (*models.Achievement, error) {
	if in.Photo != nil {
		if err := in.Photo.check(); err != nil {
			return nil, err
		}
	}
	var out models.Achievement
	if err := c.sendMultipart(ctx, http.MethodPost, "/api/admin/achievements", in.fields(), "photo", in.Photo, progress, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAchievement(ctx context.Context, id string, in AchievementInput, progress ProgressFunc) (*models.Achievement, error) {
	if in.Photo != nil {
		if err := in.Photo.check(); err != nil {
			return nil, err
		}
	}
	var out models.Achievement
	if err := c.sendMultipart(ctx, http.MethodPut, "/api/admin/achievements/"+url.PathEscape(id), in.fields(), "photo", in.Photo, progress, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAchievement(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/achievements/"+url.PathEscape(id), nil, nil, true)
}

// ListVideos returns every video, active or not, in display order.
func (c *Client) ListVideos(ctx context.Context) ([]*models.Video, error) {
	var out dto.VideoList
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/videos", nil, &out, true); err != nil {
		return nil, err
	}
	return out.Videos, nil
}

type VideoInput struct {
	Title       string
	Description string
	CourseName  string
	File        *File
}

// UploadVideo checks the file size and the live video cap against the caller's
// current list before sending anything.
func (c *Client) UploadVideo(ctx context.Context, live *List[*models.Video], in VideoInput, progress ProgressFunc) (*models.Video, error) {
	if in.File == nil {
		return nil, ErrFileRequired
	}
	if live != nil && live.Len() >= models.MaxLiveVideos {
		return nil, ErrVideoLimit
	}
	if err := in.File.check(); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"courseName":  in.CourseName,
	}
	var out dto.VideoEnvelope
	if err := c.sendMultipart(ctx, http.MethodPost, "/api/admin/videos/upload", fields, "video", in.File, progress, &out); err != nil {
		return nil, err
	}
	if live != nil {
		live.Upsert(out.Video)
	}
	return out.Video, nil
}

func (c *Client) UpdateVideo(ctx context.Context, id string, upd dto.VideoUpdate) (*models.Video, error) {
	var out dto.VideoEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/api/admin/videos/"+url.PathEscape(id), upd, &out, true); err != nil {
		return nil, err
	}
	return out.Video, nil
}

// ReplaceVideoFile swaps the media of an existing video.
func (c *Client) ReplaceVideoFile(ctx context.Context, id string, file *File, progress ProgressFunc) (*models.Video, error) {
	if file == nil {
		return nil, ErrFileRequired
	}
	if err := file.check(); err != nil {
		return nil, err
	}
	var out dto.VideoEnvelope
	if err := c.sendMultipart(ctx, http.MethodPut, "/api/admin/videos/"+url.PathEscape(id), nil, "video", file, progress, &out); err != nil {
		return nil, err
	}
	return out.Video, nil
}

func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/videos/"+url.PathEscape(id), nil, nil, true)
}

// SetVideoActive toggles whether a video shows on the public site.
func (c *Client) SetVideoActive(ctx context.Context, id string, active bool) (*models.Video, error) {
	return c.UpdateVideo(ctx, id, dto.VideoUpdate{IsActive: &active})
}

// MoveVideo sets the display order of a video.
func (c *Client) MoveVideo(ctx context.Context, id string, order int) (*models.Video, error) {
	return c.UpdateVideo(ctx, id, dto.VideoUpdate{Order: &order})
}
