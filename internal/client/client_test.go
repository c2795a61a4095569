package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"nationwide/internal/dto"
	"nationwide/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client(), zap.NewNop()), srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestChatReturnsEveryJSONAnswer(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]any
		check  func(t *testing.T, resp *dto.ChatResponse)
	}{
		{"reply", http.StatusOK, map[string]any{"reply": "Hello"}, func(t *testing.T, resp *dto.ChatResponse) {
			assert.Equal(t, "Hello", resp.Reply)
		}},
		{"soft error", http.StatusOK, map[string]any{"error": "Service is busy"}, func(t *testing.T, resp *dto.ChatResponse) {
			assert.Equal(t, "Service is busy", resp.Error)
		}},
		{"rejected", http.StatusBadRequest, map[string]any{"error": "Message too long", "suggestion": "shorter"}, func(t *testing.T, resp *dto.ChatResponse) {
			assert.Equal(t, "Message too long", resp.Error)
			assert.Equal(t, "shorter", resp.Suggestion)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/chat", r.URL.Path)
				var req dto.ChatRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "hi", req.Message)
				writeJSON(w, tt.status, tt.body)
			})

			resp, err := c.Chat(context.Background(), "hi")
			require.NoError(t, err)
			tt.check(t, resp)
		})
	}
}

func TestChatUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil, zap.NewNop()).Chat(context.Background(), "hi")
	assert.Error(t, err)
}

func TestLoginAndAuthorizedList(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/login":
			var req dto.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != "secret" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
				return
			}
			writeJSON(w, http.StatusOK, dto.AuthResponse{AccessToken: "tok", TokenType: "Bearer"})
		case "/api/admin/achievements":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "priya", r.URL.Query().Get("name"))
			assert.False(t, r.URL.Query().Has("limit"))
			writeJSON(w, http.StatusOK, dto.AdminAchievementList{CurrentPage: 2, TotalAchievements: 13})
		}
	})
	ctx := context.Background()

	_, err := c.ListAchievements(ctx, dto.AdminAchievementQuery{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = c.Login(ctx, "admin", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	_, err = c.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", c.Token())

	list, err := c.ListAchievements(ctx, dto.AdminAchievementQuery{Page: 2, Name: "priya"})
	require.NoError(t, err)
	assert.EqualValues(t, 13, list.TotalAchievements)
}

func TestGetRetriesOnUnavailable(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "starting"})
			return
		}
		writeJSON(w, http.StatusOK, dto.VideoList{Videos: []*models.Video{{ID: "v1"}}})
	})
	c.SetToken("tok")

	videos, err := c.ListVideos(context.Background())
	require.NoError(t, err)
	assert.Len(t, videos, 1)
	assert.EqualValues(t, 2, calls.Load())
}

func TestDeleteIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "down"})
	})
	c.SetToken("tok")

	err := c.DeleteVideo(context.Background(), "v1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.EqualValues(t, 1, calls.Load())
}

func TestValidationErrorCarriesFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "Validation failed",
			"fields": map[string]string{"title": "title is a required field"},
		})
	})
	c.SetToken("tok")

	_, err := c.CreateAchievement(context.Background(), AchievementInput{Date: "2024-01-01"}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "title is a required field", apiErr.Fields["title"])
	assert.Contains(t, err.Error(), "title: title is a required field")
}

func TestCreateAchievementSendsMultipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Visa approved", r.FormValue("title"))
		assert.Equal(t, "2024-05-02", r.FormValue("date"))
		_, hasDesc := r.MultipartForm.Value["description"]
		assert.False(t, hasDesc)

		f, fh, err := r.FormFile("photo")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "jpeg-bytes", string(data))
		assert.Equal(t, "priya.jpg", fh.Filename)
		assert.Equal(t, "image/jpeg", fh.Header.Get("Content-Type"))

		writeJSON(w, http.StatusCreated, models.Achievement{ID: "a1", Title: "Visa approved"})
	})
	c.SetToken("tok")

	var steps []int
	photo := &File{Name: "priya.jpg", ContentType: "image/jpeg", Size: 10, Body: strings.NewReader("jpeg-bytes")}
	a, err := c.CreateAchievement(context.Background(), AchievementInput{
		Title:       "Visa approved",
		StudentName: "Priya",
		Date:        "2024-05-02",
		Photo:       photo,
	}, func(p int) { steps = append(steps, p) })
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	require.NotEmpty(t, steps)
	assert.Equal(t, 100, steps[len(steps)-1])
}

func TestUploadVideoChecksBeforeSending(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Nursing", r.FormValue("courseName"))
		writeJSON(w, http.StatusOK, dto.VideoEnvelope{Video: &models.Video{ID: "new", Order: 4, IsActive: true}})
	})
	c.SetToken("tok")
	ctx := context.Background()

	full := NewVideoList(nil)
	for i := 0; i < models.MaxLiveVideos; i++ {
		full.Upsert(&models.Video{ID: fmt.Sprintf("v%d", i), Order: i})
	}
	small := &File{Name: "r.mp4", Size: 3, Body: strings.NewReader("mp4")}

	_, err := c.UploadVideo(ctx, full, VideoInput{Title: "t", CourseName: "Nursing", File: small}, nil)
	assert.ErrorIs(t, err, ErrVideoLimit)

	live := NewVideoList([]*models.Video{{ID: "v0"}, {ID: "v1", Order: 1}})
	huge := &File{Name: "big.mp4", Size: 51 << 20, Body: strings.NewReader("")}
	_, err = c.UploadVideo(ctx, live, VideoInput{Title: "t", CourseName: "Nursing", File: huge}, nil)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = c.UploadVideo(ctx, live, VideoInput{Title: "t", CourseName: "Nursing"}, nil)
	assert.ErrorIs(t, err, ErrFileRequired)
	assert.EqualValues(t, 0, calls.Load())

	v, err := c.UploadVideo(ctx, live, VideoInput{Title: "t", CourseName: "Nursing", File: small}, nil)
	require.NoError(t, err)
	assert.Equal(t, "new", v.ID)
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 3, live.Len())
	assert.Equal(t, "new", live.Items()[2].ID)
}

func TestListKeepsOrder(t *testing.T) {
	now := time.Now()
	l := NewVideoList([]*models.Video{
		{ID: "b", Order: 1, CreatedAt: now},
		{ID: "a", Order: 0, CreatedAt: now},
		{ID: "c", Order: 1, CreatedAt: now.Add(time.Second)},
	})
	ids := func() []string {
		var out []string
		for _, v := range l.Items() {
			out = append(out, v.ID)
		}
		return out
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids())

	l.Upsert(&models.Video{ID: "a", Order: 5, CreatedAt: now})
	assert.Equal(t, []string{"b", "c", "a"}, ids())

	assert.True(t, l.Remove("c"))
	assert.False(t, l.Remove("c"))
	assert.Equal(t, []string{"b", "a"}, ids())

	achievements := NewAchievementList([]*models.Achievement{
		{ID: "old", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", CreatedAt: now},
	})
	assert.Equal(t, "new", achievements.Items()[0].ID)
}

func TestUploadProgress(t *testing.T) {
	var steps []int
	pr := newUploadProgress(strings.NewReader(strings.Repeat("x", 10)), 10, func(p int) { steps = append(steps, p) })
	buf := make([]byte, 4)
	for {
		_, err := pr.Read(buf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, []int{40, 80, 100}, steps)
}
