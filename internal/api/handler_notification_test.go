package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"medreminder/internal/model"
	"medreminder/internal/repository"
)

type fakeNotificationStore struct {
	notifications []model.Notification
	read          []int
}

func (f *fakeNotificationStore) ListByUser(ctx context.Context, userID, limit int) ([]model.Notification, error) {
	return f.notifications, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id, userID int) error {
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			f.read = append(f.read, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func notificationRouter(h *NotificationHandler, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.GET("/notifications", h.List)
	r.POST("/notifications/:id/read", h.MarkRead)
	return r
}

func TestNotificationList_IncludesMedicineName(t *testing.T) {
	store := &fakeNotificationStore{notifications: []model.Notification{{
		ID:           1,
		UserID:       10,
		MedicineID:   3,
		MedicineName: "Aspirin",
		Message:      "Time to take Aspirin - 100mg at 8:00 AM",
		Type:         model.NotificationReminder,
		CreatedAt:    time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC),
	}}}
	r := notificationRouter(NewNotificationHandler(store), 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"medicine_name":"Aspirin"`) {
		t.Errorf("list payload missing medicine_name: %s", w.Body.String())
	}
}

func TestNotificationMarkRead_NotFound(t *testing.T) {
	store := &fakeNotificationStore{}
	r := notificationRouter(NewNotificationHandler(store), 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notifications/99/read", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
