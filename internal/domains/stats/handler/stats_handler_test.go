package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"inkwell-backend/internal/domains/stats/model"
)

type fakeStatsService struct {
	recorded []model.EventType
}

func (f *fakeStatsService) Record(postID uuid.UUID, event model.EventType) {
	f.recorded = append(f.recorded, event)
}

func (f *fakeStatsService) GetTenantStats(ctx context.Context, ownerID uuid.UUID) (*model.TenantStats, error) {
	return &model.TenantStats{Daily: []model.DailyPoint{}}, nil
}

func (f *fakeStatsService) Reconcile(ctx context.Context) (int64, error) {
	return 0, nil
}

func setupRouter(svc *fakeStatsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStatsHandler(svc)
	r := gin.New()
	r.POST("/blogs/posts/:id/view", h.RecordView)
	r.POST("/blogs/posts/:id/share", h.RecordShare)
	return r
}

func TestRecordViewReturns202(t *testing.T) {
	svc := &fakeStatsService{}
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/blogs/posts/"+uuid.NewString()+"/view", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []model.EventType{model.EventView}, svc.recorded)
}

func TestRecordShareReturns202(t *testing.T) {
	svc := &fakeStatsService{}
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/blogs/posts/"+uuid.NewString()+"/share", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []model.EventType{model.EventShare}, svc.recorded)
}

func TestRecordRejectsBadID(t *testing.T) {
	svc := &fakeStatsService{}
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/blogs/posts/not-a-uuid/view", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.recorded)
}
