package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hcplayer1988/coderr/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInfoUsecase struct {
	info *entity.BaseInfo
	err  error
}

func (s *stubInfoUsecase) BaseInfo(_ context.Context) (*entity.BaseInfo, error) {
	return s.info, s.err
}

func TestInfoHandler_BaseInfo(t *testing.T) {
	t.Parallel()

	handler := NewInfoHandler(&stubInfoUsecase{
		info: &entity.BaseInfo{
			ReviewCount:          12,
			AverageRating:        4.3,
			BusinessProfileCount: 5,
			OfferCount:           9,
		},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/base-info", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.BaseInfo(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"review_count":12`)
	assert.Contains(t, body, `"average_rating":4.3`)
	assert.Contains(t, body, `"business_profile_count":5`)
	assert.Contains(t, body, `"offer_count":9`)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
