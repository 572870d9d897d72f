package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"printfolio/internal/repository"
	"printfolio/internal/service"
)

func setupPortfolioRouter(t *testing.T) *gin.Engine {
	t.Helper()
	repo, err := repository.NewDefaultPortfolioRepo()
	require.NoError(t, err)
	ctl := NewPortfolioController(service.NewPortfolioService(repo))

	r := gin.New()
	r.GET("/api/portfolio", ctl.GetList)
	r.GET("/api/portfolio/:id", ctl.GetDetail)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPortfolio_GetList(t *testing.T) {
	r := setupPortfolioRouter(t)

	w := get(r, "/api/portfolio?category=Decorative")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Items []struct {
				Title string `json:"title"`
			} `json:"items"`
			Total int `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, 3, resp.Data.Total)
	assert.Equal(t, "Geometric Planter", resp.Data.Items[0].Title)
}

func TestPortfolio_GetDetail(t *testing.T) {
	r := setupPortfolioRouter(t)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{"存在", "1", http.StatusOK},
		{"不存在", "404", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/api/portfolio/"+tt.id)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
