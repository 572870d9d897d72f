package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"printfolio/internal/controller"
	"printfolio/internal/model"
	"printfolio/internal/repository"
	"printfolio/internal/router"
	"printfolio/internal/service"
	"printfolio/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer 启动完整路由，返回服务与 intake 日志观察器
func newTestServer(t *testing.T) (*httptest.Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	repo, err := repository.NewDefaultPortfolioRepo()
	require.NoError(t, err)

	v := validation.New(validation.Options{
		MaxImageBytes:     1 << 20,
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/gif"},
	})
	r := router.SetupRouter(&router.Controllers{
		Intake:    controller.NewIntakeController(service.NewIntakeService(v, service.NewLogRecorder(logger), logger), logger),
		Portfolio: controller.NewPortfolioController(service.NewPortfolioService(repo)),
		System:    controller.NewSystemController(),
	}, zap.NewNop())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, logs
}

func dragonRequest() *model.PrintRequest {
	return &model.PrintRequest{
		Title:          "Custom Dragon Miniature",
		Description:    "Please make it 15cm tall in red PLA",
		RequesterName:  "Jane Doe",
		RequesterEmail: "jane@example.com",
	}
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestSubmitPrintRequest_Success(t *testing.T) {
	srv, logs := newTestServer(t)
	c := NewIntakeClient(Options{Endpoint: srv.URL, Timeout: 5 * time.Second})

	req := dragonRequest()
	req.ReferenceImage = &model.ReferenceImage{Filename: "dragon.png", Data: pngHeader, Size: int64(len(pngHeader))}

	require.NoError(t, c.SubmitPrintRequest(context.Background(), req))

	entries := logs.FilterMessage("收到新的定制打印需求").All()
	require.Len(t, entries, 1)
	entry := entries[0].ContextMap()["print_request"].(map[string]interface{})
	assert.Equal(t, "Custom Dragon Miniature", entry["title"])
	assert.Equal(t, true, entry["has_reference_image"])
}

func TestSubmitPrintRequest_APIError(t *testing.T) {
	srv, logs := newTestServer(t)
	c := NewIntakeClient(Options{Endpoint: srv.URL, Timeout: 5 * time.Second})

	req := dragonRequest()
	req.RequesterName = ""

	err := c.SubmitPrintRequest(context.Background(), req)
	require.Error(t, err)

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing required fields", apiErr.Message)
	assert.Zero(t, logs.FilterMessage("收到新的定制打印需求").Len())
}

func TestSubmitPrintRequest_TransportError(t *testing.T) {
	srv, _ := newTestServer(t)
	endpoint := srv.URL
	srv.Close()

	c := NewIntakeClient(Options{Endpoint: endpoint, Timeout: time.Second})
	err := c.SubmitPrintRequest(context.Background(), dragonRequest())

	require.Error(t, err)
	_, ok := IsAPIError(err)
	assert.False(t, ok)
}

func TestSubmitPrintRequest_ServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
	}))
	defer srv.Close()

	c := NewIntakeClient(Options{Endpoint: srv.URL, Timeout: time.Second})
	err := c.Submit(context.Background(), dragonRequest())

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal server error", apiErr.Message)
}

func TestPortfolio(t *testing.T) {
	srv, _ := newTestServer(t)
	c := NewIntakeClient(Options{Endpoint: srv.URL, Timeout: 5 * time.Second})
	ctx := context.Background()

	all, err := c.ListPortfolio(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 12, all.Total)
	assert.Contains(t, all.Categories, "Miniatures")

	toys, err := c.ListPortfolio(ctx, "Toys")
	require.NoError(t, err)
	assert.Equal(t, 2, toys.Total)

	item, err := c.GetPortfolioItem(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Dragon Miniature", item.Title)

	_, err = c.GetPortfolioItem(ctx, "999")
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "作品不存在", apiErr.Message)
}
