package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"printfolio/internal/middleware"
	"printfolio/internal/model"
	"printfolio/internal/validation"
)

// ==================== 测试替身 ====================

type memoryRecorder struct {
	mu      sync.Mutex
	entries []*IntakeEntry
	err     error
}

func (m *memoryRecorder) Record(_ context.Context, entry *IntakeEntry) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newTestService(rec IntakeRecorder, opts validation.Options) *IntakeService {
	svc := NewIntakeService(validation.New(opts), rec, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func dragonRequest() *model.PrintRequest {
	return &model.PrintRequest{
		Title:          "Custom Dragon Miniature",
		Description:    "Please make it 15cm tall in red PLA",
		RequesterName:  "Jane Doe",
		RequesterEmail: "jane@example.com",
	}
}

// ==================== 测试用例 ====================

func TestSubmit_Accepted(t *testing.T) {
	rec := &memoryRecorder{}
	svc := newTestService(rec, validation.Options{})

	ctx := middleware.WithRequestID(context.Background(), "req-1")
	result, err := svc.Submit(ctx, dragonRequest())
	require.NoError(t, err)

	assert.Equal(t, "req-1", result.RequestID)
	assert.False(t, result.HasReferenceImage)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, "Custom Dragon Miniature", rec.entries[0].Title)
	assert.Equal(t, "Jane Doe", rec.entries[0].Name)
	assert.Equal(t, "jane@example.com", rec.entries[0].Email)
	assert.False(t, rec.entries[0].HasReferenceImage)
}

func TestSubmit_GeneratesRequestID(t *testing.T) {
	svc := newTestService(&memoryRecorder{}, validation.Options{})

	result, err := svc.Submit(context.Background(), dragonRequest())
	require.NoError(t, err)
	assert.Len(t, result.RequestID, 36)
}

func TestSubmit_NotIdempotent(t *testing.T) {
	rec := &memoryRecorder{}
	svc := newTestService(rec, validation.Options{})

	for i := 0; i < 2; i++ {
		_, err := svc.Submit(context.Background(), dragonRequest())
		require.NoError(t, err)
	}
	assert.Len(t, rec.entries, 2, "重复提交应产生两条记录")
}

func TestSubmit_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.PrintRequest)
		wantErr error
		outcome string
	}{
		{"缺少 name", func(r *model.PrintRequest) { r.RequesterName = "" }, ErrMissingFields, OutcomeMissingFields},
		{"title 仅空白", func(r *model.PrintRequest) { r.Title = "  " }, ErrMissingFields, OutcomeMissingFields},
		{"缺字段优先于邮箱", func(r *model.PrintRequest) {
			r.Title = ""
			r.RequesterEmail = "bad"
		}, ErrMissingFields, OutcomeMissingFields},
		{"邮箱无 @", func(r *model.PrintRequest) { r.RequesterEmail = "not-an-email" }, ErrInvalidEmail, OutcomeInvalidEmail},
		{"邮箱 @ 后无点", func(r *model.PrintRequest) { r.RequesterEmail = "jane@example" }, ErrInvalidEmail, OutcomeInvalidEmail},
		{"非图片附件", func(r *model.PrintRequest) {
			r.ReferenceImage = &model.ReferenceImage{Filename: "a.txt", Size: 5, Data: []byte("hello")}
		}, ErrInvalidReferenceImage, OutcomeInvalidImage},
		{"附件过大", func(r *model.PrintRequest) {
			r.ReferenceImage = &model.ReferenceImage{Filename: "a.png", Size: 2048, Data: pngHeader}
		}, ErrReferenceImageTooLarge, OutcomeImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &memoryRecorder{}
			svc := newTestService(rec, validation.Options{
				MaxImageBytes:     1024,
				AllowedImageTypes: []string{"image/png"},
			})
			counter := intakeSubmissions.WithLabelValues(tt.outcome)
			before := testutil.ToFloat64(counter)

			req := dragonRequest()
			tt.mutate(req)
			_, err := svc.Submit(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, rec.entries)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestSubmit_ShortDescription(t *testing.T) {
	req := dragonRequest()
	req.Description = "short"

	// 默认：接收端不校验最小长度
	_, err := newTestService(&memoryRecorder{}, validation.Options{}).Submit(context.Background(), req)
	assert.NoError(t, err)

	_, err = newTestService(&memoryRecorder{}, validation.Options{EnforceDescriptionMin: true}).Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrDescriptionTooShort)
}

func TestSubmit_WithReferenceImage(t *testing.T) {
	rec := &memoryRecorder{}
	svc := newTestService(rec, validation.Options{MaxImageBytes: 1024, AllowedImageTypes: []string{"image/png"}})

	req := dragonRequest()
	req.ReferenceImage = &model.ReferenceImage{Filename: "ref.png", Size: int64(len(pngHeader)), Data: pngHeader}
	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.HasReferenceImage)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, "ref.png", rec.entries[0].ImageFilename)
	assert.Equal(t, "image/png", rec.entries[0].ImageType)
}

func TestSubmit_RecorderFailure(t *testing.T) {
	svc := newTestService(&memoryRecorder{err: errors.New("disk full")}, validation.Options{})

	_, err := svc.Submit(context.Background(), dragonRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingFields)
	assert.Contains(t, err.Error(), "disk full")
}

func TestLogRecorder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rec := NewLogRecorder(zap.New(core))

	err := rec.Record(context.Background(), &IntakeEntry{
		RequestID: "req-9",
		Title:     "Custom Dragon Miniature",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("收到新的定制打印需求").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "intake", entries[0].LoggerName)

	payload, ok := entries[0].ContextMap()["print_request"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Custom Dragon Miniature", payload["title"])
	assert.Equal(t, false, payload["has_reference_image"])
	assert.NotContains(t, payload, "image_filename")
}
