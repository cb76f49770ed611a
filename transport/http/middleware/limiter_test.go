package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"courtbook/config"
	"courtbook/infras/otel/mocks"
	cacheMocks "courtbook/shared/cache/mocks"
	"courtbook/shared/constant"
	"courtbook/transport/http/middleware"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enabled       bool
		headers       map[string]string
		remoteAddr    string
		setupMock     func(mockCache *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name:      "disabled",
			setupMock: func(*cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusOK,
		},
		{
			name:       "within limit keyed by socket host",
			enabled:    true,
			remoteAddr: "10.0.0.7:51234",
			headers:    map[string]string{constant.RequestHeaderUserAgent: "kiosk"},
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Incr(gomock.Any(), "limiter:10.0.0.7:kiosk", 60).Return(int64(2), nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "3",
		},
		{
			name:    "forwarded client over limit",
			enabled: true,
			headers: map[string]string{constant.RequestHeaderForwardedFor: "203.0.113.9, 10.0.0.1"},
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Incr(gomock.Any(), "limiter:203.0.113.9:unknown", 60).Return(int64(6), nil)
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:    "redis down fails open",
			enabled: true,
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("connection refused"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(mockCache)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enabled
			cfg.App.RateLimiter.MaxRequests = 5
			cfg.App.RateLimiter.WindowSeconds = 60

			limiter := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, mockCache).RateLimit()
			handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/slots", nil)
			if tt.remoteAddr != "" {
				req.RemoteAddr = tt.remoteAddr
			}

			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
