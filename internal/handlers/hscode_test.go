package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/precate/internal/metrics"
	"github.com/shrimpsizemoose/precate/internal/models"
)

func requestCount(t *testing.T, path, method, status string) uint64 {
	t.Helper()
	var m dto.Metric
	observer := metrics.APIRequestDuration.WithLabelValues(path, method, status)
	require.NoError(t, observer.(prometheus.Metric).Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestHandleGetHSCode(t *testing.T) {
	t.Run("absent token", func(t *testing.T) {
		s := setupServer(t)
		s.gate.On("Check", "abc").Return(models.TokenStatus{Token: "abc"}, nil).Once()

		rec := s.do(formRequest("Widget", "abc"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"success":false,"msg":"token 'abc' not found or expired, please reapply","data":[]}`, rec.Body.String())
		s.store.AssertNotCalled(t, "FetchHSCodes", mock.Anything)
	})

	t.Run("matching declarations", func(t *testing.T) {
		s := setupServer(t)
		s.gate.On("Check", "abc").Return(hourToken, nil).Once()
		s.store.On("FetchHSCodes", "Widget").Return(widgetRows, nil).Once()

		rec := s.do(formRequest("Widget", "abc"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"success": true,
			"msg": "retrieved HS code(s) for good 'Widget' successfully",
			"expire": "3600s",
			"data": [
				{"goodName": "Widget", "hsCode": "1001", "count": 5},
				{"goodName": "Widget", "hsCode": "1002", "count": 3}
			]
		}`, rec.Body.String())
	})

	t.Run("permanent token and no data", func(t *testing.T) {
		s := setupServer(t)
		s.gate.On("Check", "abc").Return(models.TokenStatus{Token: "abc", Valid: true, NoExpiry: true}, nil).Once()
		s.store.On("FetchHSCodes", "Unknown").Return([]models.ClassificationRecord{}, nil).Once()

		rec := s.do(formRequest("Unknown", "abc"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":false,"msg":"no declaration data found for good name 'Unknown'","expire":"permanent","data":[]}`, rec.Body.String())
	})

	t.Run("multipart form", func(t *testing.T) {
		s := setupServer(t)
		s.gate.On("Check", "abc").Return(hourToken, nil).Once()
		s.store.On("FetchHSCodes", "Widget").Return(widgetRows, nil).Once()

		rec := s.do(multipartRequest(t, "Widget", "abc"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
	})

	t.Run("missing fields", func(t *testing.T) {
		s := setupServer(t)

		for _, req := range []*http.Request{
			formRequest("", "abc"),
			formRequest("Widget", ""),
			formRequest("", ""),
		} {
			rec := s.do(req)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.JSONEq(t, `{"success":false,"msg":"invalid request: goodName and token are required","data":[]}`, rec.Body.String())
		}
		s.gate.AssertNotCalled(t, "Check", mock.Anything)
	})

	t.Run("database fault", func(t *testing.T) {
		s := setupServer(t)
		s.gate.On("Check", "abc").Return(hourToken, nil).Once()
		s.store.On("FetchHSCodes", "Widget").Return(nil, errDown).Once()

		rec := s.do(formRequest("Widget", "abc"))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"success":false,"msg":"service temporarily unavailable, please retry later","expire":"3600s","data":[]}`, rec.Body.String())
	})

	t.Run("redis fault", func(t *testing.T) {
		s := setupServer(t)
		s.gate.On("Check", "abc").Return(models.TokenStatus{Token: "abc"}, errDown).Once()

		rec := s.do(formRequest("Widget", "abc"))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"success":false,"msg":"service temporarily unavailable, please retry later","data":[]}`, rec.Body.String())
	})

	t.Run("wrong method", func(t *testing.T) {
		s := setupServer(t)

		path := testPrefix + "getHsCode"
		before := requestCount(t, path, http.MethodGet, "405")

		rec := s.do(httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
		assert.Equal(t, before+1, requestCount(t, path, http.MethodGet, "405"))
		s.gate.AssertNotCalled(t, "Check", mock.Anything)
	})

	t.Run("unknown prefix", func(t *testing.T) {
		s := setupServer(t)

		req := formRequest("Widget", "abc")
		req.URL.Path = "/getHsCode"
		rec := s.do(req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleGetHSCodeIsIdempotent(t *testing.T) {
	s := setupServer(t)
	s.gate.On("Check", "abc").Return(hourToken, nil)
	s.store.On("FetchHSCodes", "Widget").Return(widgetRows, nil)

	first := s.do(formRequest("Widget", "abc"))
	second := s.do(formRequest("Widget", "abc"))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}
