package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/precate/internal/app"
	"github.com/shrimpsizemoose/precate/internal/models"
)

const testPrefix = "/maintain/export-pre-cate/"

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStore) FetchHSCodes(ctx context.Context, goodName string) ([]models.ClassificationRecord, error) {
	args := m.Called(goodName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClassificationRecord), args.Error(1)
}

type MockTokenGate struct {
	mock.Mock
}

func (m *MockTokenGate) Check(ctx context.Context, token string) (models.TokenStatus, error) {
	args := m.Called(token)
	return args.Get(0).(models.TokenStatus), args.Error(1)
}

func (m *MockTokenGate) Ping(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTokenGate) Close() error {
	return nil
}

type testServer struct {
	router http.Handler
	store  *MockStore
	gate   *MockTokenGate
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	store := new(MockStore)
	gate := new(MockTokenGate)
	service := &app.Service{Config: app.DefaultConfig(), Store: store, Auth: gate}

	router, err := NewRouter(service)
	require.NoError(t, err)

	return &testServer{router: router, store: store, gate: gate}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func formRequest(goodName, token string) *http.Request {
	form := url.Values{}
	if goodName != "" {
		form.Set("goodName", goodName)
	}
	if token != "" {
		form.Set("token", token)
	}
	req := httptest.NewRequest(http.MethodPost, testPrefix+"getHsCode", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, goodName, token string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("goodName", goodName))
	require.NoError(t, writer.WriteField("token", token))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, testPrefix+"getHsCode", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

var (
	hourToken = models.TokenStatus{Token: "abc", Valid: true, TTL: 3600 * time.Second}
	widgetRows = []models.ClassificationRecord{
		{GoodName: "Widget", HSCode: "1001", Count: 5},
		{GoodName: "Widget", HSCode: "1002", Count: 3},
	}
	errDown = errors.New("connection refused")
)
