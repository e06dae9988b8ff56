package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/eventsnap/eventsnap-service/config"
	"github.com/eventsnap/eventsnap-service/http/controller"
	routes "github.com/eventsnap/eventsnap-service/http/route"
	"github.com/eventsnap/eventsnap-service/infra"
	"github.com/eventsnap/eventsnap-service/repository"
)

const testAPIKey = "test-public-key"

// stubStorage is an in-memory ObjectStorage for handler tests.
type stubStorage struct {
	mu         sync.Mutex
	objects    map[string][]byte
	removed    []string
	putErr     error
	presignErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte)}
}

func (s *stubStorage) EnsureBucket(ctx context.Context, bucket string) error {
	return nil
}

func (s *stubStorage) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[key] = data
	return nil
}

func (s *stubStorage) RemoveObject(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.removed = append(s.removed, key)
	return nil
}

func (s *stubStorage) PresignedGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return fmt.Sprintf("https://storage.test/%s/%s?signed=1", bucket, key), nil
}

type testAPI struct {
	router  *gin.Engine
	storage *stubStorage
	repo    *repository.Repository
	cfg     *config.Config
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	envCfg := &config.EnvConfig{}
	envCfg.Auth.PublicAPIKey = testAPIKey
	envCfg.CORS.AllowDomains = "*"
	envCfg.Photo.Bucket = "event-photos"
	envCfg.Photo.MaxSizeBytes = 5242880
	envCfg.Photo.SignedURLTTL = time.Hour
	envCfg.Photo.MaxExpiryDays = 30
	cfg := &config.Config{EnvConfig: envCfg}

	storage := newStubStorage()
	inf := &infra.Infra{
		Redis:   &infra.RedisClient{Client: client},
		Storage: storage,
		Logger:  infra.NewStdoutLoggerClient(),
	}

	repo := repository.InitRepository(inf)
	ctrl := controller.NewController(cfg, inf, repo)

	return &testAPI{
		router:  routes.SetupRouter(ctrl),
		storage: storage,
		repo:    repo,
		cfg:     cfg,
	}
}

func (api *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testAPIKey)

	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func createEvent(t *testing.T, api *testAPI, name string, maxPhotos, expiryDays int) string {
	t.Helper()

	w := api.do(t, http.MethodPost, "/api/v1/events", gin.H{
		"name":             name,
		"maxPhotosPerUser": maxPhotos,
		"expiryDays":       expiryDays,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Event struct {
			ID string `json:"id"`
		} `json:"event"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Event.ID)
	return resp.Event.ID
}
