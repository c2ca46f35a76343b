package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/foodai/festival-guide/backend/internal/catalog"
	"github.com/foodai/festival-guide/backend/internal/ingest"
	"github.com/foodai/festival-guide/backend/internal/middleware"
	"github.com/foodai/festival-guide/backend/internal/service"
)

const testClient = "visitor-1"

func init() {
	gin.SetMode(gin.TestMode)
}

// testAPI holds a router wired to real services over in-memory stores.
type testAPI struct {
	router   *gin.Engine
	catalog  *catalog.Catalog
	profiles *service.ProfileService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := zaptest.NewLogger(t)

	cat, err := catalog.Load(context.Background(), catalog.Options{Source: catalog.SourceEmbedded}, logger)
	require.NoError(t, err)

	profiles := service.NewProfileService(service.NewMemoryStore(0), logger)
	guide := service.NewGuideService(cat, profiles, logger)
	ingestService := service.NewIngestService(
		ingest.NewSynthesizer(1),
		service.NewMemoryStore(service.BatchTTL),
		nil,
		service.IngestConfig{MaxFiles: 2, DefaultBooth: "B01", PublicBaseURL: "http://localhost:3000"},
		logger,
	)

	return &testAPI{
		router: newRouter(t, Handlers{
			Health:  NewHealthHandler(cat, nil),
			Profile: NewProfileHandler(profiles, logger),
			Guide:   NewGuideHandler(guide),
			Admin:   NewAdminHandler(ingestService, nil, logger),
		}),
		catalog:  cat,
		profiles: profiles,
	}
}

func newRouter(t *testing.T, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler(zaptest.NewLogger(t)), middleware.ClientID())
	RegisterRoutes(router, h)
	return router
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	return doRequest(a.router, method, path, body)
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ClientIDHeader, testClient)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type testFile struct {
	name        string
	contentType string
	body        string
}

func (a *testAPI) upload(t *testing.T, files []testFile, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files[]"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/ingest", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.ClientIDHeader, testClient)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
