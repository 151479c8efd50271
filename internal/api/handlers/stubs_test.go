package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"parcelio-api-server/internal/lib/validate"
	"parcelio-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	validate.UseJSONNames()
}

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubUsers struct {
	list func(ctx context.Context) ([]models.User, error)
}

func (s *stubUsers) List(ctx context.Context) ([]models.User, error) { return s.list(ctx) }

type stubParcels struct {
	list     func(ctx context.Context, createdBy string) ([]models.Document, error)
	get      func(ctx context.Context, id string) (models.Document, error)
	create   func(ctx context.Context, doc models.Document) (*models.InsertResult, error)
	del      func(ctx context.Context, id string) (*models.DeleteResult, models.Document, error)
	addPhoto func(ctx context.Context, id string, photo models.MediaPointer) (models.Document, error)
	exists   func(ctx context.Context, id string) (bool, error)
}

func (s *stubParcels) List(ctx context.Context, createdBy string) ([]models.Document, error) {
	return s.list(ctx, createdBy)
}

func (s *stubParcels) Get(ctx context.Context, id string) (models.Document, error) {
	return s.get(ctx, id)
}

func (s *stubParcels) Create(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	return s.create(ctx, doc)
}

func (s *stubParcels) Delete(ctx context.Context, id string) (*models.DeleteResult, models.Document, error) {
	return s.del(ctx, id)
}

func (s *stubParcels) AddPhoto(ctx context.Context, id string, photo models.MediaPointer) (models.Document, error) {
	return s.addPhoto(ctx, id, photo)
}

func (s *stubParcels) Exists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, id)
}

type stubPayments struct {
	list   func(ctx context.Context, email string) ([]models.Payment, error)
	record func(ctx context.Context, payment *models.Payment) (*models.PaymentRecord, error)
}

func (s *stubPayments) List(ctx context.Context, email string) ([]models.Payment, error) {
	return s.list(ctx, email)
}

func (s *stubPayments) Record(ctx context.Context, payment *models.Payment) (*models.PaymentRecord, error) {
	return s.record(ctx, payment)
}

type stubGateway struct {
	create func(ctx context.Context, amount int64) (string, error)
}

func (s *stubGateway) CreateIntent(ctx context.Context, amount int64) (string, error) {
	return s.create(ctx, amount)
}

type stubUploader struct {
	upload func(ctx context.Context, file io.Reader, objectKey, contentType string) (string, error)
}

func (s *stubUploader) UploadFile(ctx context.Context, file io.Reader, objectKey, contentType string) (string, error) {
	return s.upload(ctx, file, objectKey, contentType)
}

type published struct {
	Email string
	Event string
	Data  interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []published
}

func (n *recordingNotifier) Publish(email, event string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, published{Email: email, Event: event, Data: data})
}

func (n *recordingNotifier) Events() []published {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]published(nil), n.events...)
}

// perform runs one request against a router holding a single route.
func perform(t *testing.T, method, pattern string, h gin.HandlerFunc, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Handle(method, pattern, h)

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

