package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/SoulFireMage/AIChatHistory/internal/archive"
	"github.com/SoulFireMage/AIChatHistory/internal/db"
	"github.com/SoulFireMage/AIChatHistory/internal/httpapi/handlers"
	"github.com/SoulFireMage/AIChatHistory/internal/provider"
	"github.com/SoulFireMage/AIChatHistory/internal/vault"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

type scriptedAdapter struct{}

func (scriptedAdapter) Name() string { return "openai" }

func (scriptedAdapter) ListConversations(ctx context.Context, apiKey string, opts provider.ListOptions) ([]provider.ConversationSummary, error) {
	return []provider.ConversationSummary{{ProviderConversationID: "conv-1"}}, nil
}

func (scriptedAdapter) FetchConversation(ctx context.Context, apiKey string, conversationID string) (*provider.ConversationDetail, error) {
	return &provider.ConversationDetail{
		ProviderConversationID: conversationID,
		Title:                  "Imported chat",
		Messages: []provider.Message{
			{Role: "user", Content: "hello", SequenceIndex: 0},
			{Role: "assistant", Content: "hi there", SequenceIndex: 1},
		},
	}, nil
}

func (scriptedAdapter) FetchArtifacts(ctx context.Context, apiKey string, detail *provider.ConversationDetail) ([]provider.Artifact, error) {
	return detail.Artifacts, nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*gin.Engine, *archive.Repo, *archive.Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	v, err := vault.New(testKey)
	if err != nil {
		t.Fatalf("vault: %v", err)
	}

	repo := archive.NewRepo(gdb)
	prov := &archive.Provider{Name: "openai", DisplayName: "ChatGPT"}
	if err := repo.CreateProvider(context.Background(), prov); err != nil {
		t.Fatalf("seed provider: %v", err)
	}

	reg := provider.NewRegistry()
	reg.Register(scriptedAdapter{})

	runner := archive.NewRunner(repo, reg, v, 0)
	dispatcher := archive.NewLocalDispatcher(runner)

	return NewRouter(handlers.NewHandler(repo, v, dispatcher)), repo, prov
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestImportJobEndToEnd(t *testing.T) {
	r, _, prov := newTestServer(t)

	// register a credential
	w, env := doJSON(t, r, http.MethodPost, "/api-keys",
		fmt.Sprintf(`{"provider_id":%q,"label":"primary","api_key_value":"sk-abc"}`, prov.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("create key: status %d body %s", w.Code, w.Body.String())
	}
	var key archive.APIKey
	if err := json.Unmarshal(env.Data, &key); err != nil {
		t.Fatalf("decode key: %v", err)
	}

	// trigger the import; the response must come back with a running job
	w, env = doJSON(t, r, http.MethodPost, "/import-jobs",
		fmt.Sprintf(`{"provider_id":%q,"api_key_id":%q}`, prov.ID, key.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("create job: status %d body %s", w.Code, w.Body.String())
	}
	var job archive.ImportJob
	if err := json.Unmarshal(env.Data, &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.Status != archive.JobRunning {
		t.Fatalf("expected running at creation, got %s", job.Status)
	}

	// the run is asynchronous; poll the job record
	deadline := time.Now().Add(2 * time.Second)
	for {
		_, env = doJSON(t, r, http.MethodGet, "/import-jobs/"+job.ID, "")
		if err := json.Unmarshal(env.Data, &job); err != nil {
			t.Fatalf("decode job: %v", err)
		}
		if job.Status.Terminal() {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job never finished, status=%s", job.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if job.Status != archive.JobSuccess {
		t.Fatalf("expected success, got %s (%s)", job.Status, job.ErrorDetails)
	}
	if job.ConversationsImported != 1 || job.MessagesImported != 2 {
		t.Fatalf("unexpected counters: %+v", job)
	}

	// imported data is browsable
	w, env = doJSON(t, r, http.MethodGet, "/conversations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list conversations: status %d", w.Code)
	}
	var listing struct {
		Total int64 `json:"total"`
		Items []struct {
			ID           string `json:"id"`
			Title        string `json:"title"`
			MessageCount int64  `json:"message_count"`
		} `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if listing.Total != 1 || len(listing.Items) != 1 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if listing.Items[0].MessageCount != 2 {
		t.Fatalf("expected 2 messages, got %d", listing.Items[0].MessageCount)
	}

	// and exportable
	req := httptest.NewRequest(http.MethodGet, "/conversations/"+listing.Items[0].ID+"/export-markdown", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "# Imported chat") {
		t.Fatalf("export missing title:\n%s", rec.Body.String())
	}
}

func TestCreateImportJob_Validation(t *testing.T) {
	r, repo, prov := newTestServer(t)

	// unknown key
	w, _ := doJSON(t, r, http.MethodPost, "/import-jobs",
		fmt.Sprintf(`{"provider_id":%q,"api_key_id":"nope"}`, prov.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown key, got %d", w.Code)
	}

	// inactive key
	key := &archive.APIKey{ProviderID: prov.ID, Label: "dead", KeyEncrypted: "x", IsActive: false}
	if err := repo.CreateAPIKey(context.Background(), key); err != nil {
		t.Fatalf("seed key: %v", err)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/import-jobs",
		fmt.Sprintf(`{"provider_id":%q,"api_key_id":%q}`, prov.ID, key.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inactive key, got %d", w.Code)
	}

	// unknown provider
	active := &archive.APIKey{ProviderID: prov.ID, Label: "ok", KeyEncrypted: "x", IsActive: true}
	if err := repo.CreateAPIKey(context.Background(), active); err != nil {
		t.Fatalf("seed key: %v", err)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/import-jobs",
		fmt.Sprintf(`{"provider_id":"nope","api_key_id":%q}`, active.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown provider, got %d", w.Code)
	}
}

func TestAPIKeyNeverExposed(t *testing.T) {
	r, _, prov := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api-keys",
		fmt.Sprintf(`{"provider_id":%q,"label":"primary","api_key_value":"sk-secret-value"}`, prov.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("create key: status %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "sk-secret-value") {
		t.Fatal("plaintext key leaked in create response")
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api-keys", "")
	if strings.Contains(w.Body.String(), "sk-secret-value") ||
		strings.Contains(w.Body.String(), "key_encrypted") {
		t.Fatal("key material leaked in listing")
	}
}
