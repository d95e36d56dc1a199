package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowlens/flowlens/pkg/errors"
	"github.com/flowlens/flowlens/pkg/store"
)

const sampleDoc = `<AlteryxDocument yxmdVer="2021.4">
  <Nodes>
    <Node ToolID="1">
      <GuiSettings Plugin="AlteryxBasePluginsGui.DbFileInput.DbFileInput">
        <Position x="54" y="54"/>
      </GuiSettings>
      <Properties>
        <Configuration>
          <File>input.csv</File>
        </Configuration>
      </Properties>
      <EngineSettings EngineDll="AlteryxBasePluginsEngine.dll" EngineDllEntryPoint="AlteryxDbFileInput"/>
    </Node>
    <Node ToolID="2">
      <GuiSettings Plugin="AlteryxBasePluginsGui.DbFileOutput.DbFileOutput">
        <Position x="150" y="54"/>
      </GuiSettings>
      <Properties>
        <Configuration>
          <File>output.csv</File>
        </Configuration>
      </Properties>
      <EngineSettings EngineDll="AlteryxBasePluginsEngine.dll" EngineDllEntryPoint="AlteryxDbFileOutput"/>
    </Node>
  </Nodes>
  <Connections>
    <Connection>
      <Origin ToolID="1" Connection="Output"/>
      <Destination ToolID="2" Connection="Input"/>
    </Connection>
  </Connections>
  <Properties>
    <MetaInfo>
      <Name>copy-files</Name>
    </MetaInfo>
  </Properties>
</AlteryxDocument>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(Options{Logger: log.New(io.Discard)})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func upload(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/workflows", "application/xml", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestUploadAndGet(t *testing.T) {
	ts := testServer(t)

	resp := upload(t, ts, sampleDoc)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-Id"); got == "" {
		t.Error("missing request ID header")
	}

	var created struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Workflow struct {
			Tools []json.RawMessage `json:"nodes"`
		} `json:"workflow"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatal("no ID assigned")
	}
	if created.Name != "copy-files" {
		t.Errorf("Name = %q", created.Name)
	}
	if len(created.Workflow.Tools) != 2 {
		t.Errorf("tools = %d, want 2", len(created.Workflow.Tools))
	}

	getResp, err := http.Get(ts.URL + "/v1/workflows/" + created.ID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d", getResp.StatusCode)
	}
}

func TestUploadDeduplicates(t *testing.T) {
	ts := testServer(t)

	first := upload(t, ts, sampleDoc)
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first upload status = %d", first.StatusCode)
	}
	var a struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(first.Body).Decode(&a); err != nil {
		t.Fatal(err)
	}

	second := upload(t, ts, sampleDoc)
	if second.StatusCode != http.StatusOK {
		t.Fatalf("second upload status = %d, want 200", second.StatusCode)
	}
	var b struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(second.Body).Decode(&b); err != nil {
		t.Fatal(err)
	}

	if a.ID != b.ID {
		t.Errorf("duplicate upload got new ID: %q vs %q", a.ID, b.ID)
	}
}

// stubCache answers every Get with a fixed payload and counts hits.
type stubCache struct {
	payload []byte
	hits    int
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.hits++
	return c.payload, true, nil
}

func (c *stubCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error { return nil }
func (c *stubCache) Close() error                                 { return nil }

func TestUploadServesCachedResponse(t *testing.T) {
	sc := &stubCache{payload: []byte(`{"id":"from-cache"}` + "\n")}
	s := New(Options{Cache: sc, Logger: log.New(io.Discard)})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp := upload(t, ts, sampleDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != string(sc.payload) {
		t.Errorf("body = %q, want cached payload", body)
	}
	if sc.hits != 1 {
		t.Errorf("cache hits = %d, want 1", sc.hits)
	}

	// The cached response short-circuits parsing, so nothing is archived.
	if _, err := s.store.FindByHash(context.Background(), "x"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("FindByHash err = %v, want NOT_FOUND", err)
	}
}

// brokenStore simulates an archive outage.
type brokenStore struct{}

func (brokenStore) Put(ctx context.Context, rec *store.Record) error { return nil }

func (brokenStore) Get(ctx context.Context, id string) (*store.Record, error) {
	return nil, errors.New(errors.ErrCodeInternal, "archive unavailable")
}

func (brokenStore) FindByHash(ctx context.Context, hash string) (*store.Record, error) {
	return nil, errors.New(errors.ErrCodeInternal, "archive unavailable")
}

func (brokenStore) Close(ctx context.Context) error { return nil }

func TestUploadStoreOutageSurfaces(t *testing.T) {
	s := New(Options{Store: brokenStore{}, Logger: log.New(io.Discard)})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp := upload(t, ts, sampleDoc)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", body.Error.Code)
	}
}

func TestUploadMalformed(t *testing.T) {
	ts := testServer(t)

	resp := upload(t, ts, "<AlteryxDocument><unclosed>")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != "MALFORMED_INPUT" {
		t.Errorf("code = %q, want MALFORMED_INPUT", body.Error.Code)
	}
}

func TestUploadNotAWorkflow(t *testing.T) {
	ts := testServer(t)

	resp := upload(t, ts, `<project name="pom-like"/>`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetMissing(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/v1/workflows/nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGraphFormats(t *testing.T) {
	ts := testServer(t)

	resp := upload(t, ts, sampleDoc)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	jsonResp, err := http.Get(ts.URL + "/v1/workflows/" + created.ID + "/graph")
	if err != nil {
		t.Fatal(err)
	}
	defer jsonResp.Body.Close()
	var g struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.NewDecoder(jsonResp.Body).Decode(&g); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("graph = %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}

	dotResp, err := http.Get(ts.URL + "/v1/workflows/" + created.ID + "/graph?format=dot")
	if err != nil {
		t.Fatal(err)
	}
	defer dotResp.Body.Close()
	dot, _ := io.ReadAll(dotResp.Body)
	if !strings.Contains(string(dot), "digraph G {") {
		t.Errorf("not DOT output: %s", dot)
	}

	badResp, err := http.Get(ts.URL + "/v1/workflows/" + created.ID + "/graph?format=webp")
	if err != nil {
		t.Fatal(err)
	}
	defer badResp.Body.Close()
	if badResp.StatusCode != http.StatusBadRequest {
		t.Errorf("unsupported format status = %d, want 400", badResp.StatusCode)
	}
}
