package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"tankmate/internal/blob/core"
)

// fakeS3 serves the subset of the S3 REST API the store uses, in process.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	// pageSize forces ListObjectsV2 pagination when > 0.
	pageSize int
}

type fakeObject struct {
	body        []byte
	contentType string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		return f.list(req), nil
	}
	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objects[key] = fakeObject{body: body, contentType: req.Header.Get("Content-Type")}
		return respond(http.StatusOK, nil, http.Header{"ETag": {"\"etag-put\""}}), nil
	case http.MethodHead, http.MethodGet:
		obj, ok := f.objects[key]
		if !ok {
			var body []byte
			if req.Method == http.MethodGet {
				body = []byte(`<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			}
			return respond(http.StatusNotFound, body, http.Header{"Content-Type": {"application/xml"}}), nil
		}
		header := http.Header{
			"Content-Length": {fmt.Sprintf("%d", len(obj.body))},
			"Content-Type":   {obj.contentType},
			"ETag":           {"\"etag-" + key + "\""},
			"Last-Modified":  {time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Format(http.TimeFormat)},
		}
		if req.Method == http.MethodHead {
			return respond(http.StatusOK, nil, header), nil
		}
		return respond(http.StatusOK, obj.body, header), nil
	}
	return respond(http.StatusNotImplemented, nil, http.Header{}), nil
}

func (f *fakeS3) list(req *http.Request) *http.Response {
	prefix := req.URL.Query().Get("prefix")
	start := req.URL.Query().Get("continuation-token")
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) && k > start {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	truncated := false
	if f.pageSize > 0 && len(keys) > f.pageSize {
		keys = keys[:f.pageSize]
		truncated = true
	}
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><ListBucketResult>`)
	fmt.Fprintf(&b, "<IsTruncated>%t</IsTruncated>", truncated)
	if truncated {
		fmt.Fprintf(&b, "<NextContinuationToken>%s</NextContinuationToken>", keys[len(keys)-1])
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>", k, len(f.objects[k].body))
	}
	b.WriteString("</ListBucketResult>")
	return respond(http.StatusOK, []byte(b.String()), http.Header{"Content-Type": {"application/xml"}})
}

func respond(status int, body []byte, header http.Header) *http.Response {
	return &http.Response{StatusCode: status, Status: http.StatusText(status), Body: io.NopCloser(bytes.NewReader(body)), Header: header, ContentLength: int64(len(body))}
}

func newFakeStore(t *testing.T, fake *fakeS3) *Store {
	t.Helper()
	store, err := New(context.Background(), Config{
		Bucket:          "catalogs",
		Endpoint:        "https://mock.s3.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: fake},
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestStorePutGetHead(t *testing.T) {
	fake := &fakeS3{objects: map[string]fakeObject{}}
	store := newFakeStore(t, fake)
	ctx := context.Background()
	payload := []byte(`[{"id":"neon","name":"Neon Tetra"}]`)
	info, err := store.Put(ctx, "fish_data.json", bytes.NewReader(payload), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "fish_data.json" || info.Size != int64(len(payload)) || info.ETag != "etag-fish_data.json" {
		t.Fatalf("unexpected info %+v", info)
	}
	got, rc, err := store.Get(ctx, "fish_data.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	body, _ := io.ReadAll(rc)
	if !bytes.Equal(body, payload) {
		t.Fatalf("unexpected body %q", body)
	}
	if got.ContentType != "application/json" {
		t.Fatalf("unexpected content type %q", got.ContentType)
	}
	if store.Driver() != core.DriverS3 || store.Bucket() != "catalogs" {
		t.Fatalf("unexpected driver/bucket")
	}
}

func TestStoreMissingKeyIsNotFound(t *testing.T) {
	store := newFakeStore(t, &fakeS3{objects: map[string]fakeObject{}})
	if _, _, err := store.Get(context.Background(), "missing.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Get, got %v", err)
	}
	if _, err := store.Head(context.Background(), "missing.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Head, got %v", err)
	}
}

func TestStoreListPaginates(t *testing.T) {
	fake := &fakeS3{pageSize: 1, objects: map[string]fakeObject{
		"catalogs/b.json": {body: []byte("bb")},
		"catalogs/a.json": {body: []byte("a")},
		"other/c.json":    {body: []byte("c")},
	}}
	store := newFakeStore(t, fake)
	infos, err := store.List(context.Background(), "catalogs/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "catalogs/a.json" || infos[1].Key != "catalogs/b.json" || infos[1].Size != 2 {
		t.Fatalf("unexpected list %+v", infos)
	}
}
