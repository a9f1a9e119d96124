package loader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dynform/internal/loader"
	"github.com/goliatone/go-dynform/pkg/question"
)

const schema = `[{"type":"text","name":"first","id":"f1","label":"First","required":true}]`

func TestLoad_HTTP(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(schema))
	}))
	defer srv.Close()

	l := loader.New(question.NewLoaderOptions(question.WithHTTPClient(srv.Client())))
	descs, err := l.Load(context.Background(), question.MustSourceFromURL(srv.URL))
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, "f1", descs[0].ID)
	assert.True(t, descs[0].Required)
	assert.Equal(t, 1, hits)
}

func TestLoad_HTTPFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			_, _ = w.Write([]byte(`[{"type":`))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	l := loader.New(question.NewLoaderOptions(question.WithHTTPClient(srv.Client())))

	_, err := l.Load(context.Background(), question.MustSourceFromURL(srv.URL+"/missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")

	_, err = l.Load(context.Background(), question.MustSourceFromURL(srv.URL+"/broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestLoad_HTTPDisabled(t *testing.T) {
	l := loader.New(question.NewLoaderOptions())
	_, err := l.Load(context.Background(), question.MustSourceFromURL("https://example.com/q.json"))
	assert.True(t, errors.Is(err, loader.ErrHTTPDisabled))
}

func TestLoad_FileAndFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(schema), 0o644))

	l := loader.New(question.NewLoaderOptions(question.WithFileSystem(fstest.MapFS{
		"schemas/questions.yaml": &fstest.MapFile{Data: []byte("- {type: email, name: email, id: e1, label: Email}\n")},
	})))

	fromFile, err := l.Load(context.Background(), question.SourceFromFile(path))
	require.NoError(t, err)
	require.Len(t, fromFile, 1)
	assert.Equal(t, "first", fromFile[0].Name)

	fromFS, err := l.Load(context.Background(), question.SourceFromFS("schemas/questions.yaml"))
	require.NoError(t, err)
	require.Len(t, fromFS, 1)
	assert.Equal(t, "email", fromFS[0].Type)
}

func TestLoad_Strict(t *testing.T) {
	dup := `[{"type":"text","name":"a","id":"x"},{"type":"text","name":"b","id":"x"}]`
	files := fstest.MapFS{"dup.json": &fstest.MapFile{Data: []byte(dup)}}

	lenient := loader.New(question.NewLoaderOptions(question.WithFileSystem(files)))
	descs, err := lenient.Load(context.Background(), question.SourceFromFS("dup.json"))
	require.NoError(t, err)
	assert.Len(t, descs, 2)

	strict := loader.New(question.NewLoaderOptions(question.WithFileSystem(files), question.WithStrict(true)))
	_, err = strict.Load(context.Background(), question.SourceFromFS("dup.json"))
	var checkErr *question.CheckError
	require.ErrorAs(t, err, &checkErr)
	assert.Len(t, checkErr.Issues, 1)
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(question.NewLoaderOptions())
	_, err := l.Load(ctx, question.SourceFromFile("questions.json"))
	assert.ErrorIs(t, err, context.Canceled)
}
