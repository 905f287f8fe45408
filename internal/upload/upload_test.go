package upload_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/api"
	"shopadmin/internal/upload"
)

func files(names ...string) []api.File {
	out := make([]api.File, len(names))
	for i, n := range names {
		out[i] = api.File{Name: n, Data: []byte(n)}
	}
	return out
}

func TestSelection_AddTruncatesAtMax(t *testing.T) {
	s := upload.NewSelection(3)
	s.Add(files("a", "b")...)
	assert.False(t, s.Full())
	s.Add(files("c", "d", "e")...)

	assert.True(t, s.Full())
	got := s.Files()
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[2].Name)
}

func TestSelection_ZeroValueUsesDefault(t *testing.T) {
	var s upload.Selection
	s.Add(files("1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11")...)
	assert.Equal(t, upload.DefaultMax, s.Len())
}

func TestSelection_Remove(t *testing.T) {
	s := upload.NewSelection(0)
	s.Add(files("a", "b", "c")...)
	s.Remove(1)
	s.Remove(7)
	s.Remove(-1)

	got := s.Files()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
}

func multipartHeaders(t *testing.T, parts map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, data := range parts {
		fw, err := w.CreateFormFile("media", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["media"]
}

func TestFromMultipart_ReadsAndSkipsEmpty(t *testing.T) {
	hs := multipartHeaders(t, map[string][]byte{"a.png": []byte("png-bytes"), "blank": nil})

	got, err := upload.FromMultipart(hs, 1024)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.png", got[0].Name)
	assert.Equal(t, []byte("png-bytes"), got[0].Data)
}

func TestFromMultipart_RejectsOversized(t *testing.T) {
	hs := multipartHeaders(t, map[string][]byte{"big.bin": bytes.Repeat([]byte("x"), 64)})

	_, err := upload.FromMultipart(hs, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, upload.ErrTooLarge))
}
