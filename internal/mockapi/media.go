package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/google/uuid"

	"shopadmin/internal/domain"
)

const maxUpload = 32 << 20

func parseMultipart(r *http.Request) error {
	return r.ParseMultipartForm(maxUpload)
}

// uploads turns the request's media files into MediaFile records owned by
// entityType/entityID. Callers hold b.mu.
func (b *Backend) uploads(r *http.Request, entityType string, entityID int64) []domain.MediaFile {
	if r.MultipartForm == nil {
		return nil
	}
	var out []domain.MediaFile
	now := b.opts.Now()
	for _, fh := range r.MultipartForm.File["media"] {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		_ = f.Close()
		mime := fh.Header.Get("Content-Type")
		if mime == "" || mime == "application/octet-stream" {
			mime = http.DetectContentType(head[:n])
		}
		b.nextMediaID++
		name := uuid.NewString() + path.Ext(fh.Filename)
		out = append(out, domain.MediaFile{
			ID:           b.nextMediaID,
			FileName:     name,
			OriginalName: fh.Filename,
			MimeType:     mime,
			Size:         fh.Size,
			Bucket:       "media",
			URL:          "/media/" + name,
			EntityType:   entityType,
			EntityID:     entityID,
			UserID:       claimsOf(r).ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return out
}

// formIDs decodes a JSON-encoded id list field; absent or malformed means none.
func formIDs(r *http.Request, key string) []int64 {
	var ids []int64
	if v := r.FormValue(key); v != "" {
		_ = json.Unmarshal([]byte(v), &ids)
	}
	return ids
}

func formOptionalID(r *http.Request, key string) *int64 {
	n, err := strconv.ParseInt(r.FormValue(key), 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func formFloat(r *http.Request, key string) (float64, bool) {
	f, err := strconv.ParseFloat(r.FormValue(key), 64)
	return f, err == nil
}

// dropMedia removes the ids in deleted from files.
func dropMedia(files []domain.MediaFile, deleted []int64) []domain.MediaFile {
	for _, id := range deleted {
		files = domain.WithoutMedia(files, id)
	}
	return files
}

func hasMedia(files []domain.MediaFile, id int64) bool {
	for _, f := range files {
		if f.ID == id {
			return true
		}
	}
	return false
}
