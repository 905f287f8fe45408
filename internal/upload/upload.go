// Package upload collects the media files an admin picks for one form
// submission before they are handed to the multipart builder.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"shopadmin/internal/api"
)

const DefaultMax = 10

var ErrTooLarge = errors.New("file exceeds the upload size limit")

// Selection is an ordered, capped list of picked files.
type Selection struct {
	Max   int
	files []api.File
}

func NewSelection(max int) *Selection {
	if max <= 0 {
		max = DefaultMax
	}
	return &Selection{Max: max}
}

func (s *Selection) limit() int {
	if s.Max <= 0 {
		return DefaultMax
	}
	return s.Max
}

// Add appends files and drops whatever goes past the cap.
func (s *Selection) Add(files ...api.File) {
	s.files = append(s.files, files...)
	if n := s.limit(); len(s.files) > n {
		s.files = s.files[:n]
	}
}

// Remove drops the file at i; an out-of-range index is a no-op.
func (s *Selection) Remove(i int) {
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
}

func (s *Selection) Files() []api.File {
	return append([]api.File(nil), s.files...)
}

func (s *Selection) Len() int { return len(s.files) }

func (s *Selection) Full() bool { return len(s.files) >= s.limit() }

// FromMultipart reads the uploaded parts into memory. Empty parts (a file
// input left blank) are skipped.
func FromMultipart(headers []*multipart.FileHeader, maxSize int64) ([]api.File, error) {
	out := make([]api.File, 0, len(headers))
	for _, fh := range headers {
		if fh == nil || fh.Size == 0 {
			continue
		}
		if maxSize > 0 && fh.Size > maxSize {
			return nil, fmt.Errorf("%s: %w", fh.Filename, ErrTooLarge)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		out = append(out, api.File{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data})
	}
	return out, nil
}

// Collect builds a capped selection straight from the uploaded parts.
func Collect(headers []*multipart.FileHeader, max int, maxSize int64) (*Selection, error) {
	files, err := FromMultipart(headers, maxSize)
	if err != nil {
		return nil, err
	}
	s := NewSelection(max)
	s.Add(files...)
	return s, nil
}
