package api

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// MediaField is the multipart field every uploaded file goes under.
const MediaField = "media"

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Form is a multipart payload: ordered scalar fields plus media files.
type Form struct {
	fields [][2]string
	files  []File
}

func NewForm() *Form { return &Form{} }

func (f *Form) Set(key, value string) *Form {
	for i := range f.fields {
		if f.fields[i][0] == key {
			f.fields[i][1] = value
			return f
		}
	}
	f.fields = append(f.fields, [2]string{key, value})
	return f
}

func (f *Form) SetFloat(key string, v float64) *Form {
	return f.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
}

func (f *Form) SetBool(key string, v bool) *Form { return f.Set(key, strconv.FormatBool(v)) }

// SetID writes an optional reference; nil leaves the field out.
func (f *Form) SetID(key string, v *int64) *Form {
	if v == nil {
		return f
	}
	return f.Set(key, strconv.FormatInt(*v, 10))
}

// SetJSON encodes v (id lists, link lists) into a single field.
func (f *Form) SetJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.Set(key, string(b))
	return nil
}

func (f *Form) Attach(files ...File) *Form {
	f.files = append(f.files, files...)
	return f
}

// Value returns the field value and whether it was set.
func (f *Form) Value(key string) (string, bool) {
	for _, kv := range f.fields {
		if kv[0] == key {
			return kv[1], true
		}
	}
	return "", false
}

func (f *Form) Files() []File { return f.files }

func (f *Form) apply(a *fiber.Agent) {
	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	for _, kv := range f.fields {
		args.Add(kv[0], kv[1])
	}
	for _, file := range f.files {
		a.FileData(&fiber.FormFile{Fieldname: MediaField, Name: file.Name, Content: file.Data})
	}
	a.MultipartForm(args)
}
