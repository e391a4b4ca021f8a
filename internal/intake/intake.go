package intake

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/arabianblog/backend/internal/apperr"
)

// Role names the slot a payload fills in a request
type Role string

const (
	RoleAudio Role = "audio"
	RoleImage Role = "image"
)

var allowedByRole = map[Role]map[string]bool{
	RoleAudio: {
		"audio/mpeg": true,
	},
	RoleImage: {
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
}

// Payload is a validated, fully buffered upload ready for the
// lifecycle manager. Nothing reaches the blob store before one of
// these exists.
type Payload struct {
	Field    string
	Filename string
	MIME     string
	Data     []byte
}

// Intake validates and buffers multipart uploads
type Intake struct {
	maxMediaForm    int64 // combined audio+thumbnail
	maxArticleImage int64
}

func New(maxMediaForm, maxArticleImage int64) *Intake {
	return &Intake{maxMediaForm: maxMediaForm, maxArticleImage: maxArticleImage}
}

// MediaForm reads the multipart fields of a media upload: "file"
// (audio, required by Create but optional on Update) and "thumbnail"
// (image, optional). The combined size must stay under the media
// ceiling.
func (i *Intake) MediaForm(req *http.Request) (audio *Payload, thumbnail *Payload, err error) {
	if err := parseForm(req, i.maxMediaForm); err != nil {
		return nil, nil, err
	}

	audio, err = i.fileFromForm(req, "file", RoleAudio)
	if err != nil {
		return nil, nil, err
	}
	thumbnail, err = i.fileFromForm(req, "thumbnail", RoleImage)
	if err != nil {
		return nil, nil, err
	}

	var combined int64
	if audio != nil {
		combined += int64(len(audio.Data))
	}
	if thumbnail != nil {
		combined += int64(len(thumbnail.Data))
	}
	if combined > i.maxMediaForm {
		return nil, nil, apperr.Validation(fmt.Sprintf("upload too large: max %d bytes combined", i.maxMediaForm))
	}

	return audio, thumbnail, nil
}

// ArticleImage reads the optional "image" field of an article form
func (i *Intake) ArticleImage(req *http.Request) (*Payload, error) {
	if err := parseForm(req, i.maxArticleImage); err != nil {
		return nil, err
	}
	image, err := i.fileFromForm(req, "image", RoleImage)
	if err != nil {
		return nil, err
	}
	if image != nil && int64(len(image.Data)) > i.maxArticleImage {
		return nil, apperr.Validation(fmt.Sprintf("image too large: max %d bytes", i.maxArticleImage))
	}
	return image, nil
}

// formOverhead leaves room for multipart boundaries and text fields on
// top of the file ceiling
const formOverhead = 1 << 20

// parseForm reads the multipart body with the request capped at the
// ceiling, so an oversized upload is cut off during the read instead
// of being buffered in full and rejected afterwards.
func parseForm(req *http.Request, maxSize int64) error {
	req.Body = http.MaxBytesReader(nil, req.Body, maxSize+formOverhead)
	if err := req.ParseMultipartForm(maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Validation(fmt.Sprintf("upload too large: max %d bytes", maxSize))
		}
		return apperr.Validation("failed to parse multipart form")
	}
	return nil
}

func (i *Intake) fileFromForm(req *http.Request, field string, role Role) (*Payload, error) {
	if req.MultipartForm == nil {
		return nil, nil
	}
	headers := req.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	if len(headers) > 1 {
		return nil, apperr.Validation(fmt.Sprintf("field %s accepts a single file", field))
	}
	return i.FromFileHeader(headers[0], field, role)
}

// FromFileHeader buffers one multipart file and checks its declared
// and sniffed MIME types against the role's allow-list
func (i *Intake) FromFileHeader(fh *multipart.FileHeader, field string, role Role) (*Payload, error) {
	declared := fh.Header.Get("Content-Type")
	if !allowedByRole[role][declared] {
		return nil, apperr.UnsupportedMedia(fmt.Sprintf("unsupported content type %q for %s", declared, field))
	}

	file, err := fh.Open()
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("failed to open uploaded file %s", field))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("failed to read uploaded file %s", field))
	}
	if len(data) == 0 {
		return nil, apperr.Validation(fmt.Sprintf("uploaded file %s is empty", field))
	}

	// content sniffing catches mislabeled uploads; mp3 frames without
	// an ID3 header sniff as octet-stream, so audio is checked loosely
	sniffed := http.DetectContentType(data)
	switch role {
	case RoleImage:
		if !strings.HasPrefix(sniffed, "image/") {
			return nil, apperr.UnsupportedMedia(fmt.Sprintf("file %s is not an image", field))
		}
	case RoleAudio:
		if !strings.HasPrefix(sniffed, "audio/") && sniffed != "application/octet-stream" {
			return nil, apperr.UnsupportedMedia(fmt.Sprintf("file %s is not an audio file", field))
		}
	}

	return &Payload{
		Field:    field,
		Filename: fh.Filename,
		MIME:     declared,
		Data:     data,
	}, nil
}
