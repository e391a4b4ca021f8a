package intake

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabianblog/backend/internal/apperr"
)

var (
	pngBytes = append([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, bytes.Repeat([]byte{0x00}, 64)...)
	mp3Bytes = append([]byte("ID3"), bytes.Repeat([]byte{0x00}, 64)...)
)

type formFile struct {
	field    string
	filename string
	mime     string
	data     []byte
}

func multipartRequest(t *testing.T, files ...formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		header.Set("Content-Type", f.mime)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestMediaFormAcceptsAudioAndThumbnail(t *testing.T) {
	in := New(100<<20, 10<<20)
	req := multipartRequest(t,
		formFile{"file", "track.mp3", "audio/mpeg", mp3Bytes},
		formFile{"thumbnail", "cover.png", "image/png", pngBytes},
	)

	audio, thumbnail, err := in.MediaForm(req)
	require.NoError(t, err)
	require.NotNil(t, audio)
	require.NotNil(t, thumbnail)
	assert.Equal(t, "audio/mpeg", audio.MIME)
	assert.Equal(t, "track.mp3", audio.Filename)
	assert.Equal(t, "image/png", thumbnail.MIME)
}

func TestMediaFormFilesAreOptional(t *testing.T) {
	in := New(100<<20, 10<<20)
	req := multipartRequest(t)

	audio, thumbnail, err := in.MediaForm(req)
	require.NoError(t, err)
	assert.Nil(t, audio)
	assert.Nil(t, thumbnail)
}

func TestMediaFormRejectsWrongDeclaredType(t *testing.T) {
	in := New(100<<20, 10<<20)
	req := multipartRequest(t, formFile{"file", "track.wav", "audio/wav", mp3Bytes})

	_, _, err := in.MediaForm(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnsupportedMedia, apperr.KindOf(err))
}

func TestMediaFormRejectsMislabeledImage(t *testing.T) {
	in := New(100<<20, 10<<20)
	req := multipartRequest(t, formFile{"thumbnail", "cover.png", "image/png", []byte("plain text, not an image")})

	_, _, err := in.MediaForm(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnsupportedMedia, apperr.KindOf(err))
}

func TestMediaFormRejectsEmptyFile(t *testing.T) {
	in := New(100<<20, 10<<20)
	req := multipartRequest(t, formFile{"file", "track.mp3", "audio/mpeg", nil})

	_, _, err := in.MediaForm(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMediaFormRejectsOversizedUpload(t *testing.T) {
	in := New(64, 10<<20)
	req := multipartRequest(t, formFile{"file", "track.mp3", "audio/mpeg", mp3Bytes})

	_, _, err := in.MediaForm(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMediaFormCutsOffOversizedBody(t *testing.T) {
	// well past the ceiling plus form overhead, so the read itself is
	// cut off rather than buffered in full first
	in := New(1024, 10<<20)
	huge := bytes.Repeat([]byte{0x00}, 3<<20)
	req := multipartRequest(t, formFile{"file", "track.mp3", "audio/mpeg", append([]byte("ID3"), huge...)})

	_, _, err := in.MediaForm(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMediaFormRejectsDuplicateField(t *testing.T) {
	in := New(100<<20, 10<<20)
	req := multipartRequest(t,
		formFile{"file", "a.mp3", "audio/mpeg", mp3Bytes},
		formFile{"file", "b.mp3", "audio/mpeg", mp3Bytes},
	)

	_, _, err := in.MediaForm(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestArticleImage(t *testing.T) {
	in := New(100<<20, 10<<20)
	req := multipartRequest(t, formFile{"image", "cover.png", "image/png", pngBytes})

	image, err := in.ArticleImage(req)
	require.NoError(t, err)
	require.NotNil(t, image)
	assert.Equal(t, "image/png", image.MIME)
	assert.Equal(t, pngBytes, image.Data)
}

func TestArticleImageRejectsAudioPayload(t *testing.T) {
	in := New(100<<20, 10<<20)
	req := multipartRequest(t, formFile{"image", "track.mp3", "audio/mpeg", mp3Bytes})

	_, err := in.ArticleImage(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnsupportedMedia, apperr.KindOf(err))
}

func TestArticleImageRejectsOversized(t *testing.T) {
	in := New(100<<20, 32)
	req := multipartRequest(t, formFile{"image", "cover.png", "image/png", pngBytes})

	_, err := in.ArticleImage(req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
