package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najino/Cooko-application-api/config"
	"github.com/najino/Cooko-application-api/internal/api"
	"github.com/najino/Cooko-application-api/internal/service"
)

func multipartUpload(t *testing.T, fieldName, fileName, mimeType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadEndpoint(t *testing.T) {
	mock := &mockUploadService{url: "http://localhost:9000/cooko-uploads/categories/abc.png"}
	router := setupUploadRouter(mock)

	body, contentType := multipartUpload(t, "file", "photo.png", "image/png", []byte("fake image bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload?type=category", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "photo.png", data["originalName"])
	assert.Equal(t, "image/png", data["mimetype"])
	assert.Equal(t, mock.url, data["publicUrl"])

	require.NotNil(t, mock.lastUpload)
	assert.Equal(t, "category", mock.lastUpload.Type)
	assert.Equal(t, []byte("fake image bytes"), mock.lastUpload.Data)
}

func TestUploadEndpoint_DefaultsToCategory(t *testing.T) {
	mock := &mockUploadService{url: "http://localhost:9000/cooko-uploads/categories/abc.jpg"}
	router := setupUploadRouter(mock)

	body, contentType := multipartUpload(t, "file", "photo.jpg", "image/jpeg", []byte("jpeg bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "category", mock.lastUpload.Type)
}

func TestUploadEndpoint_MissingFile(t *testing.T) {
	mock := &mockUploadService{}
	router := setupUploadRouter(mock)

	body, contentType := multipartUpload(t, "document", "photo.png", "image/png", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assertErrorEnvelope(t, w, http.StatusBadRequest)
	assert.Nil(t, mock.lastUpload)
}

func TestUploadEndpoint_UnsupportedMimeType(t *testing.T) {
	mock := &mockUploadService{}
	router := setupUploadRouter(mock)

	body, contentType := multipartUpload(t, "file", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := assertErrorEnvelope(t, w, http.StatusUnprocessableEntity)
	assert.Contains(t, resp["message"], "text/plain")
	assert.Nil(t, mock.lastUpload)
}

func TestUploadEndpoint_UnknownType(t *testing.T) {
	// the unknown target is rejected by the upload service before any
	// object-store call, so a client-less service instance suffices
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api.NewUploadHandler(service.NewUploadService(&config.S3Config{})).RegisterRoutes(router.Group(""))

	body, contentType := multipartUpload(t, "file", "photo.png", "image/png", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload?type=avatar", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := assertErrorEnvelope(t, w, http.StatusBadRequest)
	assert.Contains(t, resp["message"], "avatar")
}
