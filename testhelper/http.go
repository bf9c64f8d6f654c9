package testhelper

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/storage"
)

// Envelope mirrors the JSON response envelope with a raw data payload
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *apphttp.Error  `json:"error"`
}

// FormFile is one file part of a multipart body
type FormFile struct {
	Filename string
	Content  []byte
}

// NewRouter returns a gin engine in test mode
func NewRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// AsUser returns middleware that marks the request as authenticated by user
func AsUser(user *auth.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextUserID, user.ID)
		c.Set(auth.ContextUserRole, user.Role)
		c.Set(auth.ContextUser, user)
		c.Next()
	}
}

// DoJSON sends body encoded as JSON and decodes the envelope
func DoJSON(router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, Envelope) {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return Do(router, req)
}

// DoMultipart sends fields and files as multipart/form-data
func DoMultipart(router http.Handler, method, path string, fields map[string]string, files map[string]FormFile) (*httptest.ResponseRecorder, Envelope) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		writer.WriteField(name, value)
	}
	for name, file := range files {
		part, _ := writer.CreateFormFile(name, file.Filename)
		part.Write(file.Content)
	}
	writer.Close()

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return Do(router, req)
}

// Do serves req and decodes the envelope when the body is JSON
func Do(router http.Handler, req *http.Request) (*httptest.ResponseRecorder, Envelope) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env Envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// NewUpload builds an in-memory upload for service level tests
func NewUpload(filename string, content []byte) *storage.Upload {
	return &storage.Upload{
		Filename:    filename,
		Size:        int64(len(content)),
		ContentType: "application/octet-stream",
		Reader:      bytes.NewReader(content),
	}
}
