// file_controller_test.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	domainFile "file-manager-api/internal/domain/file"
	jwtSvc "file-manager-api/internal/infrastructure/jwt"
	"file-manager-api/internal/interface/api/rest/middleware"
)

type FakeFileService struct {
	UploadFilesFunc func(ctx context.Context, ownerID *domainFile.UUID, headers []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error)
	ListFilesFunc   func(ctx context.Context, q domainFile.ListQuery) (domainFile.Files, domainFile.Pagination, error)
	DeleteFileFunc  func(ctx context.Context, id domainFile.UUID) error
}

func (f *FakeFileService) UploadFiles(ctx context.Context, ownerID *domainFile.UUID, headers []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error) {
	if f.UploadFilesFunc == nil {
		return nil, nil, errors.New("not used")
	}
	return f.UploadFilesFunc(ctx, ownerID, headers)
}
func (f *FakeFileService) ListFiles(ctx context.Context, q domainFile.ListQuery) (domainFile.Files, domainFile.Pagination, error) {
	if f.ListFilesFunc == nil {
		return nil, domainFile.Pagination{}, errors.New("not used")
	}
	return f.ListFilesFunc(ctx, q)
}
func (f *FakeFileService) DeleteFile(ctx context.Context, id domainFile.UUID) error {
	if f.DeleteFileFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFileFunc(ctx, id)
}

func SignJWT(secret, userID string, exp time.Duration) (string, error) {
	return jwtSvc.New(secret).GenerateJWT(userID, exp)
}

func setupRouterFC(t *testing.T, fs ports.FileService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	logger := zap.NewNop()
	secret := "test-secret"
	j := jwtSvc.New(secret)

	fc := &FileController{
		fileService: fs,
		logger:      logger,
	}

	r.POST(RouteUpload, middleware.OptionalAuth(j), fc.UploadFilesHandler)
	r.GET(RouteFiles, fc.ListFilesHandler)
	r.DELETE(RouteFile, fc.DeleteFileHandler)

	return r, secret
}

type filePart struct {
	name    string
	content []byte
}

func doUploadReq(t *testing.T, r *gin.Engine, parts []filePart, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for _, p := range parts {
		fw, err := w.CreateFormFile("files", p.name)
		require.NoError(t, err)
		_, _ = fw.Write(p.content)
	}

	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, RouteUpload, &b)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doReq(t *testing.T, r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, bytes.NewReader(nil))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestFileController_UploadFilesHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		parts      []filePart
		mockFS     func() ports.FileService
		wantStatus int
		wantErr    string
		check      func(t *testing.T, resp map[string]any)
	}{
		{
			name:  "400 empty batch",
			parts: nil,
			mockFS: func() ports.FileService {
				return &FakeFileService{
					UploadFilesFunc: func(_ context.Context, _ *domainFile.UUID, headers []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error) {
						require.Empty(t, headers)
						return nil, nil, domainFile.ErrEmptyBatch
					},
				}
			},
			wantStatus: http.StatusBadRequest,
			wantErr:    "No files uploaded",
		},
		{
			name:  "400 too many files",
			parts: []filePart{{name: "a.txt", content: []byte("a")}},
			mockFS: func() ports.FileService {
				return &FakeFileService{
					UploadFilesFunc: func(_ context.Context, _ *domainFile.UUID, _ []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error) {
						return nil, nil, domainFile.ErrBatchTooLarge
					},
				}
			},
			wantStatus: http.StatusBadRequest,
			wantErr:    "Too many files, at most 50 per upload",
		},
		{
			name:  "500 unexpected error carries details",
			parts: []filePart{{name: "a.txt", content: []byte("a")}},
			mockFS: func() ports.FileService {
				return &FakeFileService{
					UploadFilesFunc: func(_ context.Context, _ *domainFile.UUID, _ []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error) {
						return nil, nil, errors.New("blob store down")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "File upload failed",
			check: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, false, resp["success"])
				assert.Equal(t, "blob store down", resp["details"])
			},
		},
		{
			name: "200 mixed results",
			parts: []filePart{
				{name: "ok.png", content: []byte("png")},
				{name: "bad.bin", content: []byte("bin")},
			},
			mockFS: func() ports.FileService {
				return &FakeFileService{
					UploadFilesFunc: func(_ context.Context, _ *domainFile.UUID, headers []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error) {
						require.Len(t, headers, 2)
						ok := &domainFile.File{
							UUID:         uuid.New(),
							StorageName:  "123-abcdefghi.png",
							OriginalName: "ok.png",
							MimeType:     "image/png",
							SizeBytes:    3,
							URL:          "http://blobs.local/123-abcdefghi.png",
							UploadedAt:   now,
						}
						fail := domainFile.UploadError{Filename: "bad.bin", Reason: "storage unreachable"}
						return domainFile.Files{ok}, []domainFile.UploadError{fail}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, true, resp["success"])
				assert.Equal(t, "1 file(s) uploaded successfully, 1 failed", resp["message"])

				uploaded, ok := resp["uploadedFiles"].([]any)
				require.True(t, ok)
				require.Len(t, uploaded, 1)
				first, ok := uploaded[0].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "ok.png", first["originalName"])
				assert.Equal(t, "image/png", first["fileType"])
				assert.Equal(t, "http://blobs.local/123-abcdefghi.png", first["url"])
				assert.EqualValues(t, 3, first["size"])
				assert.NotEmpty(t, first["id"])
				assert.NotEmpty(t, first["uploadDate"])

				failures, ok := resp["errors"].([]any)
				require.True(t, ok)
				require.Len(t, failures, 1)
				failure, ok := failures[0].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "bad.bin", failure["filename"])
				assert.Equal(t, "storage unreachable", failure["error"])
			},
		},
		{
			name:  "200 empty error list marshals as array",
			parts: []filePart{{name: "ok.png", content: []byte("png")}},
			mockFS: func() ports.FileService {
				return &FakeFileService{
					UploadFilesFunc: func(_ context.Context, _ *domainFile.UUID, _ []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error) {
						f := &domainFile.File{UUID: uuid.New(), OriginalName: "ok.png", UploadedAt: now}
						return domainFile.Files{f}, nil, nil
					},
				}
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "1 file(s) uploaded successfully", resp["message"])
				failures, ok := resp["errors"].([]any)
				require.True(t, ok, "errors must be [] not null")
				assert.Empty(t, failures)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouterFC(t, tt.mockFS())
			rr := doUploadReq(t, r, tt.parts, nil)

			require.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp["error"])
			}
			if tt.check != nil {
				tt.check(t, resp)
			}
		})
	}
}

func TestFileController_UploadFilesHandler_NotMultipart(t *testing.T) {
	r, _ := setupRouterFC(t, &FakeFileService{})

	req, err := http.NewRequest(http.MethodPost, RouteUpload, bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "No files uploaded", resp["error"])
}

func TestFileController_UploadFilesHandler_Identity(t *testing.T) {
	ownerID := uuid.New()

	t.Run("bearer token resolves the owner", func(t *testing.T) {
		var got *domainFile.UUID
		fs := &FakeFileService{
			UploadFilesFunc: func(_ context.Context, owner *domainFile.UUID, _ []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error) {
				got = owner
				return domainFile.Files{}, nil, nil
			},
		}
		r, secret := setupRouterFC(t, fs)

		tok, err := SignJWT(secret, ownerID.String(), time.Hour)
		require.NoError(t, err)

		rr := doUploadReq(t, r,
			[]filePart{{name: "a.txt", content: []byte("a")}},
			map[string]string{"Authorization": "Bearer " + tok})
		require.Equal(t, http.StatusOK, rr.Code)

		require.NotNil(t, got)
		assert.Equal(t, ownerID, *got)
	})

	t.Run("no header means anonymous", func(t *testing.T) {
		var got *domainFile.UUID
		fs := &FakeFileService{
			UploadFilesFunc: func(_ context.Context, owner *domainFile.UUID, _ []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error) {
				got = owner
				return domainFile.Files{}, nil, nil
			},
		}
		r, _ := setupRouterFC(t, fs)

		rr := doUploadReq(t, r, []filePart{{name: "a.txt", content: []byte("a")}}, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, got)
	})

	t.Run("garbage token means anonymous, not 401", func(t *testing.T) {
		var got *domainFile.UUID
		fs := &FakeFileService{
			UploadFilesFunc: func(_ context.Context, owner *domainFile.UUID, _ []*multipart.FileHeader) (domainFile.Files, []domainFile.UploadError, error) {
				got = owner
				return domainFile.Files{}, nil, nil
			},
		}
		r, _ := setupRouterFC(t, fs)

		rr := doUploadReq(t, r,
			[]filePart{{name: "a.txt", content: []byte("a")}},
			map[string]string{"Authorization": "Bearer not-a-jwt"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, got)
	})
}

func TestFileController_ListFilesHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		query      string
		mockFS     func() ports.FileService
		wantStatus int
		wantErr    string
		check      func(t *testing.T, resp map[string]any)
	}{
		{
			name:  "200 passes parsed query through",
			query: "?page=2&limit=5&sort=-size&search=png",
			mockFS: func() ports.FileService {
				return &FakeFileService{
					ListFilesFunc: func(_ context.Context, q domainFile.ListQuery) (domainFile.Files, domainFile.Pagination, error) {
						assert.Equal(t, 2, q.Page)
						assert.Equal(t, 5, q.Limit)
						assert.Equal(t, domainFile.Sort{Field: domainFile.SortBySize, Desc: true}, q.Sort)
						assert.Equal(t, "png", q.Search)

						f := &domainFile.File{UUID: uuid.New(), OriginalName: "a.png", MimeType: "image/png", UploadedAt: now}
						return domainFile.Files{f}, domainFile.Pagination{Page: 2, Limit: 5, Total: 6, Pages: 2}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, true, resp["success"])

				files, ok := resp["files"].([]any)
				require.True(t, ok)
				require.Len(t, files, 1)

				p, ok := resp["pagination"].(map[string]any)
				require.True(t, ok)
				assert.EqualValues(t, 2, p["page"])
				assert.EqualValues(t, 5, p["limit"])
				assert.EqualValues(t, 6, p["total"])
				assert.EqualValues(t, 2, p["pages"])
			},
		},
		{
			name:  "200 garbage pagination falls back to defaults",
			query: "?page=banana&limit=-2&sort=ransom",
			mockFS: func() ports.FileService {
				return &FakeFileService{
					ListFilesFunc: func(_ context.Context, q domainFile.ListQuery) (domainFile.Files, domainFile.Pagination, error) {
						assert.Equal(t, domainFile.DefaultPage, q.Page)
						assert.Equal(t, domainFile.DefaultLimit, q.Limit)
						assert.Equal(t, domainFile.DefaultSort(), q.Sort)
						return nil, domainFile.Pagination{Page: 1, Limit: 10}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp map[string]any) {
				files, ok := resp["files"].([]any)
				require.True(t, ok, "files must be [] not null")
				assert.Empty(t, files)
			},
		},
		{
			name:  "500 service error",
			query: "",
			mockFS: func() ports.FileService {
				return &FakeFileService{
					ListFilesFunc: func(_ context.Context, _ domainFile.ListQuery) (domainFile.Files, domainFile.Pagination, error) {
						return nil, domainFile.Pagination{}, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "Failed to fetch files",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouterFC(t, tt.mockFS())
			rr := doReq(t, r, http.MethodGet, RouteFiles+tt.query)

			require.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp["error"])
			}
			if tt.check != nil {
				tt.check(t, resp)
			}
		})
	}
}

func TestFileController_DeleteFileHandler(t *testing.T) {
	okID := uuid.New()

	tests := []struct {
		name       string
		id         string
		mockFS     func() ports.FileService
		wantStatus int
		wantErr    string
	}{
		{
			name:       "400 invalid uuid",
			id:         "not-uuid",
			mockFS:     func() ports.FileService { return &FakeFileService{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "id must be a valid UUID",
		},
		{
			name: "404 unknown id",
			id:   okID.String(),
			mockFS: func() ports.FileService {
				return &FakeFileService{
					DeleteFileFunc: func(_ context.Context, _ domainFile.UUID) error {
						return domainFile.ErrNotFound
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantErr:    "File not found",
		},
		{
			name: "500 blob deletion failure",
			id:   okID.String(),
			mockFS: func() ports.FileService {
				return &FakeFileService{
					DeleteFileFunc: func(_ context.Context, _ domainFile.UUID) error {
						return domainFile.ErrBlobDelete
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "Failed to delete file",
		},
		{
			name: "200 success",
			id:   okID.String(),
			mockFS: func() ports.FileService {
				return &FakeFileService{
					DeleteFileFunc: func(_ context.Context, id domainFile.UUID) error {
						assert.Equal(t, okID, id)
						return nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouterFC(t, tt.mockFS())
			rr := doReq(t, r, http.MethodDelete, RouteFiles+"/"+tt.id)

			require.Equal(t, tt.wantStatus, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp["error"])
			}
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, true, resp["success"])
				assert.Equal(t, "File deleted successfully", resp["message"])
			}
		})
	}
}
