package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	domain "file-manager-api/internal/domain/file"
	"file-manager-api/internal/infrastructure/jwt"
	"file-manager-api/internal/interface/api/rest/dto/file"
	"file-manager-api/internal/interface/api/rest/middleware"
	"file-manager-api/internal/interface/api/rest/validator"
)

const uploadField = "files"

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	r.POST(RouteUpload, middleware.OptionalAuth(jwtService), fc.UploadFilesHandler)
	r.GET(RouteFiles, fc.ListFilesHandler)
	r.DELETE(RouteFile, fc.DeleteFileHandler)

	return fc
}

func (fc *FileController) UploadFilesHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "error": "No files uploaded"},
		)
		return
	}

	// a client disconnect must not abort per-file work mid-batch
	uploaded, failed, err := fc.fileService.UploadFiles(
		context.WithoutCancel(c.Request.Context()),
		ownerFromContext(c),
		form.File[uploadField],
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyBatch):
			c.JSON(
				http.StatusBadRequest,
				gin.H{"success": false, "error": "No files uploaded"},
			)
		case errors.Is(err, domain.ErrBatchTooLarge):
			c.JSON(
				http.StatusBadRequest,
				gin.H{"success": false, "error": fmt.Sprintf("Too many files, at most %d per upload", domain.MaxBatchFiles)},
			)
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"success": false, "error": "File upload failed", "details": err.Error()},
			)
			fc.logger.Error("UploadFiles() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, file.UploadResponse{
		Success:       true,
		UploadedFiles: file.ToUploadedFiles(uploaded),
		Errors:        file.ToUploadFailures(failed),
		Message:       uploadSummary(len(uploaded), len(failed)),
	})
}

func (fc *FileController) ListFilesHandler(c *gin.Context) {
	q := validator.ParseListQuery(
		c.Query("page"),
		c.Query("limit"),
		c.Query("sort"),
		c.Query("search"),
	)

	files, p, err := fc.fileService.ListFiles(c.Request.Context(), q)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"success": false, "error": "Failed to fetch files"},
		)
		fc.logger.Error("ListFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, file.ListResponse{
		Success:    true,
		Files:      file.ToResponseFiles(files),
		Pagination: file.ToResponsePagination(p),
	})
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "error": "id must be a valid UUID"},
		)
		return
	}

	// keep the blob-then-record sequence running even if the caller goes away
	if err := fc.fileService.DeleteFile(context.WithoutCancel(c.Request.Context()), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(
				http.StatusNotFound,
				gin.H{"success": false, "error": "File not found"},
			)
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"success": false, "error": "Failed to delete file"},
		)
		fc.logger.Error("DeleteFile() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

func uploadSummary(uploaded, failed int) string {
	msg := fmt.Sprintf("%d file(s) uploaded successfully", uploaded)
	if failed > 0 {
		msg += fmt.Sprintf(", %d failed", failed)
	}

	return msg
}

// ownerFromContext reads the identity OptionalAuth may have resolved; absent
// or unparsable identities mean an anonymous upload.
func ownerFromContext(c *gin.Context) *domain.UUID {
	raw, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return nil
	}
	s, isStr := raw.(string)
	if !isStr {
		return nil
	}
	if ok, id := validator.IsUUID(s); ok {
		return &id
	}

	return nil
}
