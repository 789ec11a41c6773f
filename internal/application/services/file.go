package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"file-manager-api/internal/application/ports"
	domain "file-manager-api/internal/domain/file"
	"file-manager-api/internal/infrastructure/mq"
	"file-manager-api/internal/interface/api/rest/dto/file"
)

const suffixLen = 9

const suffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

const maxExtLen = 12

var extSafeRe = regexp.MustCompile(`[^a-z0-9.]+`)

type FileService struct {
	blobs          ports.BlobStore
	fileRepository domain.Repository
	rmq            ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewFileService(
	blobs ports.BlobStore,
	fileRepository domain.Repository,
	rmq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		blobs:          blobs,
		fileRepository: fileRepository,
		rmq:            rmq,
		mCounter:       mCounter,
	}
}

func (fs *FileService) UploadFiles(
	ctx context.Context,
	ownerID *domain.UUID,
	headers []*multipart.FileHeader,
) (domain.Files, []domain.UploadError, error) {
	if len(headers) == 0 {
		return nil, nil, domain.ErrEmptyBatch
	}
	if len(headers) > domain.MaxBatchFiles {
		return nil, nil, domain.ErrBatchTooLarge
	}

	uploaded := make(domain.Files, 0, len(headers))
	failed := make([]domain.UploadError, 0)

	// Sequential on purpose: one in-flight blob write per request bounds
	// backend pressure and keeps failure attribution per file.
	for _, in := range headers {
		f, err := fs.uploadOne(ctx, ownerID, in)
		if err != nil {
			failed = append(failed, domain.UploadError{Filename: in.Filename, Reason: err.Error()})
			fs.mCounter.WithLabelValues("file_upload_errors_total").Inc()
			continue
		}

		uploaded = append(uploaded, f)
		fs.mCounter.WithLabelValues("files_uploaded_total").Inc()
	}

	return uploaded, failed, nil
}

func (fs *FileService) uploadOne(
	ctx context.Context,
	ownerID *domain.UUID,
	in *multipart.FileHeader,
) (*domain.File, error) {
	if in.Size > domain.MaxFileBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", domain.MaxFileBytes)
	}

	src, err := in.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType := contentTypeOf(in)
	storageName := genStorageName(in.Filename, contentType)

	// Blob first, record second. A failed insert can leave an orphaned
	// blob; the reverse order would leave a record pointing at nothing.
	if err = fs.blobs.Upload(ctx, storageName, src, in.Size, contentType); err != nil {
		return nil, err
	}

	f := &domain.File{
		UUID:   uuid.New(),
		UserID: ownerID,

		StorageName:  storageName,
		OriginalName: in.Filename,
		MimeType:     contentType,
		SizeBytes:    uint64(in.Size),
		URL:          fs.blobs.GetPublicURL(storageName),
	}

	out, err := fs.fileRepository.CreateFile(ctx, f)
	if err != nil {
		return nil, err
	}

	fs.publish(http.MethodPost, out)

	return out, nil
}

func (fs *FileService) ListFiles(ctx context.Context, q domain.ListQuery) (domain.Files, domain.Pagination, error) {
	q = q.Normalize()

	files, total, err := fs.fileRepository.FetchFiles(ctx, q)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	return files, domain.NewPagination(q.Page, q.Limit, total), nil
}

func (fs *FileService) DeleteFile(ctx context.Context, id domain.UUID) error {
	f, err := fs.fileRepository.FetchFileByID(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNotFound
	}

	// Blob delete comes first. If it fails the record survives, stays
	// discoverable and the delete can be retried.
	if err = fs.blobs.Delete(ctx, f.StorageName); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBlobDelete, err)
	}

	if err = fs.fileRepository.DeleteFileByID(ctx, id); err != nil {
		return err
	}

	fs.publish(http.MethodDelete, f)
	fs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}

func (fs *FileService) publish(method string, f *domain.File) {
	e := mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Method:  method,
		FileID:  f.UUID.String(),
		Payload: file.ToResponseFile(*f),
	}

	select {
	case fs.rmq.GetInputChan() <- e:
	default:
		// a full publisher buffer must not stall the request path
		fs.mCounter.WithLabelValues("mq_events_dropped_total").Inc()
	}
}

// genStorageName: "<unix-millis>-<random-suffix><normalized-ext>"
func genStorageName(originalName, mimeType string) string {
	return fmt.Sprintf(
		"%d-%s%s",
		time.Now().UnixMilli(),
		randomSuffix(suffixLen),
		normalizeExt(originalName, mimeType),
	)
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = suffixCharset[int(b[i])%len(suffixCharset)]
	}

	return string(b)
}

// normalizeExt folds the original extension to ASCII [a-z0-9.], falling back
// to the declared MIME type, then ".bin".
func normalizeExt(originalName, mimeType string) string {
	clean := strings.ReplaceAll(strings.TrimSpace(originalName), "\\", "/")
	ext := path.Ext(path.Base(clean))

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	ext, _, _ = transform.String(t, ext)

	ext = extSafeRe.ReplaceAllString(strings.ToLower(ext), "")
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if len(ext) > maxExtLen+1 {
		ext = ""
	}
	if ext == "" || ext == "." {
		if exts, _ := mime.ExtensionsByType(mimeType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	if ext == "" || ext == "." {
		ext = ".bin"
	}

	return ext
}

func contentTypeOf(in *multipart.FileHeader) string {
	if ct := in.Header.Get("Content-Type"); ct != "" {
		return ct
	}

	return "application/octet-stream"
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
