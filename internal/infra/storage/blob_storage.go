package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Registered bucket schemes: file://, mem://, gs://, s3://
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	keyPrefix     string
	maxSize       int64
	allowedTypes  []string
	timeout       time.Duration
	logger        *slog.Logger
}

// Params holds dependencies for the document storage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and closes it on shutdown.
func New(params Params) (service.DocumentStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage.bucketUrl is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", cfg.BucketURL)
	}

	params.Lc.Append(fx.StopHook(func() error {
		return errors.WithStack(bucket.Close())
	}))

	params.Logger.Info("Document storage initialized", slog.String("bucket", cfg.BucketURL))

	return NewBlobStorage(bucket, cfg, params.Logger), nil
}

// NewBlobStorage wraps an open bucket
func NewBlobStorage(bucket *blob.Bucket, cfg *config.StorageConfig, logger *slog.Logger) service.DocumentStorage {
	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		keyPrefix:     strings.Trim(cfg.KeyPrefix, "/"),
		maxSize:       cfg.MaxSizeBytes,
		allowedTypes:  cfg.AllowedTypes,
		timeout:       cfg.UploadTimeout,
		logger:        logger,
	}
}

// Upload stores the document and returns its public URL. The content type is
// sniffed from the bytes; the client-supplied filename is only logged.
func (s *blobStorage) Upload(ctx context.Context, upload *service.DocumentUpload) (string, error) {
	if upload == nil || upload.Content == nil {
		return "", domainerrors.ErrDocumentRejected.WithDetails("file is required")
	}
	if s.maxSize > 0 && upload.Size > s.maxSize {
		return "", s.tooLarge()
	}

	data, err := s.readLimited(upload.Content)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", domainerrors.ErrDocumentRejected.WithDetails("file is empty")
	}

	mtype := mimetype.Detect(data)
	if !s.isAllowed(mtype) {
		return "", domainerrors.ErrDocumentRejected.WithDetails("unsupported content type " + mtype.String())
	}

	key := s.objectKey(mtype.Extension())

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err = s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType: mtype.String(),
	})
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrDependencyUnavailable, err.Error())
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Document uploaded",
		slog.String("key", key),
		slog.String("filename", upload.Filename),
		slog.String("content_type", mtype.String()),
		slog.Int("size", len(data)),
	)

	return s.publicURL(key), nil
}

func (s *blobStorage) readLimited(r io.Reader) ([]byte, error) {
	if s.maxSize <= 0 {
		data, err := io.ReadAll(r)

		return data, errors.WithStack(err)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if n > s.maxSize {
		return nil, s.tooLarge()
	}

	return buf.Bytes(), nil
}

func (s *blobStorage) tooLarge() error {
	return domainerrors.ErrDocumentTooLarge.WithDetails("maximum size is " + util.FormatBytes(s.maxSize))
}

func (s *blobStorage) isAllowed(mtype *mimetype.MIME) bool {
	if len(s.allowedTypes) == 0 {
		return true
	}

	for m := mtype; m != nil; m = m.Parent() {
		if containsMIME(s.allowedTypes, m) {
			return true
		}
	}

	return false
}

func containsMIME(allowed []string, m *mimetype.MIME) bool {
	for _, a := range allowed {
		if m.Is(a) {
			return true
		}
	}

	return false
}

func (s *blobStorage) objectKey(ext string) string {
	name := uuid.Must(uuid.NewV7()).String() + ext
	if s.keyPrefix == "" {
		return name
	}

	return path.Join(s.keyPrefix, name)
}

func (s *blobStorage) publicURL(key string) string {
	if s.publicBaseURL == "" {
		return "/" + key
	}

	return s.publicBaseURL + "/" + key
}
