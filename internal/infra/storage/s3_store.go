package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
)

// ObjectPutter é o pedaço do cliente S3 que usamos.
type ObjectPutter interface {
	PutObject(
		ctx context.Context,
		in *s3.PutObjectInput,
		opts ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type S3Store struct {
	client  ObjectPutter
	bucket  string
	baseURL string
	newID   func() string
}

// NewS3Client aceita endpoint próprio (MinIO, R2, Supabase storage) com
// path-style.
func NewS3Client(cfg S3Config) *s3.Client {
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}

func NewS3Store(client ObjectPutter, cfg S3Config) *S3Store {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		if cfg.Endpoint != "" {
			base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: base,
		newID:   func() string { return uuid.NewString() },
	}
}

func (s *S3Store) SavePhoto(
	ctx context.Context,
	appointmentID string,
	kind domain.PhotoType,
	up domain.Upload,
) (domain.StoredFile, error) {

	data, err := NormalizePhoto(up.Body)
	if err != nil {
		return domain.StoredFile{}, err
	}

	key := path.Join("appointments", appointmentID, fmt.Sprintf("%s-%s.webp", kind, s.newID()))
	return s.put(ctx, key, "image/webp", data)
}

var receiptTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
}

// SaveReceipt guarda o comprovante sem conversão.
func (s *S3Store) SaveReceipt(
	ctx context.Context,
	appointmentID string,
	up domain.Upload,
) (domain.StoredFile, error) {

	data, err := readLimited(up.Body)
	if err != nil {
		return domain.StoredFile{}, err
	}

	ct := http.DetectContentType(data)
	ext, ok := receiptTypes[ct]
	if !ok {
		return domain.StoredFile{}, httperr.ErrBusiness("invalid_receipt_type")
	}

	key := path.Join("appointments", appointmentID, "receipt-"+s.newID()+ext)
	return s.put(ctx, key, ct, data)
}

func (s *S3Store) put(ctx context.Context, key, contentType string, data []byte) (domain.StoredFile, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("upload %s: %w", key, err)
	}

	return domain.StoredFile{Key: key, URL: s.baseURL + "/" + key}, nil
}

// DisabledStore responde quando não há bucket configurado.
type DisabledStore struct{}

func (DisabledStore) SavePhoto(context.Context, string, domain.PhotoType, domain.Upload) (domain.StoredFile, error) {
	return domain.StoredFile{}, httperr.ErrBusiness("storage_unavailable")
}

func (DisabledStore) SaveReceipt(context.Context, string, domain.Upload) (domain.StoredFile, error) {
	return domain.StoredFile{}, httperr.ErrBusiness("storage_unavailable")
}

var (
	_ domain.FileStore = (*S3Store)(nil)
	_ domain.FileStore = DisabledStore{}
)
