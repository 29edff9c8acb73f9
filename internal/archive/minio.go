package archive

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultEndpoint = "s3.amazonaws.com"

// S3Config locates the archive bucket.
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// MinioStore implements Store on any S3-compatible service.
type MinioStore struct {
	client *minio.Client
	bucket string
}

var _ Store = &MinioStore{}

// NewMinioStore connects to the bucket described by cfg. No request is made
// until the first call.
func NewMinioStore(cfg S3Config) (*MinioStore, error) {
	host, secure, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio.New: %w", err)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

// parseEndpoint accepts "host[:port]" or a URL. Plain http turns TLS off.
func parseEndpoint(endpoint string) (host string, secure bool, err error) {
	if endpoint == "" {
		return defaultEndpoint, true, nil
	}
	if !strings.Contains(endpoint, "://") {
		return strings.TrimRight(endpoint, "/"), true, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("parsing s3 endpoint %q: %w", endpoint, err)
	}
	switch u.Scheme {
	case "https":
		secure = true
	case "http":
	default:
		return "", false, fmt.Errorf("s3 endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("s3 endpoint %q has no host", endpoint)
	}
	if u.Path != "" && u.Path != "/" {
		return "", false, fmt.Errorf("s3 endpoint %q must not contain a path", endpoint)
	}
	return u.Host, secure, nil
}

// List returns every object under prefix.
func (s *MinioStore) List(ctx context.Context, prefix string) ([]Object, error) {
	var out []Object
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("listing %s/%s: %w", s.bucket, prefix, obj.Err)
		}
		out = append(out, Object{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	return out, nil
}

// DeleteBatch removes keys with multi-object delete requests. Keys the store
// rejects are reported in Failed with the provider's code and message.
func (s *MinioStore) DeleteBatch(ctx context.Context, keys []string) (DeleteResult, error) {
	objs := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		objs <- minio.ObjectInfo{Key: k}
	}
	close(objs)

	var res DeleteResult
	for r := range s.client.RemoveObjectsWithResult(ctx, s.bucket, objs, minio.RemoveObjectsOptions{}) {
		if r.Err == nil {
			res.Deleted = append(res.Deleted, r.ObjectName)
			continue
		}
		f := DeleteFailure{Key: r.ObjectName, Message: r.Err.Error()}
		if resp := minio.ToErrorResponse(r.Err); resp.Code != "" {
			f.Code, f.Message = resp.Code, resp.Message
		}
		res.Failed = append(res.Failed, f)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// Put uploads r as bucket/key. An empty bucket means the store's bucket.
func (s *MinioStore) Put(ctx context.Context, bucket, key string, r io.Reader, size int64) error {
	if bucket == "" {
		bucket = s.bucket
	}
	_, err := s.client.PutObject(ctx, bucket, key, r, size, putOptions(size))
	if err != nil {
		return fmt.Errorf("uploading %s/%s: %w", bucket, key, err)
	}
	return nil
}

// unknownSizePartSize bounds the part buffer of streams without a length.
// minio-go would otherwise size parts for a 5 TiB object.
const unknownSizePartSize = 64 << 20

func putOptions(size int64) minio.PutObjectOptions {
	opts := minio.PutObjectOptions{ContentType: "application/octet-stream"}
	if size < 0 {
		opts.PartSize = unknownSizePartSize
	}
	return opts
}

// UploadFile uploads the local file at path as key. progress, when set, is
// read as bytes are sent.
func (s *MinioStore) UploadFile(ctx context.Context, key, path string, progress io.Reader) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, f, fi.Size(), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		Progress:    progress,
	})
	if err != nil {
		return 0, fmt.Errorf("uploading %s to %s/%s: %w", path, s.bucket, key, err)
	}
	return info.Size, nil
}
