// Package media turns image sources typed by the user into upload parts.
// A source is either a local file path or an s3://bucket/key URL.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/filex"
)

var ErrBadSource = errors.New("bad image source")

// S3Config points the loader at S3 or an S3-compatible store such as
// MinIO. Empty keys fall back to the default AWS credential chain.
type S3Config struct {
	Region    string `json:"region" yaml:"region"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// seams for tests
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig
	newS3Client          = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type Loader struct {
	cfg   S3Config
	limit int64

	mu sync.Mutex
	s3 objectGetter
}

// NewLoader builds a loader. The S3 client is created on first use.
func NewLoader(cfg S3Config) *Loader {
	return &Loader{cfg: cfg, limit: filex.MaxUploadSize}
}

// Load reads one image source.
func (l *Loader) Load(ctx context.Context, source string) (client.Upload, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return client.Upload{}, fmt.Errorf("%w: empty", ErrBadSource)
	}
	if strings.HasPrefix(source, "s3://") {
		return l.loadS3(ctx, source)
	}

	name, data, err := filex.ReadUpload(source, l.limit)
	if err != nil {
		return client.Upload{}, err
	}
	return client.Upload{Filename: name, Content: data}, nil
}

// LoadAll reads sources in order, stopping at the first failure.
func (l *Loader) LoadAll(ctx context.Context, sources []string) ([]client.Upload, error) {
	out := make([]client.Upload, 0, len(sources))
	for _, src := range sources {
		up, err := l.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		out = append(out, up)
	}
	return out, nil
}

// LoadOptional is Load for an optional source; "" yields nil.
func (l *Loader) LoadOptional(ctx context.Context, source string) (*client.Upload, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}
	up, err := l.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	return &up, nil
}

func parseS3(source string) (bucket, key string, err error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrBadSource, source, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s: want s3://bucket/key", ErrBadSource, source)
	}
	return bucket, key, nil
}

func (l *Loader) client(ctx context.Context) (objectGetter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.s3 != nil {
		return l.s3, nil
	}

	var opts []func(*config.LoadOptions) error
	if l.cfg.Region != "" {
		opts = append(opts, config.WithRegion(l.cfg.Region))
	}
	if l.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(l.cfg.AccessKey, l.cfg.SecretKey, "")))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	l.s3 = newS3Client(cfg, func(o *s3.Options) {
		if l.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(l.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return l.s3, nil
}

func (l *Loader) loadS3(ctx context.Context, source string) (client.Upload, error) {
	bucket, key, err := parseS3(source)
	if err != nil {
		return client.Upload{}, err
	}
	c, err := l.client(ctx)
	if err != nil {
		return client.Upload{}, err
	}

	out, err := c.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return client.Upload{}, fmt.Errorf("get %s: %w", source, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, l.limit+1))
	if err != nil {
		return client.Upload{}, fmt.Errorf("read %s: %w", source, err)
	}
	if int64(len(data)) > l.limit {
		return client.Upload{}, fmt.Errorf("%s: %w", source, filex.ErrTooLarge)
	}
	return client.Upload{Filename: path.Base(key), Content: data}, nil
}
