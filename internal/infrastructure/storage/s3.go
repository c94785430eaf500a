// Package storage implementa ports.ImageStore sobre S3 (AWS, MinIO o R2).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
	"github.com/jhoicas/wholesetail-admin-api/pkg/config"
)

var _ ports.ImageStore = (*S3Store)(nil)

// putObjectAPI subconjunto de *s3.Client usado por el store.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store sube imágenes y devuelve su URL pública.
type S3Store struct {
	client  putObjectAPI
	bucket  string
	baseURL string
	log     zerolog.Logger
}

// NewS3Store crea el cliente S3. Endpoint vacío usa el endpoint de AWS de la región.
func NewS3Store(ctx context.Context, cfg config.S3Config, log zerolog.Logger) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3Store(client, cfg, log), nil
}

func newS3Store(client putObjectAPI, cfg config.S3Config, log zerolog.Logger) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		log:     log.With().Str("component", "s3_store").Logger(),
	}
}

// Upload guarda la imagen en "<folder>/<uuid>.<ext>".
func (s *S3Store) Upload(ctx context.Context, img ports.Image, folder string) (string, error) {
	key := ObjectKey(folder, img.Extension)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentType:   aws.String(img.ContentType),
		ContentLength: aws.Int64(int64(len(img.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Int("bytes", len(img.Data)).Msg("imagen subida")
	return s.PublicURL(key), nil
}

// PublicURL devuelve la URL pública de un objeto.
func (s *S3Store) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

// ObjectKey genera la clave "<folder>/<uuid>.<ext>".
func ObjectKey(folder, ext string) string {
	name := uuid.New().String()
	if ext != "" {
		name += "." + ext
	}
	return path.Join(strings.Trim(folder, "/"), name)
}

// publicBaseURL: PublicBaseURL si está configurado; si no, path-style sobre el endpoint
// o virtual-hosted sobre AWS.
func publicBaseURL(cfg config.S3Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
