package s3client

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"itou-backend/config"
)

type Provider interface {
	MakeBucket(ctx context.Context) error
	PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetObjectURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

var Instance Provider

type s3client struct {
	minioClient *minio.Client
}

func (s s3client) MakeBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.ProofBucket
	location := "us-east-1"
	exists, err := s.minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = s.minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return err
	}
	return nil
}

func (s s3client) PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := s.minioClient.PutObject(ctx, config.Conf.S3.ProofBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s s3client) GetObjectURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := s.minioClient.PresignedGetObject(ctx, config.Conf.S3.ProofBucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func NewClient() (Provider, error) {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKey, config.Conf.S3.SecretKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &s3client{minioClient: minioClient}, nil
}
