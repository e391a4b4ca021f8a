package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithylogging "github.com/aws/smithy-go/logging"
	"github.com/google/uuid"

	"github.com/arabianblog/backend/internal/config"
)

// S3Store persists blobs in S3-compatible object storage. Images and
// audio live in separate buckets, so the resource classification
// recorded at put time is required again to delete.
type S3Store struct {
	client        *s3.Client
	imagesBucket  string
	audioBucket   string
	endpoint      string
	publicBaseURL string
}

func NewS3Store(cfg *config.Config) (*S3Store, error) {
	client, err := buildClient(cfg.MediaS3Endpoint, cfg.MediaS3Region, cfg.MediaS3AccessKeyID, cfg.MediaS3SecretAccessKey, cfg.MediaS3UsePathStyle)
	if err != nil {
		return nil, err
	}
	return &S3Store{
		client:        client,
		imagesBucket:  cfg.MediaImagesBucket,
		audioBucket:   cfg.MediaAudioBucket,
		endpoint:      strings.TrimRight(cfg.MediaS3Endpoint, "/"),
		publicBaseURL: strings.TrimRight(cfg.MediaS3PublicBaseURL, "/"),
	}, nil
}

func buildClient(endpoint, region, key, secret string, pathStyle bool) (*s3.Client, error) {
	resolver := awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
		func(service, rgn string, options ...interface{}) (aws.Endpoint, error) {
			if endpoint != "" {
				return aws.Endpoint{URL: endpoint, SigningRegion: region}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}))
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		resolver,
		awsconfig.WithLogger(smithylogging.NewStandardLogger(nil)),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = pathStyle
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
	})
	return client, nil
}

func (s *S3Store) bucketFor(resource Resource) string {
	if resource == ResourceAudio {
		return s.audioBucket
	}
	return s.imagesBucket
}

// Put uploads data under a namespaced uuid key in the bucket matching
// the payload's resource classification
func (s *S3Store) Put(ctx context.Context, data []byte, mimeType, namespace string) (Locator, error) {
	if len(data) == 0 {
		return Locator{}, fmt.Errorf("%w: empty file", ErrInvalidPayload)
	}
	resource, ok := ResourceForMIME(mimeType)
	if !ok {
		return Locator{}, fmt.Errorf("%w: unsupported content type %s", ErrInvalidPayload, mimeType)
	}

	bucket := s.bucketFor(resource)
	key := fmt.Sprintf("%s/%s%s", namespace, uuid.New().String(), ExtensionForMIME(mimeType))

	uploader := manager.NewUploader(s.client)
	in := &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &mimeType,
		ACL:         s3types.ObjectCannedACLPublicRead,
	}
	if _, err := uploader.Upload(ctx, in, func(u *manager.Uploader) { u.PartSize = 10 * 1024 * 1024 }); err != nil {
		return Locator{}, err
	}

	return Locator{
		Kind:      KindRemote,
		Resource:  resource,
		PublicURL: s.objectURL(bucket, key),
		DeleteKey: key,
	}, nil
}

// Delete removes the object. S3 treats deleting a missing key as
// success, which matches the idempotent delete contract.
func (s *S3Store) Delete(ctx context.Context, loc Locator) error {
	if loc.IsZero() {
		return nil
	}
	bucket := s.bucketFor(loc.Resource)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &loc.DeleteKey,
	})
	return err
}

// Exists reports whether the object behind the locator is still present
func (s *S3Store) Exists(ctx context.Context, loc Locator) (bool, error) {
	if loc.IsZero() {
		return false, nil
	}
	bucket := s.bucketFor(loc.Resource)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &bucket,
		Key:    &loc.DeleteKey,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "NotFound", "NoSuchKey":
				return false, nil
			}
		}
		return false, err
	}
	return true, nil
}

func (s *S3Store) objectURL(bucket, key string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", s.publicBaseURL, url.PathEscape(key))
	}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, bucket, url.PathEscape(key))
}
