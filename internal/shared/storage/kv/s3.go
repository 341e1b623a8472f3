package kv

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"

	"careercraft-backend/internal/shared/util"
)

// objectAPI is the subset of the S3 client the store needs.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps each slot as a JSON object in a bucket.
type S3Store struct {
	client objectAPI
	bucket string
	prefix string
}

// NewS3 loads the default AWS config and builds a bucket-backed store.
func NewS3(ctx context.Context, region, bucket, prefix string) (*S3Store, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return newS3(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func newS3(client objectAPI, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: strings.Trim(strings.TrimSpace(prefix), "/")}
}

func (s *S3Store) Get(ctx context.Context, owner, key string) (string, error) {
	objectKey, err := s.objectKey(owner, key)
	if err != nil {
		return "", err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var missing *s3types.NoSuchKey
		if errors.As(err, &missing) {
			return "", ErrNotFound
		}
		return "", errors.Wrapf(err, "s3 get object bucket=%s key=%s", s.bucket, objectKey)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", errors.Wrap(err, "read s3 body")
	}
	return string(data), nil
}

func (s *S3Store) Put(ctx context.Context, owner, key, value string) error {
	objectKey, err := s.objectKey(owner, key)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(objectKey),
		Body:                 strings.NewReader(value),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	return errors.Wrapf(err, "s3 put object bucket=%s key=%s", s.bucket, objectKey)
}

func (s *S3Store) Delete(ctx context.Context, owner, key string) error {
	objectKey, err := s.objectKey(owner, key)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return errors.Wrapf(err, "s3 delete object bucket=%s key=%s", s.bucket, objectKey)
}

func (s *S3Store) objectKey(owner, key string) (string, error) {
	if err := validate(owner, key); err != nil {
		return "", err
	}
	name, err := util.SanitizeFileName(key)
	if err != nil {
		return "", errors.Wrap(err, "slot key")
	}
	return applyPrefix(s.prefix, path.Join(util.HashUserKey(owner), name+".json")), nil
}

func applyPrefix(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	key = strings.TrimLeft(key, "/")
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	default:
		return prefix + "/" + key
	}
}

var _ Store = (*S3Store)(nil)
