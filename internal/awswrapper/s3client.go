package awswrapper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"

	"storefront/internal/model"
)

type S3ClientConfig struct {
	AccessKey  string
	SecretKey  string
	Region     string
	BucketName string
}

func (cfg *S3ClientConfig) Validate() error {
	if cfg.Region == "" || cfg.BucketName == "" {
		return errors.New("AWS_S3_REGION and AWS_S3_DEFAULT_BUCKET_NAME must be set")
	}
	return nil
}

type S3Client struct {
	svc        s3iface.S3API
	bucketName string
}

func (cfg *S3ClientConfig) NewS3Client() (*S3Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating aws session")
	}

	return &S3Client{svc: s3.New(sess), bucketName: cfg.BucketName}, nil
}

// SnapshotKey names the object a snapshot taken at t is written to.
func SnapshotKey(t time.Time) string {
	return fmt.Sprintf("products-%d.jsonl", t.Unix())
}

// EncodeJSONLines writes one product per line.
func EncodeJSONLines(products []*model.Product) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range products {
		if err := enc.Encode(p); err != nil {
			return nil, errors.Wrap(err, "encoding product")
		}
	}
	return buf.Bytes(), nil
}

func (client *S3Client) PutProducts(ctx context.Context, objectKey string, products []*model.Product) error {
	body, err := EncodeJSONLines(products)
	if err != nil {
		return err
	}

	_, err = client.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(client.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return errors.Wrapf(err, "putting s3://%s/%s", client.bucketName, objectKey)
	}
	return nil
}
