package s3

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Options struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	URLTTL       time.Duration
}

// ImagePresigner issues time-limited GET URLs for images kept in the bucket.
type ImagePresigner struct {
	presignClient *s3.PresignClient
	bucket        string
	ttl           time.Duration
}

func NewImagePresigner(ctx context.Context, opts Options) (*ImagePresigner, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return &ImagePresigner{
		presignClient: s3.NewPresignClient(client),
		bucket:        opts.Bucket,
		ttl:           opts.URLTTL,
	}, nil
}

func (p *ImagePresigner) PresignGetURL(ctx context.Context, objectKey string) (string, error) {
	request, err := p.presignClient.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(objectKey),
		},
		s3.WithPresignExpires(p.ttl),
	)
	if err != nil {
		return "", err
	}

	return request.URL, nil
}
