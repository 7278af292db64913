package publisher

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lm16688/AI-DAILY/internal/news"
)

// objectPutter 是 S3 客户端的最小子集，便于测试替换
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher 将最新结果镜像到 <prefix>/latest.json 与 <prefix>/archive/<date>.json
type S3Publisher struct {
	client objectPutter
	bucket string
	prefix string
}

// NewS3Publisher 使用默认 AWS 凭证链；region 为空时沿用环境配置
func NewS3Publisher(ctx context.Context, bucket, region, prefix string) (*S3Publisher, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}
	return newS3Publisher(s3.NewFromConfig(awsCfg), bucket, prefix), nil
}

func newS3Publisher(client objectPutter, bucket, prefix string) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, prefix: prefix}
}

func (p *S3Publisher) Name() string { return "s3" }

func (p *S3Publisher) Publish(ctx context.Context, d *news.Digest) error {
	data, err := Encode(d)
	if err != nil {
		return fmt.Errorf("encode digest: %w", err)
	}
	keys := []string{path.Join(p.prefix, "latest.json")}
	if d.Meta.Date != "" {
		keys = append(keys, path.Join(p.prefix, "archive", d.Meta.Date+".json"))
	}
	for _, key := range keys {
		_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:       aws.String(p.bucket),
			Key:          aws.String(key),
			Body:         bytes.NewReader(data),
			ContentType:  aws.String("application/json; charset=utf-8"),
			CacheControl: aws.String("no-cache"),
		})
		if err != nil {
			return fmt.Errorf("s3 put %s: %w", key, err)
		}
	}
	return nil
}
