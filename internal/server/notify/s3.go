package notify

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/duoledger/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3MailDrop stores each message as an .eml object under outbox/ in a
// bucket. Delivery is left to whatever consumes the bucket.
type S3MailDrop struct {
	client objectPutter
	bucket string
	from   string
	now    func() time.Time
}

// NewS3MailDrop builds an S3 client from static credentials and a custom
// endpoint, so MinIO works as well as AWS.
func NewS3MailDrop(ctx context.Context, c *config.Config) (*S3MailDrop, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(c.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3AccessKey,
			c.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3MailDrop{client: client, bucket: c.S3Bucket, from: c.MailFrom, now: time.Now}, nil
}

func (n *S3MailDrop) objectKey(t time.Time) string {
	return fmt.Sprintf("outbox/%d/%02d/%02d/%s.eml", t.Year(), t.Month(), t.Day(), uuid.NewString())
}

func (n *S3MailDrop) Send(ctx context.Context, m Message) error {
	t := n.now().UTC()

	_, err := n.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(n.bucket),
		Key:         aws.String(n.objectKey(t)),
		Body:        bytes.NewReader(m.RFC822(n.from, t)),
		ContentType: aws.String("message/rfc822"),
	})
	if err != nil {
		return fmt.Errorf("s3 put: %w", err)
	}
	return nil
}
