package notify

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/duoledger/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		f.body = string(b)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3MailDrop_Send(t *testing.T) {
	fp := &fakePutter{}
	n := &S3MailDrop{client: fp, bucket: "mail-drop", from: "noreply@x.io",
		now: func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }}

	require.NoError(t, n.Send(context.Background(), Message{To: "ann@x.io", Subject: "Verify", Body: "link"}))

	require.NotNil(t, fp.in)
	assert.Equal(t, "mail-drop", aws.ToString(fp.in.Bucket))
	assert.Regexp(t, regexp.MustCompile(`^outbox/2026/05/01/[0-9a-f-]{36}\.eml$`), aws.ToString(fp.in.Key))
	assert.Equal(t, "message/rfc822", aws.ToString(fp.in.ContentType))
	assert.Contains(t, fp.body, "To: ann@x.io\r\n")
}

func TestS3MailDrop_PutError(t *testing.T) {
	n := &S3MailDrop{client: &fakePutter{err: errors.New("access denied")}, bucket: "b", now: time.Now}
	assert.ErrorContains(t, n.Send(context.Background(), Message{}), "access denied")
}

func TestNewS3MailDrop_WiresEndpoint(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	var opts s3.Options
	fp := &fakePutter{}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		assert.Equal(t, "eu-west-1", cfg.Region)
		for _, fn := range optFns {
			fn(&opts)
		}
		return fp
	}

	c := &config.Config{S3Region: "eu-west-1", S3Bucket: "drop", S3BaseEndpoint: "http://minio:9000/",
		S3AccessKey: "ak", S3SecretKey: "sk"}
	n, err := NewS3MailDrop(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, "http://minio:9000/", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
	assert.Same(t, fp, n.client)
	assert.Equal(t, "drop", n.bucket)
}

func TestNewS3MailDrop_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3MailDrop(context.Background(), &config.Config{})
	assert.ErrorContains(t, err, "no config")
}
