package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in  *s3.PutObjectInput
	err error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func withSeams(t *testing.T, fake *fakePutter, loadErr error) *s3.Options {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	applied := &s3.Options{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{Region: lo.Region}, loadErr
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		for _, fn := range optFns {
			fn(applied)
		}
		return fake
	}
	return applied
}

func TestS3Archiver_Archive(t *testing.T) {
	fake := &fakePutter{}
	applied := withSeams(t, fake, nil)

	a, err := NewS3Archiver(context.Background(), S3Config{
		Bucket: "promises", Region: "us-east-1", BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey: "minio", SecretKey: "minio", Prefix: "/dev/",
	})
	require.NoError(t, err)
	require.NotNil(t, applied.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *applied.BaseEndpoint)
	assert.True(t, applied.UsePathStyle)

	a.now = func() time.Time { return time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC) }

	key, err := a.Archive(context.Background(), Record{
		Replaced:      models.Promise{ID: 12, Name: "run", Status: models.StatusMissed},
		ReplacementID: 13,
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^dev/reframed/2026/03/07/12-[0-9a-f-]{36}\.json$`), key)

	require.NotNil(t, fake.in)
	assert.Equal(t, "promises", *fake.in.Bucket)
	assert.Equal(t, key, *fake.in.Key)

	body, err := io.ReadAll(fake.in.Body)
	require.NoError(t, err)
	var got Record
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, int64(12), got.Replaced.ID)
	assert.Equal(t, int64(13), got.ReplacementID)
	assert.Equal(t, a.now().Unix(), got.ArchivedAt)
}

func TestS3Archiver_PutError(t *testing.T) {
	fake := &fakePutter{err: errors.New("denied")}
	withSeams(t, fake, nil)

	a, err := NewS3Archiver(context.Background(), S3Config{Bucket: "b", Region: "us-east-1"})
	require.NoError(t, err)

	_, err = a.Archive(context.Background(), Record{})
	assert.ErrorContains(t, err, "put object: denied")
}

func TestNewS3Archiver_ConfigError(t *testing.T) {
	withSeams(t, &fakePutter{}, errors.New("no creds"))

	_, err := NewS3Archiver(context.Background(), S3Config{Region: "us-east-1"})
	assert.ErrorContains(t, err, "load aws config: no creds")
}

func TestNop(t *testing.T) {
	var a Archiver = Nop{}
	key, err := a.Archive(context.Background(), Record{})
	assert.NoError(t, err)
	assert.Empty(t, key)
}
