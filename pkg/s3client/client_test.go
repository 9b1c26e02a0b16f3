package s3client_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vectorwriter/pkg/s3client"
)

// MockS3Client is a mock implementation of s3client.API.
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires bucket and region", func(t *testing.T) {
		t.Parallel()
		_, err := s3client.New(context.Background(), s3client.Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, s3client.ErrInvalidConfig)

		_, err = s3client.New(context.Background(), s3client.Config{Bucket: "b"})
		assert.ErrorIs(t, err, s3client.ErrInvalidConfig)
	})

	t.Run("static credentials and custom endpoint", func(t *testing.T) {
		t.Parallel()
		client, err := s3client.New(context.Background(), s3client.Config{
			Bucket:         "embeddings",
			Region:         "eu-west-1",
			AccessKeyID:    "AKIDEXAMPLE",
			SecretKey:      "secret",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		})
		require.NoError(t, err)

		opts := client.Options()
		assert.Equal(t, "eu-west-1", opts.Region)
		assert.True(t, opts.UsePathStyle)
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://localhost:9000", *opts.BaseEndpoint)
	})

	t.Run("client option applied", func(t *testing.T) {
		t.Parallel()
		client, err := s3client.New(context.Background(),
			s3client.Config{Bucket: "b", Region: "us-east-1", AccessKeyID: "a", SecretKey: "s"},
			s3client.WithClientOption(func(o *s3.Options) { o.UsePathStyle = true }),
		)
		require.NoError(t, err)
		assert.True(t, client.Options().UsePathStyle)
	})
}

func TestJoinKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc.json", s3client.JoinKey("", "abc.json"))
	assert.Equal(t, "datasets/abc.json", s3client.JoinKey("datasets", "abc.json"))
	assert.Equal(t, "datasets/abc.json", s3client.JoinKey("/datasets/", "/abc.json"))
}

func TestReadObject(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		m := &MockS3Client{}
		m.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return *in.Bucket == "b" && *in.Key == "k.json"
		}), mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader(`[1,2]`)),
		}, nil)

		data, err := s3client.ReadObject(context.Background(), m, "b", "k.json", 0)
		require.NoError(t, err)
		assert.Equal(t, `[1,2]`, string(data))
		m.AssertExpectations(t)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		m := &MockS3Client{}
		m.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader(strings.Repeat("x", 11))),
		}, nil)

		_, err := s3client.ReadObject(context.Background(), m, "b", "k", 10)
		assert.ErrorIs(t, err, s3client.ErrObjectTooLarge)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		m := &MockS3Client{}
		m.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{Message: aws.String("gone")})

		_, err := s3client.ReadObject(context.Background(), m, "b", "k", 0)
		assert.ErrorIs(t, err, s3client.ErrObjectNotFound)
	})
}

func TestWriteObject(t *testing.T) {
	t.Parallel()

	m := &MockS3Client{}
	m.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return *in.Bucket == "b" &&
			*in.Key == "runs/1.json" &&
			*in.ContentType == "application/json" &&
			*in.ContentLength == 2 &&
			string(body) == "{}"
	}), mock.Anything).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, s3client.WriteObject(context.Background(), m, "b", "runs/1.json", []byte("{}"), "application/json"))
	m.AssertExpectations(t)

	failing := &MockS3Client{}
	failing.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "no"})
	err := s3client.WriteObject(context.Background(), failing, "b", "k", nil, "")
	assert.ErrorIs(t, err, s3client.ErrAccessDenied)
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"deadline", context.DeadlineExceeded, s3client.ErrOperationTimeout},
		{"canceled", context.Canceled, s3client.ErrOperationCanceled},
		{"canceled keeps cause", context.Canceled, context.Canceled},
		{"deadline keeps cause", context.DeadlineExceeded, context.DeadlineExceeded},
		{"no such key", &types.NoSuchKey{}, s3client.ErrObjectNotFound},
		{"no such bucket", &types.NoSuchBucket{}, s3client.ErrBucketNotFound},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, s3client.ErrAccessDenied},
		{"request timeout", &smithy.GenericAPIError{Code: "RequestTimeout"}, s3client.ErrRequestTimeout},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, s3client.ErrServiceUnavailable},
		{"not found code", &smithy.GenericAPIError{Code: "NotFound"}, s3client.ErrObjectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, s3client.ClassifyError(tt.err, "op"), tt.want)
		})
	}

	assert.NoError(t, s3client.ClassifyError(nil, "op"))

	other := errors.New("boom")
	err := s3client.ClassifyError(other, "get object")
	assert.ErrorIs(t, err, other)
	assert.Equal(t, "get object operation failed: boom", err.Error())

	err = s3client.ClassifyError(&smithy.GenericAPIError{Code: "Weird", Message: "x"}, "put object")
	assert.Contains(t, err.Error(), "code: Weird")
}
