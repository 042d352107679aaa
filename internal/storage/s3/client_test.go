package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	headBucketErr   error
	createBucketErr error
	createdBucket   string

	put    *s3.PutObjectInput
	putErr error

	// pages are served in order, one per ListObjectsV2 call
	pages   [][]string
	listIn  []*s3.ListObjectsV2Input
	listErr error

	deleteErr error
	deleted   []string
}

func (f *fakeS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headBucketErr
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.createdBucket = aws.ToString(in.Bucket)
	return &s3.CreateBucketOutput{}, f.createBucketErr
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	return &s3.PutObjectOutput{}, f.putErr
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	page := len(f.listIn)
	f.listIn = append(f.listIn, in)

	out := &s3.ListObjectsV2Output{}
	if page >= len(f.pages) {
		return out, nil
	}
	for _, key := range f.pages[page] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if page+1 < len(f.pages) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(fmt.Sprintf("page-%d", page+1))
	}
	return out, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestNewClient_Bucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		api         *fakeS3
		wantCreated string
		wantErr     string
	}{
		{name: "exists", api: &fakeS3{}},
		{name: "created", api: &fakeS3{headBucketErr: &types.NotFound{}}, wantCreated: "captures"},
		{name: "head fails", api: &fakeS3{headBucketErr: errors.New("forbidden")}, wantErr: "failed to check bucket existence"},
		{name: "create fails", api: &fakeS3{headBucketErr: &types.NotFound{}, createBucketErr: errors.New("denied")}, wantErr: "failed to create bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := newClient(context.Background(), tt.api, "captures")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, c)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, tt.api.createdBucket)
		})
	}
}

func TestClient_Upload(t *testing.T) {
	t.Parallel()

	api := &fakeS3{}
	c, err := newClient(context.Background(), api, "captures")
	require.NoError(t, err)

	require.NoError(t, c.Upload(context.Background(), "enrollments/a/1.jpg", bytes.NewReader([]byte("jpeg")), 4, "image/jpeg"))
	assert.Equal(t, "captures", aws.ToString(api.put.Bucket))
	assert.Equal(t, "enrollments/a/1.jpg", aws.ToString(api.put.Key))
	assert.Equal(t, int64(4), aws.ToInt64(api.put.ContentLength))
	assert.Equal(t, "image/jpeg", aws.ToString(api.put.ContentType))

	require.NoError(t, c.Upload(context.Background(), "k", bytes.NewReader(nil), -1, "image/jpeg"))
	assert.Nil(t, api.put.ContentLength)

	api.putErr = errors.New("slow down")
	assert.ErrorContains(t, c.Upload(context.Background(), "k", bytes.NewReader(nil), 0, "image/jpeg"), "failed to upload object")
}

func TestClient_List(t *testing.T) {
	t.Parallel()

	api := &fakeS3{pages: [][]string{
		{"enrollments/a/1.jpg", "enrollments/a/2.jpg"},
		{"enrollments/a/3.jpg"},
	}}
	c, err := newClient(context.Background(), api, "captures")
	require.NoError(t, err)

	keys, err := c.List(context.Background(), "enrollments/a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"enrollments/a/1.jpg", "enrollments/a/2.jpg", "enrollments/a/3.jpg"}, keys)
	require.Len(t, api.listIn, 2)
	assert.Equal(t, "enrollments/a/", aws.ToString(api.listIn[0].Prefix))
	assert.Equal(t, "captures", aws.ToString(api.listIn[0].Bucket))
	assert.Equal(t, "page-1", aws.ToString(api.listIn[1].ContinuationToken))

	api.listErr = errors.New("throttled")
	_, err = c.List(context.Background(), "enrollments/a/")
	assert.ErrorContains(t, err, "failed to list objects")
}

func TestClient_Delete(t *testing.T) {
	t.Parallel()

	api := &fakeS3{}
	c, err := newClient(context.Background(), api, "captures")
	require.NoError(t, err)

	require.NoError(t, c.Delete(context.Background(), "enrollments/a/1.jpg"))
	assert.Equal(t, []string{"enrollments/a/1.jpg"}, api.deleted)

	api.deleteErr = errors.New("denied")
	assert.ErrorContains(t, c.Delete(context.Background(), "k"), "failed to delete object")
}

func TestOptions(t *testing.T) {
	t.Parallel()

	var o s3.Options
	clientOptions(Options{Endpoint: "http://localhost:4566"})(&o)
	assert.Equal(t, "http://localhost:4566", aws.ToString(o.BaseEndpoint))
	assert.True(t, o.UsePathStyle)

	var plain s3.Options
	clientOptions(Options{})(&plain)
	assert.Nil(t, plain.BaseEndpoint)
	assert.False(t, plain.UsePathStyle)

	var lo config.LoadOptions
	for _, fn := range loadOptions(Options{Region: "eu-central-1", AccessKey: "ak", SecretKey: "sk"}) {
		require.NoError(t, fn(&lo))
	}
	assert.Equal(t, "eu-central-1", lo.Region)
	require.NotNil(t, lo.Credentials)
	creds, err := lo.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ak", creds.AccessKeyID)

	lo = config.LoadOptions{}
	for _, fn := range loadOptions(Options{Region: "us-east-1"}) {
		require.NoError(t, fn(&lo))
	}
	assert.Nil(t, lo.Credentials)
}
