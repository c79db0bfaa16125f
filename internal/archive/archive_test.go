package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/assert/v2"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestObjectKey(t *testing.T) {
	at := time.Date(2026, 10, 14, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "news/wind/2026/10/14/1791947045.json", ObjectKey(sector.Wind, at))
}

func TestArchiveUploadsJSON(t *testing.T) {
	fake := &fakePutter{}
	a := newS3Archiver(fake, "energy-news")
	a.now = func() time.Time { return time.Unix(1791947045, 0) }

	key, err := a.Archive(context.Background(), sector.SMR, []models.NewsItem{{ID: "smr-0-x", Sector: sector.SMR, Title: "t", Citations: []models.Citation{}}})
	assert.Equal(t, nil, err)
	assert.Equal(t, "news/smr/2026/10/14/1791947045.json", key)
	assert.Equal(t, "energy-news", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))

	var items []models.NewsItem
	assert.Equal(t, nil, json.Unmarshal(fake.body, &items))
	assert.Equal(t, "smr-0-x", items[0].ID)
}

func TestArchiveUploadError(t *testing.T) {
	a := newS3Archiver(&fakePutter{err: errors.New("denied")}, "b")
	_, err := a.Archive(context.Background(), sector.Wind, nil)
	if err == nil {
		t.Fatal("expected upload error")
	}
}
