package probe

import (
	"bytes"
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// The no-region probe goes through the original global endpoint, which the
// SDK addresses as us-east-1.
const fallbackRegion = "us-east-1"

// AnonLister implements Lister with unsigned aws-sdk-go-v2 calls. Clients
// are built lazily, one per region, and cached for the run.
type AnonLister struct {
	mu      sync.RWMutex
	clients map[string]*s3.Client
}

var _ Lister = (*AnonLister)(nil)

func NewAnonLister() *AnonLister {
	return &AnonLister{clients: make(map[string]*s3.Client)}
}

func (l *AnonLister) client(region string) *s3.Client {
	if region == "" {
		region = fallbackRegion
	}

	l.mu.RLock()
	c, ok := l.clients[region]
	l.mu.RUnlock()
	if ok {
		return c
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.clients[region]; ok {
		return c
	}
	c = s3.New(s3.Options{
		Region:      region,
		Credentials: aws.AnonymousCredentials{},
	})
	l.clients[region] = c
	return c
}

// List runs an anonymous ListObjectsV2 and returns the key count of the
// first page.
func (l *AnonLister) List(ctx context.Context, bucket, region string) (int, error) {
	out, err := l.client(region).ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return 0, err
	}
	return int(aws.ToInt32(out.KeyCount)), nil
}

// Put uploads the write-probe marker anonymously.
func (l *AnonLister) Put(ctx context.Context, bucket, region, key string, payload []byte) error {
	_, err := l.client(region).PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(payload),
	})
	return err
}

// Delete removes the write-probe marker anonymously.
func (l *AnonLister) Delete(ctx context.Context, bucket, region, key string) error {
	_, err := l.client(region).DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}
