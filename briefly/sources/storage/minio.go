package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"briefly/briefly/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveClient keeps raw HTML snapshots of fetched articles in object
// storage. Uploads are best-effort: a failed archive never fails a
// summarization run.
type ArchiveClient struct {
	client *minio.Client
	bucket string
}

type Snapshot struct {
	URL       string    `json:"url"`
	FinalURL  string    `json:"final_url"`
	HTML      string    `json:"html"`
	Timestamp time.Time `json:"timestamp"`
}

func NewArchiveClient(cfg config.ArchiveConfig) (*ArchiveClient, error) {
	client, err := minio.New(
		cfg.Endpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(context.Background(), cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &ArchiveClient{client: client, bucket: cfg.Bucket}, nil
}

// UploadSnapshot stores the page under snapshots/<md5(url)>.json and returns
// the object key.
func (a *ArchiveClient) UploadSnapshot(ctx context.Context, url, finalURL, html string) (string, error) {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(url)))
	key := filepath.Join("snapshots", fmt.Sprintf("%s.json", hash))

	data, err := json.Marshal(Snapshot{
		URL:       url,
		FinalURL:  finalURL,
		HTML:      html,
		Timestamp: time.Now(),
	})
	if err != nil {
		return "", err
	}

	_, err = a.client.PutObject(ctx, a.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (a *ArchiveClient) GetSnapshot(ctx context.Context, key string) (*Snapshot, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
