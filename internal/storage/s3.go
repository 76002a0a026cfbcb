package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sauti-app/backend/pkg/config"
)

// Presigner hands out time-limited upload URLs. The server never touches
// file bytes; clients PUT directly to the bucket and we store the public URL.
type Presigner interface {
	PresignUpload(userID uint, fileName, contentType string) (*PresignedUpload, error)
}

// PresignedUpload is the pair of URLs a client needs to upload a file.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}

// S3Presigner implements Presigner for any S3-compatible store (AWS S3,
// Cloudflare R2 with a custom endpoint).
type S3Presigner struct {
	client  *s3.S3
	bucket  string
	baseURL string
	expiry  time.Duration
}

// NewS3Presigner creates a presigner from the storage configuration
func NewS3Presigner(cfg *config.Config) (*S3Presigner, error) {
	if cfg.StorageBucket == "" {
		return nil, fmt.Errorf("storage bucket not configured")
	}

	awsConfig := &aws.Config{
		Region:      aws.String(cfg.StorageRegion),
		Credentials: credentials.NewStaticCredentials(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
	}
	if cfg.StorageEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.StorageEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	baseURL := cfg.StorageBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.StorageBucket, cfg.StorageRegion)
	}

	return &S3Presigner{
		client:  s3.New(sess),
		bucket:  cfg.StorageBucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		expiry:  15 * time.Minute,
	}, nil
}

// PresignUpload generates a time-limited PUT URL under a per-user key
func (p *S3Presigner) PresignUpload(userID uint, fileName, contentType string) (*PresignedUpload, error) {
	key := fmt.Sprintf("id-verifications/%d/%s%s", userID, uuid.NewString(), path.Ext(fileName))

	req, _ := p.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	uploadURL, err := req.Presign(p.expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &PresignedUpload{
		UploadURL: uploadURL,
		PublicURL: p.baseURL + "/" + key,
		Key:       key,
	}, nil
}
