package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	sc "github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// MediaUpload is an upload slot: the recorded media and the presigned URL
// the editor PUTs the bytes to.
type MediaUpload struct {
	Media     *models.Media
	UploadURL string
}

// MediaItem is stored media with a presigned download URL.
type MediaItem struct {
	*models.Media
	URL string `json:"url"`
}

// MediaService hands out presigned S3 URLs for blog media. Only the
// assigned editor of a blog may upload.
type MediaService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	log         logging.Logger
}

func NewMediaService(m repomanager.RepositoryManager, cfg *sc.Config, log logging.Logger) *MediaService {
	return &MediaService{repomanager: m, config: cfg, log: log}
}

// StorageKey returns a fresh object key under the blog's prefix.
func StorageKey(blogID string, d time.Time) string {
	return fmt.Sprintf("blogs/%s/%d/%d/%d/%v", blogID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// RequestUpload records a media object for blogID and returns the URL to
// upload it to. Blogs that are absent or assigned to another editor are
// reported as not found.
func (s *MediaService) RequestUpload(ctx context.Context, editorID, blogID string) (*MediaUpload, error) {
	blogID, ok := common.CanonicalID(blogID)
	if !ok {
		return nil, errBlogNotFoundOrNotYours
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := StorageKey(blogID, time.Now().UTC())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	m, err := s.repomanager.Media().Create(ctx, &models.Media{
		BlogID:     blogID,
		StorageKey: key,
		UploadedBy: editorID,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errBlogNotFoundOrNotYours
		}
		return nil, fmt.Errorf("error recording media: %w", err)
	}

	s.log.Info(ctx, "media upload requested", "blog_id", blogID, "media_id", m.ID)
	return &MediaUpload{Media: m, UploadURL: req.URL}, nil
}

// List returns the media of blogID with presigned GET URLs.
func (s *MediaService) List(ctx context.Context, blogID string) ([]MediaItem, error) {
	blogID, ok := common.CanonicalID(blogID)
	if !ok {
		return nil, errBlogNotFound
	}

	exists, err := s.repomanager.Blogs().Exists(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("error searching blog: %w", err)
	}
	if !exists {
		return nil, errBlogNotFound
	}

	items, err := s.repomanager.Media().ListByBlog(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("error listing media: %w", err)
	}

	result := make([]MediaItem, 0, len(items))
	if len(items) == 0 {
		return result, nil
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	for _, m := range items {
		key := m.StorageKey
		req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(presignExpiry))
		if err != nil {
			return nil, fmt.Errorf("error presigning download: %w", err)
		}
		result = append(result, MediaItem{Media: m, URL: req.URL})
	}

	return result, nil
}
