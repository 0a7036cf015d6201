package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/plateful/recipe-api/config"
)

// RecipeImageDir is the fixed directory recipe images are stored under,
// relative to the storage root.
const RecipeImageDir = "uploads/recipe"

var ErrInvalidImage = errors.New("uploaded file is not a valid image")

// ImageStore persists image files under a storage root and is addressed by
// relative paths like "uploads/recipe/<name>".
type ImageStore interface {
	Save(ctx context.Context, relPath string, data []byte, contentType string) error
	Remove(ctx context.Context, relPath string) error
}

// LocalImageStore writes image files to the local filesystem.
type LocalImageStore struct {
	root string
}

func NewLocalImageStore(root string) *LocalImageStore {
	return &LocalImageStore{root: root}
}

func (s *LocalImageStore) Save(ctx context.Context, relPath string, data []byte, contentType string) error {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (s *LocalImageStore) Remove(ctx context.Context, relPath string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// S3ImageStore keeps image files in an S3 bucket under the same relative
// keys the local store uses on disk.
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

func (s *S3ImageStore) Save(ctx context.Context, relPath string, data []byte, contentType string) error {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(relPath),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3ImageStore) Remove(ctx context.Context, relPath string) error {
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(relPath),
	})
	return err
}

// ImageService validates uploaded recipe images and hands them to a store.
type ImageService struct {
	store ImageStore
}

func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store}
}

// SaveRecipeImage validates an uploaded file and stores it as
// uploads/recipe/<uuid><original extension>. The content is sniffed; a
// payload that does not look like an image is rejected before anything is
// written.
func (s *ImageService) SaveRecipeImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", ErrInvalidImage
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrInvalidImage
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return "", ErrInvalidImage
	}

	relPath := path.Join(RecipeImageDir, uuid.New().String()+ext)
	if err := s.store.Save(ctx, relPath, data, contentType); err != nil {
		return "", err
	}
	return relPath, nil
}

// Remove discards a stored image file. Failures are logged, not returned:
// the database row is already authoritative and an orphaned file is an
// accepted inconsistency.
func (s *ImageService) Remove(ctx context.Context, relPath string) {
	if relPath == "" {
		return
	}
	if err := s.store.Remove(ctx, relPath); err != nil {
		log.Printf("failed to remove image %s: %v", relPath, err)
	}
}
