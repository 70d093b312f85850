package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"signclass_backend/internal/util"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaService handles lesson video and sign-practice recording uploads:
// store the file, probe it, and produce a thumbnail when it is a video.
type MediaService struct {
	Storage *StorageService
}

func NewMediaService(storage *StorageService) *MediaService {
	return &MediaService{Storage: storage}
}

type UploadResult struct {
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnailUrl,omitempty"`
	Video        *util.VideoInfo `json:"video,omitempty"`
}

func isAllowedVideo(ext string) bool {
	for _, allowed := range util.AllowedVideoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// UploadVideo stores an uploaded video, probes its dimensions and duration,
// and generates a jpeg thumbnail from its first second.
func (s *MediaService) UploadVideo(ctx context.Context, header *multipart.FileHeader, prefix string) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isAllowedVideo(ext) {
		return nil, fmt.Errorf("unsupported video format: %s", ext)
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// Spool to a temp file so ffprobe can seek it.
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.ReadFrom(file); err != nil {
		return nil, err
	}
	if err := tmp.Sync(); err != nil {
		return nil, err
	}

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().Format("2006/01"), uuid.NewString(), ext)
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	url, err := s.Storage.UploadFile(ctx, name, tmp.Name(), contentType)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{URL: url, Video: info}

	thumbPath := tmp.Name() + ".jpg"
	if err := util.GenerateThumbnail(tmp.Name(), thumbPath, 1.0); err == nil {
		defer os.Remove(thumbPath)
		thumbName := strings.TrimSuffix(name, ext) + ".jpg"
		if thumbURL, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg"); err == nil {
			result.ThumbnailURL = thumbURL
		}
	}

	return result, nil
}

// UploadImage stores an avatar or class cover image as-is.
func (s *MediaService) UploadImage(ctx context.Context, header *multipart.FileHeader, prefix string) (*UploadResult, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, util.MimeImage) {
		return nil, fmt.Errorf("unsupported image type: %s", contentType)
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().Format("2006/01"), uuid.NewString(), ext)

	url, err := s.Storage.Upload(ctx, name, file, header.Size, contentType)
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: url}, nil
}
