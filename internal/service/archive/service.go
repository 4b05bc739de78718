package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"storefront-admin/internal/domain"
)

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type Service struct {
	client objectPutter
	bucket string
	now    func() time.Time
}

func NewService(client *minio.Client, bucket string) *Service {
	return &Service{client: client, bucket: bucket, now: time.Now}
}

func (s *Service) ArchiveNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	body, err := json.Marshal(struct {
		ArchivedAt    time.Time             `json:"archivedAt"`
		Notifications []domain.Notification `json:"notifications"`
	}{
		ArchivedAt:    s.now().UTC(),
		Notifications: notifications,
	})
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.objectName(), bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload archive: %w", err)
	}
	return nil
}

func (s *Service) objectName() string {
	now := s.now().UTC()
	return fmt.Sprintf("notifications/%s/%d-%s.json", now.Format("2006/01/02"), now.Unix(), uuid.NewString()[:8])
}
