package core

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// maxImageSize caps decoded upload size (4MB).
const maxImageSize = 4 * 1024 * 1024

// ImageStore turns uploaded base64 blobs into URL-addressable records.
type ImageStore interface {
	Save(ctx context.Context, contentType string, data []byte) (*Image, error)
	Get(ctx context.Context, id string) (*Image, error)
	Delete(ctx context.Context, id string) error
}

type PgImageStore struct {
	db PgxPool
}

func NewPgImageStore(db PgxPool) *PgImageStore {
	return &PgImageStore{db: db}
}

// Save assigns a random identifier so image URLs are not guessable or
// enumerable.
func (s *PgImageStore) Save(ctx context.Context, contentType string, data []byte) (*Image, error) {
	img := Image{ID: uuid.NewString(), ContentType: contentType, Data: data}
	const q = `INSERT INTO images (id, content_type, data) VALUES ($1,$2,$3) RETURNING created_at`
	if err := s.db.QueryRow(ctx, q, img.ID, img.ContentType, img.Data).Scan(&img.CreatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *PgImageStore) Get(ctx context.Context, id string) (*Image, error) {
	const q = `SELECT id, content_type, data, created_at FROM images WHERE id=$1`
	var img Image
	if err := s.db.QueryRow(ctx, q, id).Scan(&img.ID, &img.ContentType, &img.Data, &img.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (s *PgImageStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM images WHERE id=$1`, id)
	return err
}

// decodeImagePayload accepts raw base64 or a data URI
// ("data:image/png;base64,...."). The content type embedded in a data URI wins
// over the declared one.
func decodeImagePayload(payload, declaredType string) ([]byte, string, error) {
	contentType := declaredType
	if strings.HasPrefix(payload, "data:") {
		rest := strings.TrimPrefix(payload, "data:")
		meta, b64, ok := strings.Cut(rest, ",")
		if !ok {
			return nil, "", errors.New("malformed data uri")
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		payload = b64
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errors.New("empty image")
	}
	if len(data) > maxImageSize {
		return nil, "", errors.New("image too large")
	}
	return data, contentType, nil
}
