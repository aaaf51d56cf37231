package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/yi-nology/envprofile/biz/dal/model"
	"github.com/yi-nology/envprofile/biz/model/api"
	"github.com/yi-nology/envprofile/pkg/profile"
	"github.com/yi-nology/envprofile/pkg/storage"
	"github.com/yi-nology/envprofile/pkg/validator"
)

// publishedBaseName is the file name front-ends fetch, plus the format extension.
const publishedBaseName = "environment"

var publishFormats = []profile.Format{profile.FormatJSON, profile.FormatYAML, profile.FormatProtobuf}

var (
	ErrStorageDisabled    = errors.New("storage is not configured")
	ErrPublishedNotFound  = errors.New("published profile not found")
	ErrInvalidPublishName = errors.New("invalid published file name")
)

// PublishProfile encodes a profile and writes it to storage as
// "<profileKey>/environment.<ext>".
func (s *Service) PublishProfile(ctx context.Context, profileKey string, format profile.Format) (*api.Publication, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	item, err := s.GetProfile(ctx, profileKey)
	if err != nil {
		return nil, err
	}

	data, err := profile.Encode(item.Profile, format)
	if err != nil {
		return nil, err
	}

	fileName := publishedBaseName + "." + format.Extension()
	objectKey := path.Join(item.ProfileKey, fileName)
	if err := s.store.PutObject(ctx, objectKey, bytes.NewReader(data), format.ContentType(), int64(len(data))); err != nil {
		return nil, fmt.Errorf("publish %s: %w", objectKey, err)
	}
	url, err := s.store.GenerateURL(ctx, objectKey, fileName)
	if err != nil {
		return nil, err
	}

	record := &model.Publication{
		RevisionID: uuid.NewString(),
		ProfileKey: item.ProfileKey,
		Format:     string(format),
		ObjectKey:  objectKey,
		URL:        url,
		Storage:    s.store.Type(),
	}
	if err := s.logic.publicationDAO.Create(ctx, s.logic.db, record); err != nil {
		return nil, err
	}
	hlog.CtxInfof(ctx, "profile %s published to %s storage as %s by %s", item.ProfileKey, s.store.Type(), objectKey, actor(ctx))
	return publicationToAPI(record), nil
}

// ListPublications returns the latest publications of a profile.
func (s *Service) ListPublications(ctx context.Context, profileKey string, limit int) ([]*api.Publication, error) {
	key, ok := validator.SanitizeProfileKey(profileKey)
	if !ok {
		return nil, ErrInvalidProfileKey
	}
	records, err := s.logic.publicationDAO.ListByProfile(ctx, s.logic.db, key, limit)
	if err != nil {
		return nil, err
	}
	list := make([]*api.Publication, 0, len(records))
	for i := range records {
		list = append(list, publicationToAPI(&records[i]))
	}
	return list, nil
}

// PublishedFile is an open published object. Close must be called.
type PublishedFile struct {
	io.ReadCloser
	ContentType string
}

// OpenPublished streams a published object back.
func (s *Service) OpenPublished(ctx context.Context, profileKey, fileName string) (*PublishedFile, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	key, ok := validator.SanitizeProfileKey(profileKey)
	if !ok {
		return nil, ErrInvalidProfileKey
	}
	name, ok := validator.SanitizeFileName(fileName)
	if !ok {
		return nil, ErrInvalidPublishName
	}
	format, err := profile.ParseFormat(strings.TrimPrefix(path.Ext(name), "."))
	if err != nil || path.Ext(name) == "" {
		return nil, ErrInvalidPublishName
	}

	objectKey := path.Join(key, name)
	exists, err := s.store.ObjectExists(ctx, objectKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPublishedNotFound
	}
	rc, err := s.store.GetObject(ctx, objectKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrPublishedNotFound
		}
		return nil, err
	}
	return &PublishedFile{ReadCloser: rc, ContentType: format.ContentType()}, nil
}

// UnpublishProfile removes every published format of a profile together with
// its publication records.
func (s *Service) UnpublishProfile(ctx context.Context, profileKey string) error {
	key, ok := validator.SanitizeProfileKey(profileKey)
	if !ok {
		return ErrInvalidProfileKey
	}
	if s.store != nil {
		for _, f := range publishFormats {
			objectKey := path.Join(key, publishedBaseName+"."+f.Extension())
			if err := s.store.DeleteObject(ctx, objectKey); err != nil {
				return fmt.Errorf("unpublish %s: %w", objectKey, err)
			}
		}
	}
	return s.logic.publicationDAO.DeleteByProfile(ctx, s.logic.db, key)
}
