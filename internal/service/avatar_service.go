package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/LilDeus06/trazabilidad-sub000/internal/cache"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/infra"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
)

// MaxAvatarSize caps uploads at 5MB.
const MaxAvatarSize = 5 * 1024 * 1024

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type AvatarService interface {
	Subir(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*dto.AvatarResponse, error)
}

type avatarService struct {
	perfiles repository.PerfilRepository
	storage  infra.ObjectStorage
	cache    *cache.PerfilCache
}

func NewAvatarService(perfiles repository.PerfilRepository, storage infra.ObjectStorage, cache *cache.PerfilCache) AvatarService {
	return &avatarService{perfiles: perfiles, storage: storage, cache: cache}
}

// Subir validates, uploads and links a new avatar. If the profile update
// fails after the upload succeeded, the uploaded object is removed so nothing
// is left orphaned. The previous avatar object is deleted best-effort.
func (s *avatarService) Subir(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*dto.AvatarResponse, error) {
	if int64(len(data)) > MaxAvatarSize {
		return nil, errors.New("el archivo supera el limite de 5MB")
	}
	ext, ok := avatarExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, errors.New("tipo de archivo no permitido (solo JPEG, PNG, GIF o WebP)")
	}

	perfil, err := s.perfiles.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("perfil no encontrado")
	}
	anterior := ""
	if perfil.AvatarURL != nil {
		anterior = avatarKeyFromURL(*perfil.AvatarURL)
	}

	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.NewString(), ext)
	url, err := s.storage.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("no se pudo subir el avatar: %w", err)
	}

	perfil.AvatarURL = &url
	if err := s.perfiles.Update(ctx, perfil); err != nil {
		if rmErr := s.storage.Remove(ctx, key); rmErr != nil {
			log.Warn().Err(rmErr).Str("key", key).Msg("rollback de avatar fallido")
		}
		return nil, fmt.Errorf("no se pudo actualizar el perfil: %w", err)
	}

	if anterior != "" && anterior != key {
		if err := s.storage.Remove(ctx, anterior); err != nil {
			log.Warn().Err(err).Str("key", anterior).Msg("no se pudo eliminar el avatar anterior")
		}
	}
	s.cache.Invalidate(ctx, userID)

	return &dto.AvatarResponse{
		URL:      url,
		Filename: filename,
		Size:     int64(len(data)),
		Type:     contentType,
	}, nil
}

// avatarKeyFromURL recovers the object key from a stored public URL.
func avatarKeyFromURL(url string) string {
	idx := strings.Index(url, "/avatars/")
	if idx < 0 {
		return ""
	}
	return url[idx+1:]
}
