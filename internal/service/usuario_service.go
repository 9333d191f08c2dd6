package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/cache"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
)

// UsuarioService is the admin-facing user management surface: perfil CRUD plus
// the explicit permission overrides of each user.
type UsuarioService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.PerfilResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.PerfilResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.PerfilResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	ObtenerPermisos(ctx context.Context, userID uuid.UUID) (*dto.PermisosResponse, error)
	ReemplazarPermisos(ctx context.Context, userID uuid.UUID, req dto.ReemplazarPermisosRequest) error
}

type usuarioService struct {
	perfiles repository.PerfilRepository
	permisos repository.PermisoRepository
	cache    *cache.PerfilCache
}

func NewUsuarioService(perfiles repository.PerfilRepository, permisos repository.PermisoRepository, c *cache.PerfilCache) UsuarioService {
	return &usuarioService{perfiles: perfiles, permisos: permisos, cache: c}
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.PerfilResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	perfil := &model.Perfil{
		Email:        req.Email,
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.perfiles.Create(ctx, perfil); err != nil {
		return nil, errors.New("el email ya esta registrado")
	}
	resp := perfilResponse(perfil)
	return &resp, nil
}

func (s *usuarioService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.PerfilResponse, error) {
	var perfiles []model.Perfil
	var err error
	if incluirInactivos {
		perfiles, err = s.perfiles.ListAll(ctx)
	} else {
		perfiles, err = s.perfiles.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PerfilResponse, len(perfiles))
	for i := range perfiles {
		resp[i] = perfilResponse(&perfiles[i])
	}
	return resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.PerfilResponse, error) {
	perfil, err := s.perfiles.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if req.Nombre != "" {
		perfil.Nombre = req.Nombre
	}
	if req.Apellido != "" {
		perfil.Apellido = req.Apellido
	}
	if req.Rol != "" {
		perfil.Rol = req.Rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		perfil.PasswordHash = string(hash)
	}
	if err := s.perfiles.Update(ctx, perfil); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	resp := perfilResponse(perfil)
	return &resp, nil
}

func (s *usuarioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if err := s.perfiles.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func (s *usuarioService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if err := s.perfiles.Reactivar(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func (s *usuarioService) ObtenerPermisos(ctx context.Context, userID uuid.UUID) (*dto.PermisosResponse, error) {
	if _, err := s.perfiles.FindByID(ctx, userID); err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	rows, err := s.permisos.PermisosModulo(ctx, userID)
	if err != nil {
		return nil, err
	}
	fundoIDs, err := s.permisos.FundosPermitidos(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PermisosResponse{
		Modulos: make([]dto.PermisoModuloEntry, len(rows)),
		Fundos:  make([]string, len(fundoIDs)),
	}
	for i, row := range rows {
		resp.Modulos[i] = dto.PermisoModuloEntry{
			Modulo:    row.Modulo,
			CanRead:   row.CanRead,
			CanWrite:  row.CanWrite,
			CanDelete: row.CanDelete,
		}
	}
	for i, id := range fundoIDs {
		resp.Fundos[i] = id.String()
	}
	return resp, nil
}

// ReemplazarPermisos validates every módulo name against the closed set and
// reconciles the stored rows against the desired state. Concurrent admin
// edits resolve last-writer-wins at the whole-set level; the transaction
// guarantees no reader ever observes a half-replaced set.
func (s *usuarioService) ReemplazarPermisos(ctx context.Context, userID uuid.UUID, req dto.ReemplazarPermisosRequest) error {
	if _, err := s.perfiles.FindByID(ctx, userID); err != nil {
		return errors.New("usuario no encontrado")
	}

	modulos := make([]model.PermisoModulo, 0, len(req.Modulos))
	seen := make(map[string]bool, len(req.Modulos))
	for _, entry := range req.Modulos {
		if _, err := authz.ParseModulo(entry.Modulo); err != nil {
			return err
		}
		if seen[entry.Modulo] {
			return errors.New("modulo duplicado: " + entry.Modulo)
		}
		seen[entry.Modulo] = true
		modulos = append(modulos, model.PermisoModulo{
			UserID:    userID,
			Modulo:    entry.Modulo,
			CanRead:   entry.CanRead,
			CanWrite:  entry.CanWrite,
			CanDelete: entry.CanDelete,
		})
	}

	fundoIDs := make([]uuid.UUID, 0, len(req.Fundos))
	for _, raw := range req.Fundos {
		id, err := uuid.Parse(raw)
		if err != nil {
			return errors.New("fundo id invalido: " + raw)
		}
		fundoIDs = append(fundoIDs, id)
	}

	return s.permisos.Replace(ctx, userID, modulos, fundoIDs)
}
