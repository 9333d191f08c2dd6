package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/cache"
	"github.com/LilDeus06/trazabilidad-sub000/internal/config"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// Register bootstraps a Perfil with rol "usuario" (least privilege; an
	// admin raises the role afterwards if needed).
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error)
}

type authService struct {
	repo     repository.PerfilRepository
	resolver *authz.Resolver
	perfiles *cache.PerfilCache
	cfg      *config.Config
}

func NewAuthService(repo repository.PerfilRepository, resolver *authz.Resolver, perfiles *cache.PerfilCache, cfg *config.Config) AuthService {
	return &authService{repo: repo, resolver: resolver, perfiles: perfiles, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	perfil, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(perfil.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	return s.tokenPair(perfil)
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	perfil := &model.Perfil{
		Email:        req.Email,
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		PasswordHash: string(hash),
		Rol:          authz.RolUsuario,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, perfil); err != nil {
		return nil, errors.New("el email ya esta registrado")
	}
	return s.tokenPair(perfil)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	perfil, err := s.repo.FindByID(ctx, uid)
	if err != nil || !perfil.Activo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}
	return s.tokenPair(perfil)
}

// Me returns the perfil (through the redis read-through cache) together with
// the effective permission map and fundo scope.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error) {
	perfil := s.perfiles.Get(ctx, userID)
	if perfil == nil {
		var err error
		perfil, err = s.repo.FindByID(ctx, userID)
		if err != nil {
			return nil, errors.New("usuario no encontrado")
		}
		s.perfiles.Set(ctx, perfil)
	}

	permisos := s.resolver.Resolve(ctx, userID, perfil.Rol)
	flags := make(map[string]dto.PermisoFlags, len(permisos))
	for modulo, p := range permisos {
		flags[string(modulo)] = dto.PermisoFlags{CanRead: p.Read, CanWrite: p.Write, CanDelete: p.Delete}
	}

	resp := &dto.MeResponse{
		Perfil:   perfilResponse(perfil),
		Permisos: flags,
	}
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !alcance.Todos {
		ids := make([]string, len(alcance.FundoIDs))
		for i, id := range alcance.FundoIDs {
			ids[i] = id.String()
		}
		resp.Fundos = &ids
	}
	return resp, nil
}

func (s *authService) tokenPair(perfil *model.Perfil) (*dto.LoginResponse, error) {
	access, err := s.generateToken(perfil, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(perfil, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         perfilResponse(perfil),
	}, nil
}

func (s *authService) generateToken(perfil *model.Perfil, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": perfil.ID.String(),
		"email":   perfil.Email,
		"rol":     perfil.Rol,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func perfilResponse(p *model.Perfil) dto.PerfilResponse {
	return dto.PerfilResponse{
		ID:        p.ID.String(),
		Email:     p.Email,
		Nombre:    p.Nombre,
		Apellido:  p.Apellido,
		Rol:       p.Rol,
		Activo:    p.Activo,
		AvatarURL: p.AvatarURL,
	}
}
