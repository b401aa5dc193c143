// Package auth inicia sesión contra la API remota y administra usuarios.
package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/apiclient"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
	"github.com/jhoicas/panaderia-erp/pkg/jwt"
)

// AuthAPI operaciones remotas de sesión y usuarios.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (apiclient.LoginResult, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	SaveUser(ctx context.Context, u entity.User, password string) (entity.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// TokenStore persiste el token de la sesión (el CLI lo usa; el BFF no).
type TokenStore interface {
	Load() (string, bool, error)
	Save(token string) error
	Clear() error
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	api    AuthAPI
	store  cachestore.Store
	runner *mutation.Runner
	secret string
	tokens TokenStore
}

// NewUseCase construye el caso de uso. secret vacío: los tokens se decodifican sin verificar
// la firma (la API remota es quien la verifica). tokens puede ser nil.
func NewUseCase(api AuthAPI, store cachestore.Store, runner *mutation.Runner, secret string, tokens TokenStore) *UseCase {
	return &UseCase{api: api, store: store, runner: runner, secret: secret, tokens: tokens}
}

// Login autentica contra la API y, si hay almacén de sesión, guarda el token.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	res, err := uc.api.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: la API no devolvió token", domain.ErrRequestFailed)
	}
	if _, err := jwt.ParseOrDecode(uc.secret, res.Token); err != nil {
		return nil, fmt.Errorf("%w: token inválido: %v", domain.ErrUnauthorized, err)
	}
	if uc.tokens != nil {
		if err := uc.tokens.Save(res.Token); err != nil {
			return nil, err
		}
	}
	return &dto.LoginResponse{Token: res.Token, User: res.User}, nil
}

// Logout descarta el token guardado. Lo invoca también el cliente HTTP ante un 401.
func (uc *UseCase) Logout() error {
	if uc.tokens == nil {
		return nil
	}
	return uc.tokens.Clear()
}

// Session token guardado y vigente. Un token expirado se descarta.
func (uc *UseCase) Session() (string, *jwt.Claims, error) {
	if uc.tokens == nil {
		return "", nil, domain.ErrUnauthorized
	}
	tok, ok, err := uc.tokens.Load()
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, domain.ErrUnauthorized
	}
	claims, err := jwt.ParseOrDecode(uc.secret, tok)
	if err != nil {
		_ = uc.tokens.Clear()
		return "", nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return tok, claims, nil
}

// Me identidad contenida en los claims.
func Me(c *jwt.Claims) dto.MeResponse {
	out := dto.MeResponse{UserID: c.UserID, Name: c.Name, Email: c.Email, Role: c.Role}
	if out.UserID == "" {
		out.UserID = c.Subject
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}

// ListUsers usuarios (cacheado).
func (uc *UseCase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return cachestore.Fetch(ctx, uc.store, cache.UsersKey(), uc.api.ListUsers)
}

// SaveUser crea (id vacío) o actualiza un usuario. Al crear la contraseña es obligatoria.
func (uc *UseCase) SaveUser(ctx context.Context, id string, in dto.UserRequest) (entity.User, error) {
	if err := dto.Validate(in); err != nil {
		return entity.User{}, err
	}
	if id == "" && in.Password == "" {
		return entity.User{}, domain.Invalid("password", "requerida al crear el usuario")
	}
	u := entity.User{ID: id, Email: in.Email, Name: in.Name, Role: in.Role, Active: in.Active}
	m, msg := cache.UserCreate, "Usuario creado"
	if id != "" {
		m, msg = cache.UserUpdate, "Usuario actualizado"
	}
	return mutation.Run(ctx, uc.runner, m,
		func(ctx context.Context) (entity.User, error) { return uc.api.SaveUser(ctx, u, in.Password) },
		nil, msg)
}

// DeleteUser baja de usuario.
func (uc *UseCase) DeleteUser(ctx context.Context, id string) error {
	_, err := mutation.Run(ctx, uc.runner, cache.UserDelete,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, uc.api.DeleteUser(ctx, id) },
		nil, "Usuario eliminado")
	return err
}
