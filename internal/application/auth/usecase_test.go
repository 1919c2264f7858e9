package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/pkg/config"
	pkgjwt "github.com/jhoicas/Gestion-api/pkg/jwt"
)

var testJWT = config.JWTConfig{
	Secret:     "secreto-de-prueba",
	Expiration: 15,
	Issuer:     "gestion-api-test",
}

type memUserRepo struct {
	users map[string]*entity.User // por ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "ana@acme.co",
		Password: "contraseña-segura",
		Name:     "Ana",
		Role:     entity.RoleManager,
	}
}

func TestRegister_CreaUsuarioActivo(t *testing.T) {
	uc := auth.NewUseCase(newMemUserRepo(), testJWT)

	user, err := uc.Register(registerReq())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@acme.co", user.Email)
	assert.Equal(t, entity.RoleManager, user.Role)
	assert.Equal(t, "active", user.Status)
}

func TestRegister_RolPorDefectoEsBodeguero(t *testing.T) {
	uc := auth.NewUseCase(newMemUserRepo(), testJWT)

	req := registerReq()
	req.Role = ""
	user, err := uc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, user.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := auth.NewUseCase(newMemUserRepo(), testJWT)

	_, err := uc.Register(registerReq())
	require.NoError(t, err)

	_, err = uc.Register(registerReq())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_ValidaEntrada(t *testing.T) {
	uc := auth.NewUseCase(newMemUserRepo(), testJWT)

	req := registerReq()
	req.Password = "corta"
	_, err := uc.Register(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = registerReq()
	req.Role = "superusuario"
	_, err = uc.Register(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = registerReq()
	req.Email = ""
	_, err = uc.Register(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc := auth.NewUseCase(newMemUserRepo(), testJWT)
	registered, err := uc.Register(registerReq())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@acme.co", Password: "contraseña-segura"})
	require.NoError(t, err)

	assert.Equal(t, registered.ID, resp.User.ID)

	userID, role, err := pkgjwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := auth.NewUseCase(newMemUserRepo(), testJWT)
	_, err := uc.Register(registerReq())
	require.NoError(t, err)

	// Usuario inexistente y contraseña incorrecta responden el mismo error.
	_, err = uc.Login(dto.LoginRequest{Email: "nadie@acme.co", Password: "contraseña-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@acme.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioDeshabilitado(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewUseCase(repo, testJWT)
	registered, err := uc.Register(registerReq())
	require.NoError(t, err)

	repo.users[registered.ID].Status = "disabled"

	_, err = uc.Login(dto.LoginRequest{Email: "ana@acme.co", Password: "contraseña-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetByID_NoEncontrado(t *testing.T) {
	uc := auth.NewUseCase(newMemUserRepo(), testJWT)

	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
