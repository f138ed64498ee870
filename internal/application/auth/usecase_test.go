package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicadelvalle/ops-api/internal/application/auth"
	"github.com/clinicadelvalle/ops-api/internal/application/dto"
	"github.com/clinicadelvalle/ops-api/internal/domain"
	"github.com/clinicadelvalle/ops-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	porEmail map[string]*entity.Usuario
	emailErr error // fallo simulado de GetByEmail (si nil, comportamiento normal)
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{porEmail: make(map[string]*entity.Usuario)}
}

func (f *fakeUsuarioRepo) Create(u *entity.Usuario) error {
	if _, ok := f.porEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	f.porEmail[u.Email] = u
	return nil
}

func (f *fakeUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	for _, u := range f.porEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	u, ok := f.porEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsuarioRepo) Update(u *entity.Usuario) error {
	f.porEmail[u.Email] = u
	return nil
}

func (f *fakeUsuarioRepo) List(limit, offset int) ([]*entity.Usuario, error) {
	out := make([]*entity.Usuario, 0, len(f.porEmail))
	for _, u := range f.porEmail {
		out = append(out, u)
	}
	return out, nil
}

var cfgPrueba = auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "clinica-ops"}

func usuarioActivo(email, password, role string) *entity.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &entity.Usuario{
		ID: "u1", Email: email, PasswordHash: string(hash), Nombre: "Ana",
		Role: role, Status: entity.UsuarioActivo,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := auth.NewAuthUseCase(repo, cfgPrueba)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "ana@clinica.mx", Password: "contraseña-larga", Role: entity.RoleFarmacia,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleFarmacia, out.Role)
	assert.Equal(t, entity.UsuarioActivo, out.Status)
	assert.Equal(t, "ana@clinica.mx", out.Nombre, "sin nombre capturado se usa el email")

	guardado := repo.porEmail["ana@clinica.mx"]
	require.NotNil(t, guardado)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("contraseña-larga")))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	repo.porEmail["ana@clinica.mx"] = usuarioActivo("ana@clinica.mx", "x", entity.RoleAdmin)
	uc := auth.NewAuthUseCase(repo, cfgPrueba)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "ana@clinica.mx", Password: "contraseña-larga", Role: entity.RoleFarmacia,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUsuarioRepo(), cfgPrueba)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "x@clinica.mx", Password: "contraseña-larga", Role: "recepcion",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un fallo real de la consulta de email se propaga: no debe tratarse como
// "usuario no encontrado" y continuar con el alta.
func TestRegisterUser_ErrorDeConsulta(t *testing.T) {
	repo := newFakeUsuarioRepo()
	repo.emailErr = errors.New("conexión perdida")
	uc := auth.NewAuthUseCase(repo, cfgPrueba)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "ana@clinica.mx", Password: "contraseña-larga", Role: entity.RoleFarmacia,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, repo.porEmail, "no debe crearse el usuario")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	repo := newFakeUsuarioRepo()
	repo.porEmail["ana@clinica.mx"] = usuarioActivo("ana@clinica.mx", "contraseña-larga", entity.RoleFarmacia)
	uc := auth.NewAuthUseCase(repo, cfgPrueba)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@clinica.mx", Password: "contraseña-larga"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleFarmacia, out.User.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUsuarioRepo()
	repo.porEmail["ana@clinica.mx"] = usuarioActivo("ana@clinica.mx", "contraseña-larga", entity.RoleFarmacia)
	uc := auth.NewAuthUseCase(repo, cfgPrueba)

	_, err := uc.Login(dto.LoginRequest{Email: "ana@clinica.mx", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := newFakeUsuarioRepo()
	u := usuarioActivo("ana@clinica.mx", "contraseña-larga", entity.RoleFarmacia)
	u.Status = entity.UsuarioSuspendido
	repo.porEmail[u.Email] = u
	uc := auth.NewAuthUseCase(repo, cfgPrueba)

	_, err := uc.Login(dto.LoginRequest{Email: "ana@clinica.mx", Password: "contraseña-larga"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUsuarioRepo(), cfgPrueba)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@clinica.mx", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
