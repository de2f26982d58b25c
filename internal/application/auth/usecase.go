package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/almoxpro/almox-api/internal/domain"
	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
	"github.com/almoxpro/almox-api/pkg/jwt"
)

// JWTConfig parâmetros de emissão de token.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticação (provedor de identidade): login com bcrypt e
// emissão de JWT com os claims usados na atribuição das operações.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login valida as credenciais e devolve o token e o usuário.
func (uc *AuthUseCase) Login(email, password string) (string, *entity.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !user.Active {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, user.Unit, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// CreateUserInput dados para criar um usuário.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	Unit     string
}

// CreateUser cria um usuário com senha criptografada (bcrypt).
func (uc *AuthUseCase) CreateUser(in CreateUserInput) (*entity.User, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Role {
	case entity.RoleAdmin, entity.RoleAlmoxarife, entity.RoleComprador, entity.RoleConsulta:
	default:
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Unit:         in.Unit,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetIdentity devolve o snapshot de identidade de um usuário ativo.
func (uc *AuthUseCase) GetIdentity(userID string) (entity.Identity, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return entity.Identity{}, err
	}
	if user == nil || !user.Active {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	return user.Identity(), nil
}
