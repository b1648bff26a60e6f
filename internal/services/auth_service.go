package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/store"
)

// Claims é o conteúdo do token emitido no login
type Claims struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
	jwt.RegisteredClaims
}

// AuthService cuida das contas e dos tokens de acesso
type AuthService struct {
	usuarios  store.Usuarios
	segredo   []byte
	expiracao time.Duration
	custo     int
	logger    *zap.Logger
	agora     func() time.Time
}

func NewAuthService(st *store.Storage, segredo string, expiracao time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		usuarios:  st.Usuarios,
		segredo:   []byte(segredo),
		expiracao: expiracao,
		custo:     bcrypt.DefaultCost,
		logger:    logger,
		agora:     time.Now,
	}
}

// Registrar cria a conta e já devolve um token
func (s *AuthService) Registrar(ctx context.Context, req models.RegistroRequest) (*models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), s.custo)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	u := &models.Usuario{
		Nome:  strings.TrimSpace(req.Nome),
		Senha: string(hash),
	}
	if err := s.usuarios.Criar(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicado) {
			return nil, ErrNomeEmUso
		}
		return nil, fmt.Errorf("erro ao criar usuário: %w", err)
	}

	s.logger.Info("usuário registrado", zap.Int64("usuario_id", u.ID))
	return s.resposta(u)
}

// Login confere a senha e emite um token novo
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	u, err := s.usuarios.BuscarPorNome(ctx, strings.TrimSpace(req.Nome))
	if errors.Is(err, store.ErrNaoEncontrado) {
		return nil, ErrCredenciaisInvalidas
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Senha), []byte(req.Senha)); err != nil {
		return nil, ErrCredenciaisInvalidas
	}
	return s.resposta(u)
}

func (s *AuthService) resposta(u *models.Usuario) (*models.AuthResponse, error) {
	token, err := s.GerarToken(u)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Usuario: *u}, nil
}

// GerarToken assina um JWT HS256 com id e nome do usuário
func (s *AuthService) GerarToken(u *models.Usuario) (string, error) {
	agora := s.agora()
	claims := Claims{
		ID:   u.ID,
		Nome: u.Nome,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(agora),
			ExpiresAt: jwt.NewNumericDate(agora.Add(s.expiracao)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.segredo)
	if err != nil {
		return "", fmt.Errorf("erro ao assinar token: %w", err)
	}
	return token, nil
}

// ValidarToken confere assinatura e validade e devolve as claims
func (s *AuthService) ValidarToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.segredo, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.agora),
	)
	if err != nil || !parsed.Valid || claims.ID <= 0 {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}

// Verificar retorna o usuário dono de um token válido
func (s *AuthService) Verificar(ctx context.Context, usuarioID int64) (*models.Usuario, error) {
	return s.buscar(ctx, usuarioID)
}

// AtualizarPerfil altera os dados do próprio usuário
func (s *AuthService) AtualizarPerfil(ctx context.Context, alvoID, solicitanteID int64, req models.AtualizarUsuarioRequest) (*models.Usuario, error) {
	if alvoID != solicitanteID {
		return nil, ErrAcessoNegado
	}
	u, err := s.buscar(ctx, alvoID)
	if err != nil {
		return nil, err
	}

	u.Nome = strings.TrimSpace(req.Nome)
	u.Codigo = req.Codigo
	u.Cargo = req.Cargo
	u.Nascimento = nil
	if req.Nascimento != "" {
		nascimento, err := time.Parse("2006-01-02", req.Nascimento)
		if err != nil {
			return nil, fmt.Errorf("data de nascimento inválida: %w", err)
		}
		u.Nascimento = &nascimento
	}

	if err := s.usuarios.Atualizar(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicado) {
			return nil, ErrNomeEmUso
		}
		return nil, fmt.Errorf("erro ao atualizar usuário: %w", err)
	}
	return u, nil
}

// AlterarSenha troca a senha depois de conferir a atual
func (s *AuthService) AlterarSenha(ctx context.Context, alvoID, solicitanteID int64, req models.AlterarSenhaRequest) error {
	if alvoID != solicitanteID {
		return ErrAcessoNegado
	}
	u, err := s.buscar(ctx, alvoID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Senha), []byte(req.SenhaAtual)); err != nil {
		return ErrSenhaAtualIncorreta
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NovaSenha), s.custo)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}
	if err := s.usuarios.AtualizarSenha(ctx, alvoID, string(hash)); err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}

	s.logger.Info("senha alterada", zap.Int64("usuario_id", alvoID))
	return nil
}

func (s *AuthService) buscar(ctx context.Context, id int64) (*models.Usuario, error) {
	u, err := s.usuarios.BuscarPorID(ctx, id)
	if errors.Is(err, store.ErrNaoEncontrado) {
		return nil, ErrUsuarioNaoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	return u, nil
}
