package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/hostezee/billing/internal/auth"
	"github.com/hostezee/billing/internal/middleware"
	"github.com/hostezee/billing/internal/models"
	"github.com/hostezee/billing/internal/storage"
	"github.com/hostezee/billing/pkg/billingapi"
)

// UserDirectory reads staff accounts and manages their roles.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) error
}

var (
	errSuperAdminOnly = errors.New("only a super admin can change roles")
	errOwnRole        = errors.New("cannot change your own role")
)

// AuthService implements the AuthService RPC interface for desk staff.
type AuthService struct {
	billingapi.UnimplementedAuthServiceHandler
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         UserDirectory
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users UserDirectory, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new staff account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[billingapi.RegisterRequest]) (*connect.Response[billingapi.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&billingapi.RegisterResponse{
		User:  toUserMsg(user),
		Token: token,
	}), nil
}

// Login authenticates a staff user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[billingapi.LoginRequest]) (*connect.Response[billingapi.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&billingapi.LoginResponse{
		User:  toUserMsg(user),
		Token: token,
	}), nil
}

// GetCurrentUser returns the account behind the request's token.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[billingapi.GetCurrentUserRequest]) (*connect.Response[billingapi.GetCurrentUserResponse], error) {
	// Set by the auth middleware
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		// Token outlived its account
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}
	if err != nil {
		s.logger.Error("GetCurrentUser failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&billingapi.GetCurrentUserResponse{User: toUserMsg(user)}), nil
}

// SetUserRole promotes or demotes another staff account.
// The new role applies to tokens issued after the change.
func (s *AuthService) SetUserRole(ctx context.Context, req *connect.Request[billingapi.SetUserRoleRequest]) (*connect.Response[billingapi.SetUserRoleResponse], error) {
	callerID := middleware.GetUserID(ctx)
	if callerID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	if middleware.GetRole(ctx) != models.RoleSuperAdmin {
		return nil, connect.NewError(connect.CodePermissionDenied, errSuperAdminOnly)
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if req.Msg.UserID == callerID {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errOwnRole)
	}

	role := models.Role(req.Msg.Role)
	if err := s.users.UpdateUserRole(ctx, req.Msg.UserID, role); err != nil {
		s.logger.Warn("SetUserRole failed", "user_id", req.Msg.UserID, "error", err)
		return nil, storageError(err)
	}
	user, err := s.users.GetUserByID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, storageError(err)
	}

	s.logger.Info("User role changed", "user_id", user.ID, "role", role, "by", callerID)
	return connect.NewResponse(&billingapi.SetUserRoleResponse{User: toUserMsg(user)}), nil
}

func toUserMsg(user *models.User) *billingapi.User {
	return &billingapi.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
	}
}
