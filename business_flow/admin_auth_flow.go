package businessflow

import (
	"context"
	"fmt"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/app/services"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/cliphaus/cliphaus-platform/utils"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthFlow authenticates platform administrators
type AdminAuthFlow interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AdminLoginResponse, error)
}

// AdminAuthFlowImpl implements the admin authentication flow
type AdminAuthFlowImpl struct {
	adminRepo    repository.AdminRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.TokenService
}

// NewAdminAuthFlow creates a new admin auth flow instance
func NewAdminAuthFlow(
	adminRepo repository.AdminRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
) AdminAuthFlow {
	return &AdminAuthFlowImpl{
		adminRepo:    adminRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
	}
}

func (f *AdminAuthFlowImpl) Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AdminLoginResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}

	admin, err := f.adminRepo.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LOOKUP_FAILED", "Failed to lookup admin", err)
	}
	if admin == nil {
		errMsg := fmt.Sprintf("Login failed: unknown username %s", req.Username)
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionAdminLoginFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid username or password", ErrAdminNotFound)
	}
	if !utils.IsTrue(admin.IsActive) {
		errMsg := fmt.Sprintf("Login failed: admin %s is inactive", admin.Username)
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionAdminLoginFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("ACCOUNT_INACTIVE", "Account is inactive", ErrAccountInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		errMsg := fmt.Sprintf("Login failed: wrong password for %s", admin.Username)
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionAdminLoginFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid username or password", ErrIncorrectPassword)
	}

	accessToken, refreshToken, err := f.tokenService.GenerateAdminTokens(admin.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	if err := f.adminRepo.UpdateLastLogin(ctx, admin.ID, utils.UTCNow()); err != nil {
		return nil, NewBusinessError("LOGIN_STAMP_FAILED", "Failed to record login", err)
	}

	msg := fmt.Sprintf("Admin logged in: %s", admin.Username)
	_ = recordAudit(ctx, f.auditRepo, models.AuditActionAdminLoginSuccess, msg, true, nil, metadata)

	return &dto.AdminLoginResponse{
		Message:      "Login successful",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(utils.AccessTokenTTL.Seconds()),
	}, nil
}

func (f *AdminAuthFlowImpl) Refresh(ctx context.Context, refreshToken string) (*dto.AdminLoginResponse, error) {
	if refreshToken == "" {
		return nil, NewBusinessError("INVALID_REQUEST", "refresh token is required", nil)
	}

	newAccess, newRefresh, err := f.tokenService.RefreshAdminToken(refreshToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}

	return &dto.AdminLoginResponse{
		Message:      "Tokens refreshed",
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(utils.AccessTokenTTL.Seconds()),
	}, nil
}
