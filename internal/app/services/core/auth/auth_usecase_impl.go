package auth

import (
	"context"
	"errors"
	"mindhaven-service/internal/app/config"
	"mindhaven-service/internal/app/contracts"
	"mindhaven-service/internal/app/models"
	"mindhaven-service/internal/app/services/core/doctors"
	"mindhaven-service/internal/app/services/shared/metrics"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/dto/requests"
	"mindhaven-service/internal/pkg/dto/responses"
	"mindhaven-service/internal/pkg/exceptions"
	"mindhaven-service/internal/pkg/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LoginLimiter counts login attempts per e-mail address.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (allowed bool, retryAfterSecs int, err error)
}

const (
	loginResultSuccess   = "success"
	loginResultFailure   = "failure"
	loginResultThrottled = "throttled"
)

type authUsecase struct {
	UserRepository   contracts.UserRepository
	DoctorRepository contracts.DoctorRepository
	PasswordHasher   contracts.PasswordHasher
	TokenService     contracts.TokenService
	Transactor       contracts.Transactor
	LoginLimiter     LoginLimiter
	MailerService    contracts.MailerService
	Metrics          *metrics.Metrics
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
	now              func() time.Time
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	doctorRepository contracts.DoctorRepository,
	passwordHasher contracts.PasswordHasher,
	tokenService contracts.TokenService,
	transactor contracts.Transactor,
	loginLimiter LoginLimiter,
	mailerService contracts.MailerService,
	authMetrics *metrics.Metrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository:   userRepository,
		DoctorRepository: doctorRepository,
		PasswordHasher:   passwordHasher,
		TokenService:     tokenService,
		Transactor:       transactor,
		LoginLimiter:     loginLimiter,
		MailerService:    mailerService,
		Metrics:          authMetrics,
		InternalConfig:   internalConfig,
		Log:              logger,
		now:              time.Now,
	}
}

func (uc *authUsecase) Signup(ctx context.Context, request *requests.Signup) (*responses.Signup, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Signup called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)

	if request.Email == "" || request.Password == "" || request.Name == "" || request.UserType == "" {
		return nil, exceptions.ErrSignupMissingFields(nil)
	}

	role, err := models.ParseSignupRole(request.UserType)
	if err != nil {
		return nil, exceptions.ErrSignupInvalidUserType(err)
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	existing, err := uc.UserRepository.FindPublicByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("authUsecase.Signup error checking email uniqueness",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		utils.LogSecurityEvent(uc.Log, "signup_duplicate_email", requestID, "low",
			zap.String(constvars.LoggingEmailKey, request.Email),
		)
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	passwordHash, err := uc.PasswordHasher.Hash(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	user, err := uc.buildUser(request, role, passwordHash)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "dateOfBirth")
	}

	err = uc.persistAccount(ctx, user)
	if err != nil {
		uc.Log.Error("authUsecase.Signup error persisting account",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoleKey, role.String()),
			zap.Error(err),
		)
		return nil, err
	}

	token, err := uc.TokenService.CreateToken(ctx, &models.SessionClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.UserType,
	})
	if err != nil {
		uc.Log.Error("authUsecase.Signup error creating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenGenerate(err)
	}

	uc.sendWelcomeEmail(ctx, &user.PublicUser)
	uc.Metrics.RecordSignup(role.String())

	utils.LogBusinessEvent(uc.Log, "user_signed_up", requestID,
		zap.String(constvars.LoggingUserIDKey, user.ID.Hex()),
		zap.String(constvars.LoggingRoleKey, role.String()),
	)
	return &responses.Signup{
		User:  responses.NewUser(&user.PublicUser),
		Token: token,
	}, nil
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.Email),
	)

	if request.Email == "" || request.Password == "" {
		return nil, exceptions.ErrLoginMissingFields(nil)
	}

	allowed, retryAfter, err := uc.LoginLimiter.Allow(ctx, request.Email)
	if err != nil {
		// throttle store outages must not lock everyone out
		uc.Log.Error("authUsecase.Login error applying login throttle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else if !allowed {
		uc.Metrics.RecordLogin(loginResultThrottled)
		utils.LogSecurityEvent(uc.Log, "login_throttled", requestID, "medium",
			zap.String(constvars.LoggingEmailKey, request.Email),
		)
		return nil, exceptions.ErrTooManyLoginAttempts(nil, retryAfter)
	}

	user, err := uc.UserRepository.FindCredentialsByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("authUsecase.Login error fetching credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		uc.Metrics.RecordLogin(loginResultFailure)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}
	if !user.IsActive {
		uc.Metrics.RecordLogin(loginResultFailure)
		return nil, exceptions.ErrAccountDeactivatedAtLogin(nil)
	}
	if !uc.PasswordHasher.Verify(request.Password, user.PasswordHash) {
		uc.Metrics.RecordLogin(loginResultFailure)
		utils.LogSecurityEvent(uc.Log, "login_wrong_password", requestID, "low",
			zap.String(constvars.LoggingUserIDKey, user.ID.Hex()),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	loggedIn := responses.LoggedInUser{User: responses.NewUser(&user.PublicUser)}
	if user.UserType == models.RoleDoctor {
		doctor, err := uc.DoctorRepository.FindByUserID(ctx, user.ID)
		if err != nil {
			uc.Log.Error("authUsecase.Login error fetching doctor profile",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		loggedIn.DoctorProfile = responses.NewDoctorSummary(doctor)
	}

	token, err := uc.TokenService.CreateToken(ctx, &models.SessionClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.UserType,
	})
	if err != nil {
		uc.Log.Error("authUsecase.Login error creating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenGenerate(err)
	}

	uc.Metrics.RecordLogin(loginResultSuccess)
	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID.Hex()),
	)
	return &responses.Login{User: loggedIn, Token: token}, nil
}

func (uc *authUsecase) GetCurrentUser(ctx context.Context, identity *models.PublicUser) (*responses.CurrentUser, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.GetCurrentUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identity.ID.Hex()),
	)

	current := &responses.CurrentUser{
		User:      responses.NewUser(identity),
		UpdatedAt: identity.UpdatedAt,
	}

	switch identity.UserType {
	case models.RoleDoctor:
		doctor, err := uc.DoctorRepository.FindByUserID(ctx, identity.ID)
		if err != nil {
			uc.Log.Error("authUsecase.GetCurrentUser error fetching doctor profile",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		current.DoctorProfile = responses.NewDoctorProfileSummary(doctor)
	case models.RolePatient:
	}

	uc.Log.Info("authUsecase.GetCurrentUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return current, nil
}

// DeactivateCurrentUser flips the active flag; the account is kept.
func (uc *authUsecase) DeactivateCurrentUser(ctx context.Context, identity *models.PublicUser) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.DeactivateCurrentUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, identity.ID.Hex()),
	)

	err := uc.UserRepository.SetActive(ctx, identity.ID.Hex(), false)
	if err != nil {
		uc.Log.Error("authUsecase.DeactivateCurrentUser error updating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	utils.LogSecurityEvent(uc.Log, "account_deactivated", requestID, "low",
		zap.String(constvars.LoggingUserIDKey, identity.ID.Hex()),
	)
	return nil
}

func (uc *authUsecase) buildUser(request *requests.Signup, role models.Role, passwordHash string) (*models.CredentialUser, error) {
	user := &models.CredentialUser{
		PublicUser: models.PublicUser{
			ID:       primitive.NewObjectID(),
			Email:    request.Email,
			Name:     request.Name,
			UserType: role,
			Phone:    request.Phone,
			Address:  request.Address,
			Gender:   request.Gender,
			IsActive: true,
		},
		PasswordHash: passwordHash,
	}
	if request.DateOfBirth != "" {
		dateOfBirth, err := utils.ParseFlexibleDate(request.DateOfBirth)
		if err != nil {
			return nil, err
		}
		user.DateOfBirth = &dateOfBirth
	}

	now := uc.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

// persistAccount writes the identity and, for doctors, the placeholder
// profile. With transactions enabled both writes commit or neither does;
// otherwise a failed profile write leaves an identity for the repair command.
func (uc *authUsecase) persistAccount(ctx context.Context, user *models.CredentialUser) error {
	write := func(ctx context.Context) error {
		_, err := uc.UserRepository.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		if user.UserType != models.RoleDoctor {
			return nil
		}
		_, err = uc.DoctorRepository.CreateDoctor(ctx, doctors.NewPlaceholderDoctor(user.ID, uc.now()))
		return err
	}

	if !uc.InternalConfig.MongoDB.UseTransaction {
		return write(ctx)
	}

	err := uc.Transactor.WithTransaction(ctx, write)
	if err != nil {
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return err
		}
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}

func (uc *authUsecase) sendWelcomeEmail(ctx context.Context, user *models.PublicUser) {
	if !uc.InternalConfig.Auth.WelcomeEmailEnabled || uc.MailerService == nil {
		return
	}

	err := uc.MailerService.SendEmail(ctx, &requests.EmailPayload{
		Subject:  constvars.QueueWelcomeEmailSubject,
		From:     uc.InternalConfig.Auth.WelcomeEmailSender,
		To:       []string{user.Email},
		Template: "welcome",
		Data: map[string]string{
			"name":     user.Name,
			"userType": user.UserType.String(),
		},
	})
	if err != nil {
		uc.Log.Warn("authUsecase.Signup welcome email not queued",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingUserIDKey, user.ID.Hex()),
			zap.Error(err),
		)
	}
}
