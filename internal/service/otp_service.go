package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Nshuti7/wholesome-ug-bn/internal/store"
	appErrors "github.com/Nshuti7/wholesome-ug-bn/pkg/errors"
)

// Store keys for the OTP state machine, all scoped per email.
const (
	otpKeyPrefix         = "otp:"
	otpAttemptsKeyPrefix = "otp_attempts:"
	otpLockKeyPrefix     = "otp_lock:"
	otpSpamLockKeyPrefix = "otp_spam_lock:"
	otpCooldownKeyPrefix = "otp_cooldown:"
	otpVerifiedKeyPrefix = "otp_verified:"
	otpRequestsKeyPrefix = "otp_request_count:"
)

const (
	otpTTL         = 5 * time.Minute
	otpCooldown    = time.Minute
	otpSpamLock    = time.Hour
	otpFailLock    = 30 * time.Minute
	otpVerifiedTTL = 10 * time.Minute
	otpMaxRequests = 3
	otpMaxFailures = 3
)

// OTPSender delivers a reset code to the user. Implemented by the mail
// dispatcher; swapped for a recorder in tests.
type OTPSender interface {
	SendOTP(ctx context.Context, name, email, code string) error
}

// OTPService issues and verifies password-reset codes with cooldown, spam
// and brute-force lockouts, all tracked in the key-value store.
type OTPService struct {
	store  store.Store
	sender OTPSender
	logger *zap.Logger
}

// NewOTPService constructs an OTPService.
func NewOTPService(st store.Store, sender OTPSender, logger *zap.Logger) *OTPService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OTPService{store: st, sender: sender, logger: logger}
}

// CheckRestrictions rejects a request while any lockout or cooldown is live.
func (s *OTPService) CheckRestrictions(ctx context.Context, email string) error {
	if s.exists(ctx, otpLockKeyPrefix+email) {
		return appErrors.Clone(appErrors.ErrBadRequest, "too many failed attempts, try again in 30 minutes")
	}
	if s.exists(ctx, otpSpamLockKeyPrefix+email) {
		return appErrors.Clone(appErrors.ErrBadRequest, "too many OTP requests, try again in 1 hour")
	}
	if s.exists(ctx, otpCooldownKeyPrefix+email) {
		return appErrors.Clone(appErrors.ErrBadRequest, "wait a minute before requesting another OTP")
	}
	return nil
}

// TrackRequest counts OTP requests per hour and locks on abuse.
func (s *OTPService) TrackRequest(ctx context.Context, email string) error {
	countKey := otpRequestsKeyPrefix + email
	count := s.counter(ctx, countKey)

	if count >= otpMaxRequests-1 {
		if err := s.store.Set(ctx, otpSpamLockKeyPrefix+email, "locked", otpSpamLock); err != nil {
			s.logger.Warn("failed to set otp spam lock", zap.Error(err))
		}
		return appErrors.Clone(appErrors.ErrBadRequest, "too many OTP requests, try again in 1 hour")
	}

	if err := s.store.Set(ctx, countKey, strconv.Itoa(count+1), time.Hour); err != nil {
		s.logger.Warn("failed to track otp request", zap.Error(err))
	}
	return nil
}

// Send generates a 4-digit code, emails it and arms the cooldown.
func (s *OTPService) Send(ctx context.Context, name, email string) error {
	code, err := generateOTP()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate OTP")
	}

	if err := s.sender.SendOTP(ctx, name, email, code); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send OTP email")
	}

	if err := s.store.Set(ctx, otpKeyPrefix+email, code, otpTTL); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store OTP")
	}
	if err := s.store.Set(ctx, otpCooldownKeyPrefix+email, "true", otpCooldown); err != nil {
		s.logger.Warn("failed to arm otp cooldown", zap.Error(err))
	}
	return nil
}

// Verify checks the presented code. Three wrong answers lock the account
// for 30 minutes and burn the stored code.
func (s *OTPService) Verify(ctx context.Context, email, otp string) error {
	stored, err := s.store.Get(ctx, otpKeyPrefix+email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrBadRequest, "OTP expired or invalid")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load OTP")
	}

	failKey := otpAttemptsKeyPrefix + email
	failed := s.counter(ctx, failKey)

	if otp != stored {
		if failed >= otpMaxFailures-1 {
			if err := s.store.Set(ctx, otpLockKeyPrefix+email, "locked", otpFailLock); err != nil {
				s.logger.Warn("failed to set otp failure lock", zap.Error(err))
			}
			if _, err := s.store.Del(ctx, otpKeyPrefix+email, failKey); err != nil {
				s.logger.Warn("failed to burn otp after lockout", zap.Error(err))
			}
			return appErrors.Clone(appErrors.ErrBadRequest, "too many failed attempts, account locked for 30 minutes")
		}
		if err := s.store.Set(ctx, failKey, strconv.Itoa(failed+1), otpFailLock); err != nil {
			s.logger.Warn("failed to track otp failure", zap.Error(err))
		}
		remaining := otpMaxFailures - 1 - failed
		return appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("incorrect OTP, %d attempts left", remaining))
	}

	if _, err := s.store.Del(ctx, otpKeyPrefix+email, failKey); err != nil {
		s.logger.Warn("failed to clear otp state", zap.Error(err))
	}
	if err := s.store.Set(ctx, otpVerifiedKeyPrefix+email, "true", otpVerifiedTTL); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark OTP verified")
	}
	return nil
}

// IsVerified reports whether a valid OTP was confirmed recently.
func (s *OTPService) IsVerified(ctx context.Context, email string) bool {
	return s.exists(ctx, otpVerifiedKeyPrefix+email)
}

// HasPending reports whether an unexpired code is still outstanding.
func (s *OTPService) HasPending(ctx context.Context, email string) bool {
	return s.exists(ctx, otpKeyPrefix+email)
}

// ClearVerified consumes the verified flag after a successful reset.
func (s *OTPService) ClearVerified(ctx context.Context, email string) {
	if _, err := s.store.Del(ctx, otpVerifiedKeyPrefix+email); err != nil {
		s.logger.Warn("failed to clear otp verified flag", zap.Error(err))
	}
}

func (s *OTPService) exists(ctx context.Context, key string) bool {
	_, err := s.store.Get(ctx, key)
	return err == nil
}

func (s *OTPService) counter(ctx context.Context, key string) int {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}
