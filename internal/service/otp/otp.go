// Package otp issues and checks the appointment-confirmation passcode.
//
// There is a single destination, the configured verified number, so there
// is at most one live code at a time; a new Send replaces the previous one.
package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/carepulse_backend/pkg/constants"
	"github.com/Alijeyrad/carepulse_backend/pkg/observability"
	"github.com/Alijeyrad/carepulse_backend/pkg/sms"
	otputil "github.com/Alijeyrad/carepulse_backend/pkg/util/otp"
)

// MessageText is the SMS body carrying code.
func MessageText(code int64) string {
	return fmt.Sprintf("Your OTP for appointment confirmation is: %d", code)
}

type Notifier interface {
	Send(ctx context.Context, msg sms.Message) error
}

type Service interface {
	// Send generates a code, stores its hash and texts it to the verified
	// number. The code is returned to the caller.
	Send(ctx context.Context) (int64, error)

	// Verify checks code against the live one and consumes it on success.
	Verify(ctx context.Context, code string) error
}

type otpService struct {
	rdb      *redis.Client
	sms      Notifier
	cfg      otputil.Config
	codeKey  string
	countKey string
}

// New builds the service. destination only namespaces the Redis keys.
func New(rdb *redis.Client, notifier Notifier, cfg otputil.Config, destination string) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if destination == "" {
		destination = "default"
	}
	return &otpService{
		rdb:      rdb,
		sms:      notifier,
		cfg:      cfg,
		codeKey:  constants.RedisKeyOTP + destination,
		countKey: constants.RedisKeyOTPAttempts + destination,
	}, nil
}

func (s *otpService) Send(ctx context.Context) (int64, error) {
	code, err := otputil.GenerateNumber(s.cfg.Length)
	if err != nil {
		return 0, fmt.Errorf("generate OTP: %w", err)
	}
	codeStr := strconv.FormatInt(code, 10)

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.codeKey, otputil.Hash(codeStr), s.cfg.TTL)
		pipe.Set(ctx, s.countKey, 0, s.cfg.TTL)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("store OTP: %w", err)
	}

	err = s.sms.Send(ctx, sms.Message{
		Kind:   sms.KindOTP,
		Body:   MessageText(code),
		Params: []sms.Param{{Key: "CODE", Value: codeStr}},
	})
	observability.Metrics().SMSSent(ctx, string(sms.KindOTP), err)
	if err != nil {
		// an undelivered code must not stay verifiable
		s.rdb.Del(ctx, s.codeKey, s.countKey)
		slog.Warn("otp: sms failed", "err", err)
		return 0, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	return code, nil
}

func (s *otpService) Verify(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)

	hash, err := s.rdb.Get(ctx, s.codeKey).Result()
	if errors.Is(err, redis.Nil) {
		observability.Metrics().OTPVerified(ctx, "expired")
		return ErrOTPExpired
	}
	if err != nil {
		return fmt.Errorf("redis get otp: %w", err)
	}

	// reserve the attempt before comparing
	attempts, err := s.rdb.Incr(ctx, s.countKey).Result()
	if err != nil {
		return fmt.Errorf("redis incr otp attempts: %w", err)
	}
	if attempts > int64(s.cfg.MaxAttempts) {
		observability.Metrics().OTPVerified(ctx, "locked")
		return ErrOTPMaxAttempts
	}

	if err := otputil.Verify(hash, code); err != nil {
		observability.Metrics().OTPVerified(ctx, "invalid")
		return ErrOTPInvalid
	}

	s.rdb.Del(ctx, s.codeKey, s.countKey)
	observability.Metrics().OTPVerified(ctx, "ok")
	return nil
}
