package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/silver-jubilee/backend/internal/config"
	"github.com/silver-jubilee/backend/internal/domain"
	"github.com/silver-jubilee/backend/internal/repository"
	"github.com/silver-jubilee/backend/pkg/logger"
)

type registrationService struct {
	registrationRepository repository.Registrations
	fees                   config.FeeConfig
	notifier               StatusNotifier
}

func newRegistrationService(registrationRepository repository.Registrations,
	fees config.FeeConfig,
	notifier StatusNotifier,
) *registrationService {
	return &registrationService{
		registrationRepository: registrationRepository,
		fees:                   fees,
		notifier:               notifier,
	}
}

// computeAmount derives the fee server side. Whatever amount a client may
// have sent is never consulted.
func (s *registrationService) computeAmount(comingWithFamily bool, members int) int64 {
	if !comingWithFamily {
		return s.fees.Base
	}
	return s.fees.Base + s.fees.Surcharge*int64(members)
}

func (s *registrationService) Submit(ctx context.Context, identity domain.Identity, input SubmitRegistrationInput) (*domain.Registration, error) {
	if input.Receipt == nil || len(input.Receipt.Data) == 0 {
		return nil, ErrReceiptRequired
	}
	if !input.Receipt.IsImage() {
		return nil, ErrReceiptNotImage
	}

	if !input.ComingWithFamily {
		input.FamilyMembers = nil
	}
	for i := range input.FamilyMembers {
		member := &input.FamilyMembers[i]
		member.Name = strings.TrimSpace(member.Name)
		if member.Name == "" || !member.Relation.IsValid() {
			return nil, ErrInvalidFamilyMember
		}
	}

	// Fast duplicate check; the unique index on oauth_uid is what actually
	// guarantees the invariant under concurrent submissions.
	if _, err := s.registrationRepository.GetByOAuthUID(ctx, identity.Subject); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing registration failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate registration id failed: %w", err)
	}

	now := time.Now()
	registration := &domain.Registration{
		ID:               id,
		OAuthUID:         identity.Subject,
		OAuthEmail:       strings.ToLower(identity.Email),
		Name:             strings.TrimSpace(input.Name),
		Batch:            strings.TrimSpace(input.Batch),
		Contact:          strings.TrimSpace(input.Contact),
		Email:            strings.ToLower(strings.TrimSpace(input.Email)),
		LinkedIn:         optional(input.LinkedIn),
		PaymentRef:       optional(input.PaymentRef),
		ComingWithFamily: input.ComingWithFamily,
		FamilyMembers:    input.FamilyMembers,
		Amount:           s.computeAmount(input.ComingWithFamily, len(input.FamilyMembers)),
		Status:           domain.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.registrationRepository.Create(ctx, registration, input.Receipt); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration failed: %w", err)
	}

	return registration, nil
}

func (s *registrationService) GetOwn(ctx context.Context, oauthUID string) (*domain.Registration, error) {
	registration, err := s.registrationRepository.GetByOAuthUID(ctx, oauthUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration failed: %w", err)
	}
	return registration, nil
}

// GetOwnReceipt only ever resolves through the caller's own identity, so a
// user can never reach another identity's receipt bytes.
func (s *registrationService) GetOwnReceipt(ctx context.Context, oauthUID string) (*domain.Receipt, error) {
	receipt, err := s.registrationRepository.GetReceiptByOAuthUID(ctx, oauthUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get receipt failed: %w", err)
	}
	return receipt, nil
}

func (s *registrationService) GetReceiptByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	receipt, err := s.registrationRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get receipt by id failed: %w", err)
	}
	return receipt, nil
}

func (s *registrationService) List(ctx context.Context, status *domain.RegistrationStatus) ([]domain.Registration, error) {
	return s.registrationRepository.List(ctx, status)
}

// UpdateStatus drives the flat status machine: any status may move to any
// other, and setting the current status again is a no-op that keeps the
// approval stamp intact.
func (s *registrationService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus, adminUsername string) (*domain.Registration, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.registrationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration by id failed: %w", err)
	}

	var (
		approvedAt *time.Time
		approvedBy *string
	)
	if status == domain.StatusApproved {
		if current.Status == domain.StatusApproved {
			approvedAt = current.ApprovedAt
			approvedBy = current.ApprovedBy
		} else {
			now := time.Now()
			approvedAt = &now
			approvedBy = &adminUsername
		}
	}

	if err := s.registrationRepository.UpdateStatus(ctx, id, status, approvedAt, approvedBy); err != nil {
		return nil, fmt.Errorf("update registration status failed: %w", err)
	}

	if s.notifier != nil && current.Status != status &&
		(status == domain.StatusApproved || status == domain.StatusRejected) {
		if err := s.notifier.NotifyStatusDecision(ctx, current.Email, current.Name, status); err != nil {
			logger.Error("enqueue status notification failed", zap.Error(err), zap.String("registration_id", id.String()))
		}
	}

	updated := *current
	updated.Status = status
	updated.ApprovedAt = approvedAt
	updated.ApprovedBy = approvedBy
	updated.UpdatedAt = time.Now()

	return &updated, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
