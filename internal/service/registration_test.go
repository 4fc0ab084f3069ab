package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silver-jubilee/backend/internal/config"
	"github.com/silver-jubilee/backend/internal/domain"
)

type fakeRegistrationRepo struct {
	byUID    map[string]*domain.Registration
	receipts map[string]*domain.Receipt
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		byUID:    make(map[string]*domain.Registration),
		receipts: make(map[string]*domain.Receipt),
	}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, registration *domain.Registration, receipt *domain.Receipt) error {
	if _, ok := r.byUID[registration.OAuthUID]; ok {
		return domain.ErrDuplicateEntry
	}
	stored := *registration
	r.byUID[registration.OAuthUID] = &stored
	r.receipts[registration.OAuthUID] = receipt
	return nil
}

func (r *fakeRegistrationRepo) GetByOAuthUID(_ context.Context, oauthUID string) (*domain.Registration, error) {
	registration, ok := r.byUID[oauthUID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *registration
	return &copied, nil
}

func (r *fakeRegistrationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Registration, error) {
	for _, registration := range r.byUID {
		if registration.ID == id {
			copied := *registration
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRegistrationRepo) GetReceiptByOAuthUID(_ context.Context, oauthUID string) (*domain.Receipt, error) {
	receipt, ok := r.receipts[oauthUID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return receipt, nil
}

func (r *fakeRegistrationRepo) GetReceiptByID(_ context.Context, id uuid.UUID) (*domain.Receipt, error) {
	for uid, registration := range r.byUID {
		if registration.ID == id {
			return r.receipts[uid], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRegistrationRepo) List(_ context.Context, status *domain.RegistrationStatus) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, registration := range r.byUID {
		if status == nil || registration.Status == *status {
			out = append(out, *registration)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.RegistrationStatus, approvedAt *time.Time, approvedBy *string) error {
	for _, registration := range r.byUID {
		if registration.ID == id {
			registration.Status = status
			registration.ApprovedAt = approvedAt
			registration.ApprovedBy = approvedBy
			return nil
		}
	}
	return nil
}

type notifierCall struct {
	email  string
	name   string
	status domain.RegistrationStatus
}

type fakeNotifier struct {
	calls []notifierCall
}

func (n *fakeNotifier) NotifyStatusDecision(_ context.Context, email, name string, status domain.RegistrationStatus) error {
	n.calls = append(n.calls, notifierCall{email: email, name: name, status: status})
	return nil
}

func testFees() config.FeeConfig {
	return config.FeeConfig{Base: 10000, Surcharge: 5000}
}

func validInput() SubmitRegistrationInput {
	return SubmitRegistrationInput{
		Name:    "Alice Kumar",
		Batch:   "2001",
		Contact: "9876543210",
		Email:   "Alice@Example.com",
		Receipt: &domain.Receipt{
			Data:        []byte("png-bytes"),
			ContentType: "image/png",
			Filename:    "receipt.png",
		},
	}
}

func testIdentity() domain.Identity {
	return domain.Identity{
		Subject: "google-sub-123",
		Email:   "Alice@Example.com",
		Name:    "Alice Kumar",
	}
}

func TestSubmitRequiresReceipt(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	input := validInput()
	input.Receipt = nil
	_, err := svc.Submit(context.Background(), testIdentity(), input)
	assert.ErrorIs(t, err, ErrReceiptRequired)

	input.Receipt = &domain.Receipt{ContentType: "image/png"}
	_, err = svc.Submit(context.Background(), testIdentity(), input)
	assert.ErrorIs(t, err, ErrReceiptRequired)
}

func TestSubmitRejectsNonImageReceipt(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	input := validInput()
	input.Receipt.ContentType = "application/pdf"
	_, err := svc.Submit(context.Background(), testIdentity(), input)
	assert.ErrorIs(t, err, ErrReceiptNotImage)
}

func TestSubmitComputesAmountServerSide(t *testing.T) {
	tests := []struct {
		name             string
		comingWithFamily bool
		members          []domain.FamilyMember
		wantAmount       int64
	}{
		{
			name:       "solo attendee pays the base fee",
			wantAmount: 10000,
		},
		{
			name:             "family flag without members still pays base",
			comingWithFamily: true,
			wantAmount:       10000,
		},
		{
			name:             "each family member adds the surcharge",
			comingWithFamily: true,
			members: []domain.FamilyMember{
				{Name: "Asha", Relation: domain.RelationSpouse},
				{Name: "Rohan", Relation: domain.RelationSon},
			},
			wantAmount: 20000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

			input := validInput()
			input.ComingWithFamily = tt.comingWithFamily
			input.FamilyMembers = tt.members

			registration, err := svc.Submit(context.Background(), testIdentity(), input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, registration.Amount)
		})
	}
}

func TestSubmitDropsFamilyMembersWhenNotComingWithFamily(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	input := validInput()
	input.ComingWithFamily = false
	input.FamilyMembers = []domain.FamilyMember{{Name: "Asha", Relation: domain.RelationSpouse}}

	registration, err := svc.Submit(context.Background(), testIdentity(), input)
	require.NoError(t, err)
	assert.Empty(t, registration.FamilyMembers)
	assert.Equal(t, int64(10000), registration.Amount)
}

func TestSubmitValidatesFamilyMembers(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	input := validInput()
	input.ComingWithFamily = true
	input.FamilyMembers = []domain.FamilyMember{{Name: "   ", Relation: domain.RelationSpouse}}
	_, err := svc.Submit(context.Background(), testIdentity(), input)
	assert.ErrorIs(t, err, ErrInvalidFamilyMember)

	input.FamilyMembers = []domain.FamilyMember{{Name: "Asha", Relation: "Cousin"}}
	_, err = svc.Submit(context.Background(), testIdentity(), input)
	assert.ErrorIs(t, err, ErrInvalidFamilyMember)
}

func TestSubmitNormalizesFields(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	input := validInput()
	input.Name = "  Alice Kumar  "
	input.Email = "  Alice@Example.COM "
	input.LinkedIn = "   "

	registration, err := svc.Submit(context.Background(), testIdentity(), input)
	require.NoError(t, err)
	assert.Equal(t, "Alice Kumar", registration.Name)
	assert.Equal(t, "alice@example.com", registration.Email)
	assert.Equal(t, "alice@example.com", registration.OAuthEmail)
	assert.Nil(t, registration.LinkedIn)
	assert.Equal(t, domain.StatusPending, registration.Status)
}

func TestSubmitRejectsSecondRegistration(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	_, err := svc.Submit(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), testIdentity(), validInput())
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

// racingRegistrationRepo simulates the window where another submission for
// the same identity lands between the duplicate pre-check and the insert.
type racingRegistrationRepo struct {
	*fakeRegistrationRepo
}

func (r *racingRegistrationRepo) GetByOAuthUID(context.Context, string) (*domain.Registration, error) {
	return nil, domain.ErrNotFound
}

func TestSubmitMapsDuplicateInsertToAlreadyRegistered(t *testing.T) {
	repo := &racingRegistrationRepo{fakeRegistrationRepo: newFakeRegistrationRepo()}
	svc := newRegistrationService(repo, testFees(), nil)

	_, err := svc.Submit(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), testIdentity(), validInput())
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestGetOwn(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	_, err := svc.GetOwn(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	created, err := svc.Submit(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)

	got, err := svc.GetOwn(context.Background(), testIdentity().Subject)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetOwnReceipt(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	_, err := svc.GetOwnReceipt(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	_, err = svc.Submit(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)

	receipt, err := svc.GetOwnReceipt(context.Background(), testIdentity().Subject)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), receipt.Data)
	assert.Equal(t, "image/png", receipt.ContentType)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "CANCELLED", "root")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := newRegistrationService(newFakeRegistrationRepo(), testFees(), nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), domain.StatusApproved, "root")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestUpdateStatusApproveStampsApproval(t *testing.T) {
	repo := newFakeRegistrationRepo()
	notifier := &fakeNotifier{}
	svc := newRegistrationService(repo, testFees(), notifier)

	created, err := svc.Submit(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusApproved, "root")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedAt)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, "root", *updated.ApprovedBy)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "alice@example.com", notifier.calls[0].email)
	assert.Equal(t, domain.StatusApproved, notifier.calls[0].status)
}

func TestUpdateStatusApproveIsIdempotent(t *testing.T) {
	repo := newFakeRegistrationRepo()
	notifier := &fakeNotifier{}
	svc := newRegistrationService(repo, testFees(), notifier)

	created, err := svc.Submit(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)

	first, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusApproved, "root")
	require.NoError(t, err)

	second, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusApproved, "someone-else")
	require.NoError(t, err)

	// The original approval stamp survives a repeated approve.
	assert.Equal(t, first.ApprovedAt, second.ApprovedAt)
	assert.Equal(t, "root", *second.ApprovedBy)

	// And the notification is not sent again.
	assert.Len(t, notifier.calls, 1)
}

func TestUpdateStatusTransitionAwayClearsApproval(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newRegistrationService(repo, testFees(), nil)

	created, err := svc.Submit(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, domain.StatusApproved, "root")
	require.NoError(t, err)

	reverted, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusPending, "root")
	require.NoError(t, err)
	assert.Nil(t, reverted.ApprovedAt)
	assert.Nil(t, reverted.ApprovedBy)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ApprovedAt)
	assert.Nil(t, stored.ApprovedBy)
}

func TestUpdateStatusNotifiesOnlyOnDecision(t *testing.T) {
	repo := newFakeRegistrationRepo()
	notifier := &fakeNotifier{}
	svc := newRegistrationService(repo, testFees(), notifier)

	created, err := svc.Submit(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)

	// PENDING -> PENDING: no decision, no mail.
	_, err = svc.UpdateStatus(context.Background(), created.ID, domain.StatusPending, "root")
	require.NoError(t, err)
	assert.Empty(t, notifier.calls)

	_, err = svc.UpdateStatus(context.Background(), created.ID, domain.StatusRejected, "root")
	require.NoError(t, err)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, domain.StatusRejected, notifier.calls[0].status)

	// REJECTED -> PENDING is a change but not a decision.
	_, err = svc.UpdateStatus(context.Background(), created.ID, domain.StatusPending, "root")
	require.NoError(t, err)
	assert.Len(t, notifier.calls, 1)
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newFakeRegistrationRepo()
	svc := newRegistrationService(repo, testFees(), nil)

	first, err := svc.Submit(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)

	other := testIdentity()
	other.Subject = "google-sub-456"
	other.Email = "bob@example.com"
	_, err = svc.Submit(context.Background(), other, validInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), first.ID, domain.StatusApproved, "root")
	require.NoError(t, err)

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved := domain.StatusApproved
	filtered, err := svc.List(context.Background(), &approved)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)
}
