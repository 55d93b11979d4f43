package service

import (
	"context"
	"testing"

	"tempus/core/errors"
	"tempus/modules/sharing/entity"
	userEntity "tempus/modules/user/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shareKey struct {
	owner, grantee uuid.UUID
}

type fakeShareRepo struct {
	shares map[shareKey]*entity.CalendarShare
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{shares: map[shareKey]*entity.CalendarShare{}}
}

func (f *fakeShareRepo) GetShare(ctx context.Context, ownerID, granteeID uuid.UUID) (*entity.CalendarShare, error) {
	return f.shares[shareKey{ownerID, granteeID}], nil
}

func (f *fakeShareRepo) UpsertShare(ctx context.Context, share *entity.CalendarShare) error {
	f.shares[shareKey{share.OwnerID, share.GranteeID}] = share
	return nil
}

func (f *fakeShareRepo) DeleteShare(ctx context.Context, ownerID, granteeID uuid.UUID) error {
	delete(f.shares, shareKey{ownerID, granteeID})
	return nil
}

func (f *fakeShareRepo) GetSharesByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.CalendarShare, error) {
	var out []entity.CalendarShare
	for key, share := range f.shares {
		if key.owner == ownerID {
			out = append(out, *share)
		}
	}
	return out, nil
}

type fakeUserLookup struct {
	users map[uuid.UUID]*userEntity.User
}

func (f *fakeUserLookup) GetUserByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error) {
	return f.users[id], nil
}

type fakeMembership struct {
	teammates bool
	sameOrg   bool
}

func (f *fakeMembership) AreTeammates(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return f.teammates, nil
}

func (f *fakeMembership) InSameOrganization(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return f.sameOrg, nil
}

func userWithSharing(level userEntity.SharingLevel) *userEntity.User {
	u := &userEntity.User{Email: "target@acme.test", CalendarSharing: level}
	u.ID = uuid.New()
	return u
}

func policyFor(target *userEntity.User, shares *fakeShareRepo, members *fakeMembership) PolicyServiceInterface {
	if shares == nil {
		shares = newFakeShareRepo()
	}
	if members == nil {
		members = &fakeMembership{}
	}
	lookup := &fakeUserLookup{users: map[uuid.UUID]*userEntity.User{target.ID: target}}
	return NewPolicyService(shares, lookup, members)
}

func TestGetPermissionLevel_SelfIsOwner(t *testing.T) {
	target := userWithSharing(userEntity.SharingNone)
	svc := policyFor(target, nil, nil)

	level, err := svc.GetPermissionLevel(context.Background(), target.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PermissionOwner, level)
}

func TestGetPermissionLevel_ExplicitShareWins(t *testing.T) {
	target := userWithSharing(userEntity.SharingNone)
	requester := uuid.New()

	shares := newFakeShareRepo()
	require.NoError(t, shares.UpsertShare(context.Background(), &entity.CalendarShare{
		OwnerID:   target.ID,
		GranteeID: requester,
		Level:     entity.PermissionFullDetails,
	}))

	svc := policyFor(target, shares, nil)
	level, err := svc.GetPermissionLevel(context.Background(), target.ID, requester)
	require.NoError(t, err)
	assert.Equal(t, entity.PermissionFullDetails, level)
}

func TestGetPermissionLevel_ExplicitShareCanNarrowDefault(t *testing.T) {
	target := userWithSharing(userEntity.SharingPublic)
	requester := uuid.New()

	shares := newFakeShareRepo()
	require.NoError(t, shares.UpsertShare(context.Background(), &entity.CalendarShare{
		OwnerID:   target.ID,
		GranteeID: requester,
		Level:     entity.PermissionFreeBusyOnly,
	}))

	svc := policyFor(target, shares, nil)
	level, err := svc.GetPermissionLevel(context.Background(), target.ID, requester)
	require.NoError(t, err)
	assert.Equal(t, entity.PermissionFreeBusyOnly, level)
}

func TestGetPermissionLevel_DefaultSharingLevels(t *testing.T) {
	requester := uuid.New()

	tests := []struct {
		name    string
		sharing userEntity.SharingLevel
		members fakeMembership
		want    entity.PermissionLevel
	}{
		{"public grants free/busy to anyone", userEntity.SharingPublic, fakeMembership{}, entity.PermissionFreeBusyOnly},
		{"organization, same org", userEntity.SharingOrganization, fakeMembership{sameOrg: true}, entity.PermissionFreeBusyOnly},
		{"organization, different org", userEntity.SharingOrganization, fakeMembership{}, entity.PermissionNone},
		{"team members, teammate", userEntity.SharingTeamMembers, fakeMembership{teammates: true}, entity.PermissionFreeBusyOnly},
		{"team members, stranger", userEntity.SharingTeamMembers, fakeMembership{}, entity.PermissionNone},
		{"none shares nothing", userEntity.SharingNone, fakeMembership{teammates: true, sameOrg: true}, entity.PermissionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := userWithSharing(tt.sharing)
			members := tt.members
			svc := policyFor(target, nil, &members)

			level, err := svc.GetPermissionLevel(context.Background(), target.ID, requester)
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestGetPermissionLevel_UnknownTarget(t *testing.T) {
	svc := NewPolicyService(newFakeShareRepo(), &fakeUserLookup{}, &fakeMembership{})

	level, err := svc.GetPermissionLevel(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, entity.PermissionNone, level)
}

func TestCanView(t *testing.T) {
	target := userWithSharing(userEntity.SharingPublic)
	svc := policyFor(target, nil, nil)

	ok, err := svc.CanView(context.Background(), target.ID, uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)

	closed := userWithSharing(userEntity.SharingNone)
	svc = policyFor(closed, nil, nil)
	ok, err = svc.CanView(context.Background(), closed.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGrantShare_Validation(t *testing.T) {
	target := userWithSharing(userEntity.SharingNone)
	svc := policyFor(target, nil, nil)

	appErr := svc.GrantShare(context.Background(), target.ID, target.ID, entity.PermissionFullDetails)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	appErr = svc.GrantShare(context.Background(), target.ID, uuid.New(), entity.PermissionNone)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	appErr = svc.GrantShare(context.Background(), target.ID, uuid.New(), entity.PermissionOwner)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGrantAndRevokeShare(t *testing.T) {
	target := userWithSharing(userEntity.SharingNone)
	requester := uuid.New()
	shares := newFakeShareRepo()
	svc := policyFor(target, shares, nil)

	require.Nil(t, svc.GrantShare(context.Background(), target.ID, requester, entity.PermissionFreeBusyOnly))

	level, err := svc.GetPermissionLevel(context.Background(), target.ID, requester)
	require.NoError(t, err)
	assert.Equal(t, entity.PermissionFreeBusyOnly, level)

	listed, appErr := svc.ListShares(context.Background(), target.ID)
	require.Nil(t, appErr)
	require.Len(t, listed, 1)
	assert.Equal(t, requester, listed[0].GranteeID)

	require.Nil(t, svc.RevokeShare(context.Background(), target.ID, requester))

	level, err = svc.GetPermissionLevel(context.Background(), target.ID, requester)
	require.NoError(t, err)
	assert.Equal(t, entity.PermissionNone, level)
}
