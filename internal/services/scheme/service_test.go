package scheme

import (
	"testing"

	"rezopay/internal/models"
	"rezopay/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchemeRepo struct {
	schemes  map[uint]*models.Scheme
	services map[uint]*models.Service
	nextID   uint
	deleted  []uint
}

func newFakeSchemeRepo() *fakeSchemeRepo {
	return &fakeSchemeRepo{
		schemes:  make(map[uint]*models.Scheme),
		services: make(map[uint]*models.Service),
		nextID:   1,
	}
}

func (f *fakeSchemeRepo) Create(scheme *models.Scheme) error {
	scheme.ID = f.nextID
	f.nextID++
	f.schemes[scheme.ID] = scheme
	return nil
}

func (f *fakeSchemeRepo) GetByID(id uint) (*models.Scheme, error) {
	if s, ok := f.schemes[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrSchemeNotFound
}

func (f *fakeSchemeRepo) GetByName(name string) (*models.Scheme, error) {
	for _, s := range f.schemes {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, repositories.ErrSchemeNotFound
}

func (f *fakeSchemeRepo) SchemeByID(id uint) (*models.Scheme, error) {
	s, ok := f.schemes[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSchemeRepo) ListAll() ([]*models.Scheme, error) {
	out := make([]*models.Scheme, 0, len(f.schemes))
	for _, s := range f.schemes {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSchemeRepo) ListByCreator(creatorID uint) ([]*models.Scheme, error) {
	var out []*models.Scheme
	for _, s := range f.schemes {
		if s.CreatedBy == creatorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSchemeRepo) Update(scheme *models.Scheme) error {
	f.schemes[scheme.ID] = scheme
	return nil
}

func (f *fakeSchemeRepo) Delete(id uint) error {
	delete(f.schemes, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSchemeRepo) CountChildren(id uint) (int64, error) {
	var n int64
	for _, s := range f.schemes {
		if s.ParentSchemeID != nil && *s.ParentSchemeID == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeSchemeRepo) GetService(id uint) (*models.Service, error) {
	if svc, ok := f.services[id]; ok {
		return svc, nil
	}
	return nil, repositories.ErrServiceNotFound
}

func (f *fakeSchemeRepo) GetServiceByCode(code string) (*models.Service, error) {
	for _, svc := range f.services {
		if svc.Code == code {
			return svc, nil
		}
	}
	return nil, repositories.ErrServiceNotFound
}

func (f *fakeSchemeRepo) ListServices() ([]*models.Service, error) {
	out := make([]*models.Service, 0, len(f.services))
	for _, svc := range f.services {
		out = append(out, svc)
	}
	return out, nil
}

func (f *fakeSchemeRepo) CreateService(service *models.Service) error {
	f.services[service.ID] = service
	return nil
}

type capKey struct {
	schemeID  uint
	serviceID uint
}

type fakeCapRepo struct {
	records map[capKey]*models.SchemeCommission
}

func newFakeCapRepo() *fakeCapRepo {
	return &fakeCapRepo{records: make(map[capKey]*models.SchemeCommission)}
}

func (f *fakeCapRepo) Cap(schemeID, serviceID uint) (*models.SchemeCommission, error) {
	record, ok := f.records[capKey{schemeID, serviceID}]
	if !ok {
		return nil, nil
	}
	return record, nil
}

func (f *fakeCapRepo) GetBySchemeService(schemeID, serviceID uint) (*models.SchemeCommission, error) {
	record, ok := f.records[capKey{schemeID, serviceID}]
	if !ok {
		return nil, repositories.ErrCapNotFound
	}
	return record, nil
}

func (f *fakeCapRepo) Upsert(record *models.SchemeCommission) error {
	f.records[capKey{record.SchemeID, record.ServiceID}] = record
	return nil
}

func (f *fakeCapRepo) ListByScheme(schemeID uint) ([]*models.SchemeCommission, error) {
	var out []*models.SchemeCommission
	for k, record := range f.records {
		if k.schemeID == schemeID {
			out = append(out, record)
		}
	}
	return out, nil
}

func ptr(v float64) *float64 { return &v }

func uintPtr(v uint) *uint { return &v }

func actor(id uint, role models.Role, schemeID *uint) *models.User {
	u := &models.User{Role: role, SchemeID: schemeID}
	u.ID = id
	return u
}

func TestCreateRootScheme(t *testing.T) {
	schemes := newFakeSchemeRepo()
	svc := NewService(schemes, newFakeCapRepo())

	created, err := svc.Create(actor(1, models.RoleSuperAdmin, nil), &models.CreateSchemeInput{Name: "Platform Default"})
	require.NoError(t, err)
	assert.Nil(t, created.ParentSchemeID)
	assert.Equal(t, uint(1), created.CreatedBy)
	assert.True(t, created.IsActive)
}

func TestCreateChildSchemeUsesActorScheme(t *testing.T) {
	schemes := newFakeSchemeRepo()
	require.NoError(t, schemes.Create(&models.Scheme{Name: "Root", CreatedBy: 1}))
	svc := NewService(schemes, newFakeCapRepo())

	created, err := svc.Create(actor(2, models.RoleAdmin, uintPtr(1)), &models.CreateSchemeInput{Name: "Admin Plan"})
	require.NoError(t, err)
	require.NotNil(t, created.ParentSchemeID)
	assert.Equal(t, uint(1), *created.ParentSchemeID)
}

func TestCreateSchemeWithoutAssignment(t *testing.T) {
	svc := NewService(newFakeSchemeRepo(), newFakeCapRepo())

	_, err := svc.Create(actor(2, models.RoleAdmin, nil), &models.CreateSchemeInput{Name: "Orphan"})
	assert.ErrorIs(t, err, ErrNoSchemeAssigned)
}

func TestCreateSchemeRoleDenied(t *testing.T) {
	svc := NewService(newFakeSchemeRepo(), newFakeCapRepo())

	_, err := svc.Create(actor(5, models.RoleRetailer, uintPtr(1)), &models.CreateSchemeInput{Name: "Retail Plan"})
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestCreateSchemeDuplicateName(t *testing.T) {
	schemes := newFakeSchemeRepo()
	require.NoError(t, schemes.Create(&models.Scheme{Name: "Taken", CreatedBy: 1}))
	svc := NewService(schemes, newFakeCapRepo())

	_, err := svc.Create(actor(1, models.RoleSuperAdmin, nil), &models.CreateSchemeInput{Name: "Taken"})
	assert.ErrorIs(t, err, repositories.ErrSchemeNameTaken)
}

func TestDeleteSchemeWithChildren(t *testing.T) {
	schemes := newFakeSchemeRepo()
	require.NoError(t, schemes.Create(&models.Scheme{Name: "Root", CreatedBy: 1}))
	require.NoError(t, schemes.Create(&models.Scheme{Name: "Child", ParentSchemeID: uintPtr(1), CreatedBy: 1}))
	svc := NewService(schemes, newFakeCapRepo())

	err := svc.Delete(actor(1, models.RoleSuperAdmin, nil), 1)
	assert.ErrorIs(t, err, repositories.ErrSchemeHasChildren)
}

func TestDeleteRootSchemeRequiresSuperAdmin(t *testing.T) {
	schemes := newFakeSchemeRepo()
	require.NoError(t, schemes.Create(&models.Scheme{Name: "Root", CreatedBy: 2}))
	svc := NewService(schemes, newFakeCapRepo())

	err := svc.Delete(actor(2, models.RoleAdmin, nil), 1)
	assert.ErrorIs(t, err, ErrRootSchemeDelete)

	err = svc.Delete(actor(1, models.RoleSuperAdmin, nil), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, schemes.deleted)
}

func setCommissionFixture(t *testing.T) (*fakeSchemeRepo, *fakeCapRepo, Service) {
	t.Helper()
	schemes := newFakeSchemeRepo()
	require.NoError(t, schemes.Create(&models.Scheme{Name: "Root", CreatedBy: 1}))
	require.NoError(t, schemes.Create(&models.Scheme{Name: "Child", ParentSchemeID: uintPtr(1), CreatedBy: 2}))
	mobile := &models.Service{Category: "Recharge", Code: "MOBILE", Name: "Mobile Recharge"}
	mobile.ID = 10
	require.NoError(t, schemes.CreateService(mobile))

	caps := newFakeCapRepo()
	return schemes, caps, NewService(schemes, caps)
}

func TestSetCommissionCreatesRecord(t *testing.T) {
	_, caps, svc := setCommissionFixture(t)

	record, err := svc.SetCommission(actor(1, models.RoleSuperAdmin, nil), &models.CommissionSetupInput{
		SchemeID:    1,
		ServiceID:   10,
		Kind:        models.KindPercentage,
		Distributor: ptr(5),
		Retailer:    ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, models.KindPercentage, record.Kind)
	assert.Equal(t, uint(1), record.SetByUserID)
	require.NotNil(t, record.Distributor)
	assert.Equal(t, 5.0, *record.Distributor)
	assert.Nil(t, record.Admin)

	stored, err := caps.GetBySchemeService(1, 10)
	require.NoError(t, err)
	assert.Equal(t, record, stored)
}

func TestSetCommissionMergesIntoExisting(t *testing.T) {
	_, caps, svc := setCommissionFixture(t)
	require.NoError(t, caps.Upsert(&models.SchemeCommission{
		SchemeID:    1,
		ServiceID:   10,
		Kind:        models.KindPercentage,
		Distributor: ptr(5),
		Retailer:    ptr(3),
	}))

	record, err := svc.SetCommission(actor(1, models.RoleSuperAdmin, nil), &models.CommissionSetupInput{
		SchemeID:  1,
		ServiceID: 10,
		Kind:      models.KindPercentage,
		Retailer:  ptr(2),
	})
	require.NoError(t, err)

	// Untouched roles survive the partial update.
	require.NotNil(t, record.Distributor)
	assert.Equal(t, 5.0, *record.Distributor)
	require.NotNil(t, record.Retailer)
	assert.Equal(t, 2.0, *record.Retailer)
}

func TestSetCommissionSeniorRoleRejected(t *testing.T) {
	_, _, svc := setCommissionFixture(t)

	// An ADMIN actor may not set the ADMIN row.
	_, err := svc.SetCommission(actor(1, models.RoleSuperAdmin, nil), &models.CommissionSetupInput{
		SchemeID:  2,
		ServiceID: 10,
		Kind:      models.KindPercentage,
		Admin:     ptr(4),
	})
	require.NoError(t, err)

	_, err = svc.SetCommission(actor(2, models.RoleAdmin, uintPtr(1)), &models.CommissionSetupInput{
		SchemeID:  2,
		ServiceID: 10,
		Kind:      models.KindPercentage,
		Admin:     ptr(4),
	})
	assert.ErrorIs(t, err, ErrSeniorRole)
}

func TestSetCommissionParentCeiling(t *testing.T) {
	_, caps, svc := setCommissionFixture(t)
	require.NoError(t, caps.Upsert(&models.SchemeCommission{
		SchemeID:  1,
		ServiceID: 10,
		Kind:      models.KindPercentage,
		Retailer:  ptr(3),
	}))

	_, err := svc.SetCommission(actor(2, models.RoleAdmin, uintPtr(1)), &models.CommissionSetupInput{
		SchemeID:  2,
		ServiceID: 10,
		Kind:      models.KindPercentage,
		Retailer:  ptr(4),
	})
	assert.ErrorIs(t, err, ErrExceedsParentLimit)

	// At or under the parent value is fine.
	_, err = svc.SetCommission(actor(2, models.RoleAdmin, uintPtr(1)), &models.CommissionSetupInput{
		SchemeID:  2,
		ServiceID: 10,
		Kind:      models.KindPercentage,
		Retailer:  ptr(3),
	})
	assert.NoError(t, err)
}

func TestSetCommissionForeignScheme(t *testing.T) {
	_, _, svc := setCommissionFixture(t)

	// Scheme 2 was created by user 2; user 3 cannot configure it.
	_, err := svc.SetCommission(actor(3, models.RoleAdmin, uintPtr(1)), &models.CommissionSetupInput{
		SchemeID:  2,
		ServiceID: 10,
		Kind:      models.KindPercentage,
		Retailer:  ptr(1),
	})
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestSetCommissionUnknownService(t *testing.T) {
	_, _, svc := setCommissionFixture(t)

	_, err := svc.SetCommission(actor(1, models.RoleSuperAdmin, nil), &models.CommissionSetupInput{
		SchemeID:  1,
		ServiceID: 99,
		Kind:      models.KindPercentage,
		Retailer:  ptr(1),
	})
	assert.ErrorIs(t, err, repositories.ErrServiceNotFound)
}

func TestSetCommissionInvalidKind(t *testing.T) {
	_, _, svc := setCommissionFixture(t)

	_, err := svc.SetCommission(actor(1, models.RoleSuperAdmin, nil), &models.CommissionSetupInput{
		SchemeID:  1,
		ServiceID: 10,
		Kind:      models.CommissionKind("BOGUS"),
		Retailer:  ptr(1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListSchemesScopedByRole(t *testing.T) {
	schemes := newFakeSchemeRepo()
	require.NoError(t, schemes.Create(&models.Scheme{Name: "Root", CreatedBy: 1}))
	require.NoError(t, schemes.Create(&models.Scheme{Name: "Mine", CreatedBy: 2}))
	svc := NewService(schemes, newFakeCapRepo())

	all, err := svc.List(actor(1, models.RoleSuperAdmin, nil))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(actor(2, models.RoleAdmin, nil))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)
}
