package usecase_test

import (
	"context"
	"testing"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
	"genstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminServiceUsecaseForTest(requests *ServiceRepoMock, audit *AuditRepoMock) *usecase.AdminServiceUsecase {
	return usecase.NewAdminServiceUsecase(requests, audit, &fixedClock{t: testNow})
}

func TestAdminUpdateService_QuotePatch_WritesAudit(t *testing.T) {
	requests := new(ServiceRepoMock)
	audit := new(AuditRepoMock)
	uc := newAdminServiceUsecaseForTest(requests, audit)

	requests.On("FindByID", mock.Anything, int64(7)).
		Return(model.ServiceRequest{ID: 7, Status: model.ServiceStatusReviewing, Priority: model.ServicePriorityMedium}, nil)
	requests.On("UpdateAdmin", mock.Anything, int64(7), mock.MatchedBy(func(p repo.ServicePatch) bool {
		return p.Status != nil && *p.Status == model.ServiceStatusQuoted &&
			p.Priority != nil && *p.Priority == model.ServicePriorityHigh &&
			p.EstimatedCost != nil && *p.EstimatedCost == 15000 &&
			p.ScheduledDate != nil &&
			p.Diagnosis != nil && *p.Diagnosis == "キャブレター詰まり"
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateService && l.ResourceID == 7 && l.ActorUserID == 99
	})).Return(nil)

	err := uc.Update(context.Background(), 99, 7, usecase.AdminUpdateServiceInput{
		Status:        strptr(string(model.ServiceStatusQuoted)),
		Priority:      strptr(string(model.ServicePriorityHigh)),
		EstimatedCost: int64ptr(15000),
		ScheduledDate: strptr("2025-06-10T09:00:00Z"),
		Diagnosis:     strptr("キャブレター詰まり"),
	})
	assert.NoError(t, err)
	requests.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminUpdateService_FrozenTicketIsImmutable(t *testing.T) {
	for _, frozen := range []model.ServiceStatus{model.ServiceStatusCompleted, model.ServiceStatusCancelled} {
		requests := new(ServiceRepoMock)
		uc := newAdminServiceUsecaseForTest(requests, new(AuditRepoMock))

		requests.On("FindByID", mock.Anything, int64(7)).
			Return(model.ServiceRequest{ID: 7, Status: frozen}, nil)

		err := uc.Update(context.Background(), 99, 7, usecase.AdminUpdateServiceInput{
			Status: strptr(string(model.ServiceStatusInProgress)),
		})
		assertErrContains(t, err, "cannot change completed or cancelled request")

		requests.AssertNotCalled(t, "UpdateAdmin", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestAdminUpdateService_InvalidStatus(t *testing.T) {
	uc := newAdminServiceUsecaseForTest(new(ServiceRepoMock), new(AuditRepoMock))

	err := uc.Update(context.Background(), 99, 7, usecase.AdminUpdateServiceInput{
		Status: strptr("DONE"),
	})
	assertErrContains(t, err, "invalid status")
}

func TestAdminUpdateService_InvalidPriority(t *testing.T) {
	uc := newAdminServiceUsecaseForTest(new(ServiceRepoMock), new(AuditRepoMock))

	err := uc.Update(context.Background(), 99, 7, usecase.AdminUpdateServiceInput{
		Priority: strptr("CRITICAL"),
	})
	assertErrContains(t, err, "invalid priority")
}

func TestAdminUpdateService_NegativeEstimatedCost(t *testing.T) {
	uc := newAdminServiceUsecaseForTest(new(ServiceRepoMock), new(AuditRepoMock))

	err := uc.Update(context.Background(), 99, 7, usecase.AdminUpdateServiceInput{
		EstimatedCost: int64ptr(-1),
	})
	assertErrContains(t, err, "invalid estimated_cost")
}

func TestAdminUpdateService_BrokenScheduledDate(t *testing.T) {
	uc := newAdminServiceUsecaseForTest(new(ServiceRepoMock), new(AuditRepoMock))

	err := uc.Update(context.Background(), 99, 7, usecase.AdminUpdateServiceInput{
		ScheduledDate: strptr("2025/06/10"),
	})
	assertErrContains(t, err, "invalid scheduled_date")
}

func TestAdminServiceList_InvalidPage(t *testing.T) {
	uc := newAdminServiceUsecaseForTest(new(ServiceRepoMock), new(AuditRepoMock))

	_, _, err := uc.List(context.Background(), repo.ServiceListFilter{Page: 0, Limit: 20})
	assertErrContains(t, err, "invalid page")
}
