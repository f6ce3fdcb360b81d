package usecase_test

import (
	"context"
	"strings"
	"testing"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
	"genstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newServiceUsecaseForTest(requests *ServiceRepoMock) *usecase.ServiceUsecase {
	return usecase.NewServiceUsecase(
		requests,
		&fixedIDGen{id: "9f8e7d6c-0000-0000-0000-000000000000"},
		&fixedClock{t: testNow},
	)
}

func validServiceInput() usecase.CreateServiceRequestInput {
	return usecase.CreateServiceRequestInput{
		ServiceType:        string(model.ServiceTypeRepair),
		ContactName:        "佐藤 花子",
		ContactPhone:       "080-1111-2222",
		ProblemDescription: "エンジンがかからない",
		GeneratorBrand:     "Honda",
		GeneratorModel:     "EU18i",
	}
}

func TestCreateServiceRequest_StartsPendingMedium(t *testing.T) {
	requests := new(ServiceRepoMock)
	uc := newServiceUsecaseForTest(requests)

	requests.On("Create", mock.Anything, mock.MatchedBy(func(sr model.ServiceRequest) bool {
		return sr.Status == model.ServiceStatusPending &&
			sr.Priority == model.ServicePriorityMedium &&
			sr.UserID == 1 &&
			strings.HasPrefix(sr.TicketNumber, "SRV-20250601-")
	})).Return(model.ServiceRequest{
		ID:           5,
		TicketNumber: "SRV-20250601-9F8E7D6C",
		UserID:       1,
		Status:       model.ServiceStatusPending,
		Priority:     model.ServicePriorityMedium,
	}, nil)

	out, err := uc.Create(context.Background(), 1, validServiceInput())
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, string(model.ServiceStatusPending), out.Status)
	assert.Equal(t, string(model.ServicePriorityMedium), out.Priority)
	requests.AssertExpectations(t)
}

func TestCreateServiceRequest_InvalidType(t *testing.T) {
	uc := newServiceUsecaseForTest(new(ServiceRepoMock))

	in := validServiceInput()
	in.ServiceType = "CLEANING"

	_, err := uc.Create(context.Background(), 1, in)
	assertErrContains(t, err, "invalid service_type")
}

func TestCreateServiceRequest_MissingProblemDescription(t *testing.T) {
	uc := newServiceUsecaseForTest(new(ServiceRepoMock))

	in := validServiceInput()
	in.ProblemDescription = "  "

	_, err := uc.Create(context.Background(), 1, in)
	assertErrContains(t, err, "problem_description is required")
}

func TestGetMineServiceRequest_OtherUsersTicketIsNotFound(t *testing.T) {
	requests := new(ServiceRepoMock)
	uc := newServiceUsecaseForTest(requests)

	requests.On("FindByID", mock.Anything, int64(5)).
		Return(model.ServiceRequest{ID: 5, UserID: 99}, nil)

	_, err := uc.GetMine(context.Background(), 1, 5)
	assertErrContains(t, err, "not found")
}

func TestCancelServiceRequest_PendingOnly(t *testing.T) {
	requests := new(ServiceRepoMock)
	uc := newServiceUsecaseForTest(requests)

	requests.On("FindByID", mock.Anything, int64(5)).
		Return(model.ServiceRequest{ID: 5, UserID: 1, Status: model.ServiceStatusInProgress}, nil)

	err := uc.Cancel(context.Background(), 1, 5)
	assertErrContains(t, err, "only pending requests can be cancelled")

	requests.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelServiceRequest_Success(t *testing.T) {
	requests := new(ServiceRepoMock)
	uc := newServiceUsecaseForTest(requests)

	requests.On("FindByID", mock.Anything, int64(5)).
		Return(model.ServiceRequest{ID: 5, UserID: 1, Status: model.ServiceStatusPending}, nil)
	requests.On("UpdateStatus", mock.Anything, int64(5), model.ServiceStatusCancelled).Return(nil)

	err := uc.Cancel(context.Background(), 1, 5)
	assert.NoError(t, err)
	requests.AssertExpectations(t)
}

func TestCancelServiceRequest_NotFound(t *testing.T) {
	requests := new(ServiceRepoMock)
	uc := newServiceUsecaseForTest(requests)

	requests.On("FindByID", mock.Anything, int64(5)).
		Return(model.ServiceRequest{}, repo.ErrNotFound)

	err := uc.Cancel(context.Background(), 1, 5)
	assertErrContains(t, err, "not found")
}
