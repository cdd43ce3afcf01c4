package usecase_test

import (
	"context"
	"crypto/md5"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"omnipost/domain/model"
	"omnipost/usecase"
)

type MockUser struct {
	mock.Mock
}

func (m *MockUser) GetById(ctx context.Context, id int) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUser) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	args := m.Called(ctx, userName)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUser) CreateUser(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(MockUser)
	users.On("GetByUserName", mock.Anything, "ada").Return(model.User{
		ID:       1,
		UserName: "ada",
		Password: fmt.Sprintf("%x", md5.Sum([]byte("right-password"))),
	}, nil)

	uc := usecase.NewUserUsecase(users)
	res := uc.Login(context.Background(), model.ReqLogin{UserName: "ada", Password: "wrong-password"})
	assert.Equal(t, "401", res.ResponseCode)
}

func TestLoginUnknownUser(t *testing.T) {
	users := new(MockUser)
	users.On("GetByUserName", mock.Anything, "ghost").Return(model.User{}, assert.AnError)

	uc := usecase.NewUserUsecase(users)
	res := uc.Login(context.Background(), model.ReqLogin{UserName: "ghost", Password: "whatever"})
	assert.Equal(t, "401", res.ResponseCode)
}

func TestLoginWithoutStore(t *testing.T) {
	uc := usecase.NewUserUsecase(nil)
	res := uc.Login(context.Background(), model.ReqLogin{UserName: "ada", Password: "pw"})
	assert.Equal(t, "503", res.ResponseCode)
}

func TestRegisterTakenUserName(t *testing.T) {
	users := new(MockUser)
	users.On("GetByUserName", mock.Anything, "ada").Return(model.User{ID: 1, UserName: "ada"}, nil)

	uc := usecase.NewUserUsecase(users)
	res := uc.Register(context.Background(), model.ReqRegister{Name: "Ada", UserName: "ada", Password: "pw"})
	assert.Equal(t, "400", res.ResponseCode)
}

func TestRegisterCreatesUser(t *testing.T) {
	users := new(MockUser)
	users.On("GetByUserName", mock.Anything, "ada").Return(model.User{}, assert.AnError)
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.UserName == "ada" && u.Name == "Ada"
	})).Return(nil)

	uc := usecase.NewUserUsecase(users)
	res := uc.Register(context.Background(), model.ReqRegister{Name: "Ada", UserName: "ada", Password: "pw"})
	assert.Equal(t, "00", res.ResponseCode)
	users.AssertExpectations(t)
}
