package usecase

import (
	"context"
	"crypto/md5"
	"fmt"

	"omnipost/domain/dto"
	"omnipost/domain/model"
	"omnipost/domain/repository"
	"omnipost/infrastructure/logger"
	"omnipost/infrastructure/utils"
)

type IUserUsecase interface {
	Login(ctx context.Context, req model.ReqLogin) dto.Res
	Register(ctx context.Context, req model.ReqRegister) dto.Res
}

type UserUsecase struct {
	userRepository repository.IUser
}

func NewUserUsecase(userRepository repository.IUser) IUserUsecase {
	return &UserUsecase{userRepository: userRepository}
}

func (u *UserUsecase) Login(ctx context.Context, req model.ReqLogin) dto.Res {
	var res dto.Res
	res.ResponseCode = "401"
	res.ResponseMessage = "Invalid user name or password"

	if u.userRepository == nil {
		res.ResponseCode = "503"
		res.ResponseMessage = "User store is unavailable"
		return res
	}

	user, err := u.userRepository.GetByUserName(ctx, req.UserName)
	if err != nil {
		logger.GetLogger().WithField("user_name", req.UserName).Info("user not found")
		return res
	}
	hashed := fmt.Sprintf("%x", md5.Sum([]byte(req.Password)))
	if user.Password != hashed {
		return res
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("failed to sign token")
		res.ResponseCode = "500"
		res.ResponseMessage = "General error"
		return res
	}

	res.ResponseCode = "00"
	res.ResponseMessage = "Success"
	res.Data = map[string]string{"token": token}
	return res
}

func (u *UserUsecase) Register(ctx context.Context, req model.ReqRegister) dto.Res {
	var res dto.Res
	res.ResponseCode = "00"
	res.ResponseMessage = "Success"

	if u.userRepository == nil {
		res.ResponseCode = "503"
		res.ResponseMessage = "User store is unavailable"
		return res
	}

	if _, err := u.userRepository.GetByUserName(ctx, req.UserName); err == nil {
		res.ResponseCode = "400"
		res.ResponseMessage = "User name already taken"
		return res
	}

	user := model.User{
		Name:      req.Name,
		UserName:  req.UserName,
		Password:  req.Password,
		CreatedAt: utils.GetCurrentTime(),
		UpdatedAt: utils.GetCurrentTime(),
	}
	if err := u.userRepository.CreateUser(ctx, user); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed to create user")
		res.ResponseCode = "500"
		res.ResponseMessage = "General error"
		return res
	}
	return res
}
