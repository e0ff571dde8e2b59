package handler

import "github.com/Vince489/Auth/internal/core/domain"

type registerRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message  string `json:"message"`
	CodeName string `json:"codeName"`
}

type loginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type sessionUserResponse struct {
	User domain.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
