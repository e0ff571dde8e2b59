package domain

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrInvalidUserName = errors.New("invalid username")
var ErrInvalidPassword = errors.New("invalid password")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidToken = errors.New("invalid or expired token")
