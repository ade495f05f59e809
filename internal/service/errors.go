package service

import "errors"

var (
	ErrInternal            = errors.New("internal server error")
	ErrPostNotFound        = errors.New("post not found, please check again")
	ErrUserNotFound        = errors.New("user doesn't exist, check authentication")
	ErrNotAuthenticated    = errors.New("user is not authenticated")
	ErrActionNotAllowed    = errors.New("action not allowed")
	ErrTitleMustNotBeEmpty = errors.New("post title must not be empty")
	ErrBodyMustNotBeEmpty  = errors.New("post body must not be empty")
	ErrTagsMustNotBeEmpty  = errors.New("post tags must not be empty")
)
