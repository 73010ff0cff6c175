package apperrors

import (
	"net/http"
)

/*
Предопределенные ошибки доменов review, auth и http.
*/

// --- HTTP ---

// ErrRouteNotFound - неизвестный путь.
var ErrRouteNotFound = New(
	CodeNotFound,
	"http",
	"Route not found",
	http.StatusNotFound,
)

// ErrMethodNotAllowed - путь существует, но метод не поддерживается.
var ErrMethodNotAllowed = New(
	CodeMethodNotAllowed,
	"http",
	"Method not allowed",
	http.StatusMethodNotAllowed,
)

// --- Reviews ---

// ErrReviewNotFound - отзыв с таким id отсутствует в коллекции.
var ErrReviewNotFound = New(
	CodeNotFound,
	"review",
	"Review not found",
	http.StatusNotFound,
)

// ErrReviewIDRequired - в запросе модерации не передан id.
var ErrReviewIDRequired = New(
	CodeValidationFailed,
	"review",
	"Review ID is required",
	http.StatusBadRequest,
)

// --- Auth ---

// ErrUnauthorized - админский запрос без действительного ключа или токена.
var ErrUnauthorized = New(
	CodeUnauthorized,
	"auth",
	"Unauthorized",
	http.StatusUnauthorized,
)

// ErrInvalidCredentials - неверный пароль администратора.
var ErrInvalidCredentials = New(
	CodeUnauthorized,
	"auth",
	"Invalid admin password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - токен не прошел проверку подписи или истек.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrLoginDisabled - пароль администратора не настроен, выдача токенов выключена.
var ErrLoginDisabled = New(
	CodeUnauthorized,
	"auth",
	"Admin login is not configured",
	http.StatusUnauthorized,
)
