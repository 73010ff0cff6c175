package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	ReviewHandler *ReviewHandler
	HealthHandler *HealthHandler
}
