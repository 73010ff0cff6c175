package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	ReviewService ReviewService
	AuthService   AuthService
	Notifier      ModerationNotifier
}
