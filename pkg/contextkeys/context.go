package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// AdminPrincipalKey - ключ, по которому AdminAuth кладет *auth.Principal в gin.Context
const AdminPrincipalKey = contextKey("admin_principal")

// String возвращает ключ в виде строки для c.Set / c.Get
func (k contextKey) String() string {
	return string(k)
}
