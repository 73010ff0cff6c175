package auth

const RoleAdmin = "admin"

// Способы, которыми администратор подтвердил доступ
const (
	MethodAdminKey = "admin_key"
	MethodToken    = "token"
	MethodBypass   = "bypass"
)

// Principal - кто выполняет админский запрос
type Principal struct {
	Subject string
	Role    string
	Method  string
}

// IsAdmin проверяет является ли субъект администратором
func IsAdmin(p *Principal) bool {
	return p != nil && p.Role == RoleAdmin
}
