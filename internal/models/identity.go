package models

// IdentityKind — вид владельца персональных данных.
type IdentityKind string

const (
	// IdentityUser — аутентифицированный пользователь.
	IdentityUser IdentityKind = "user"
	// IdentitySession — анонимная сессия.
	IdentitySession IdentityKind = "session"
)

// Identity — единица персонализации: пользователь ИЛИ анонимная сессия.
// Инвариант «ровно один владелец» обеспечивается конструкторами:
// поля неэкспортируемые, собрать значение с двумя владельцами нельзя.
type Identity struct {
	kind IdentityKind
	id   string
}

// UserIdentity создаёт идентичность аутентифицированного пользователя.
func UserIdentity(id string) Identity {
	return Identity{kind: IdentityUser, id: id}
}

// SessionIdentity создаёт идентичность анонимной сессии.
func SessionIdentity(id string) Identity {
	return Identity{kind: IdentitySession, id: id}
}

// Kind возвращает вид владельца.
func (i Identity) Kind() IdentityKind { return i.kind }

// ID возвращает идентификатор владельца.
func (i Identity) ID() string { return i.id }

// IsZero — true для пустой (несозданной) идентичности.
func (i Identity) IsZero() bool { return i.kind == "" || i.id == "" }

// Key — стабильный строковый ключ вида "user:<id>" / "session:<id>".
// Используется хранилищем предпочтений и как префикс ключей кэша ленты.
func (i Identity) Key() string {
	return string(i.kind) + ":" + i.id
}
