package creds

// CredentialProvider выдаёт bearer-токен для исходящих запросов.
// Инжектируется в HTTP-клиенты вместо чтения глобального состояния,
// чтобы в тестах подставлять фиктивные токены.
type CredentialProvider interface {
	GetToken() string
}

// StaticCredentials — неизменяемый на время сессии токен.
type StaticCredentials struct {
	token string
}

// NewStaticCredentials создаёт провайдера с фиксированным токеном.
func NewStaticCredentials(token string) *StaticCredentials {
	return &StaticCredentials{token: token}
}

func (s *StaticCredentials) GetToken() string {
	return s.token
}

var _ CredentialProvider = (*StaticCredentials)(nil)
