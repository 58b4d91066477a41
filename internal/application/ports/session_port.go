package ports

// TokenStore persistencia local del token de sesión (el "local storage" de la consola).
type TokenStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// BearerSetter cabecera Authorization por defecto del cliente de la API remota.
type BearerSetter interface {
	SetToken(token string)
	ClearToken()
}
