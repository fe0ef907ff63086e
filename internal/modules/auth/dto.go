package auth

// LoginRequest — учётные данные. В login можно передать логин, email
// или телефон: запрос в хранилище проверяет все три поля.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
