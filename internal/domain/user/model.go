package user

import "time"

type User struct {
	ID        int       `json:"id"`
	Login     string    `json:"login"`
	Password  string    `json:"-"` // bcrypt-хэш
	CreatedAt time.Time `json:"created_at"`
}

type BaseRequest struct {
	Login    string `json:"login" doc:"Имя пользователя"`
	Password string `json:"password" doc:"Пароль"`
}

type RegisterRequest struct {
	Login           string `json:"login" doc:"Имя пользователя, от 3 символов"`
	Password        string `json:"password" doc:"Пароль"`
	PasswordConfirm string `json:"password_confirm" doc:"Повтор пароля"`
}
