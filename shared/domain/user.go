package domain

import "time"

type User struct {
	Id        UserId    `json:"id"`
	Username  Username  `json:"username"`
	PassHash  string    `json:"-"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Credentials struct {
	Username Username
	Password Password
}
