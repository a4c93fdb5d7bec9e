package profile

import "time"

type ProfileDB struct {
	TelegramID int64
	FullName   string
	Phone      string
	Username   *string
	CreatedAt  time.Time
}
