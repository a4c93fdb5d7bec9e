package entities

import "time"

type Profile struct {
	TelegramID int64
	FullName   string
	Phone      string
	Username   *string
	CreatedAt  time.Time
}
