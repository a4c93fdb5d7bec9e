package notification

import "errors"

var (
	ErrRecipientBlocked = errors.New("recipient blocked the bot")
	ErrBadRequest       = errors.New("bad request")
	ErrEmptyText        = errors.New("message text is empty")
	ErrInvalidRecipient = errors.New("recipient id is required")
)
