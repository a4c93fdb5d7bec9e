package entities

// OrderButtonText - текст кнопки главного меню, по которой бот присылает ссылку на сайт.
const OrderButtonText = "🍔 Buyurtma berish"

type RegistrationStep string

const (
	StepWaitingForContact RegistrationStep = "waiting_for_contact"
	StepWaitingForName    RegistrationStep = "waiting_for_name"
)

// RegistrationSession - незавершенная регистрация пользователя в чате.
type RegistrationSession struct {
	TelegramID int64
	Step       RegistrationStep
	Phone      string
	Username   *string
}

// ChatReply - ответ бота пользователю. Keyboard задает, какую клавиатуру прикрепить.
type ChatReply struct {
	Text     string
	Keyboard KeyboardKind
	// LinkURL и LinkText заполнены только для KeyboardOrderLink.
	LinkURL  string
	LinkText string
}

type KeyboardKind int

const (
	KeyboardNone KeyboardKind = iota
	KeyboardRequestContact
	KeyboardRemove
	KeyboardMainMenu
	KeyboardOrderLink
)

// IncomingMessage - нормализованное сообщение из чата.
type IncomingMessage struct {
	TelegramID   int64
	ChatID       int64
	FirstName    string
	Username     *string
	Text         string
	ContactPhone *string
}
