package registration

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"relay/internal/entities"
	"relay/pkg/logger"
)

const (
	welcomeBackText   = "👋 <b>Assalomu alaykum, %s!</b>\n\nBuyurtma berish uchun quyidagi tugmani bosing:"
	welcomeNewText    = "👋 <b>Assalomu alaykum, %s!</b>\n\nBizning yetkazib berish botimizga xush kelibsiz! 🍔\nDavom etishdan oldin raqamingizni yuboring:"
	askNameText       = "Rahmat! Endi ismingizni kiriting:"
	repeatNameText    = "Iltimos, ismingizni matn ko'rinishida kiriting:"
	registeredText    = "Tabriklaymiz, %s! Ro'yxatdan muvaffaqiyatli o'tdingiz. ✅"
	orderLinkText     = "🍔 <b>Buyurtma berish</b>\n\nPastdagi tugmani bosing va taomlarimizni ko'ring!"
	startFailedText   = "Xatolik yuz berdi. Iltimos keyinroq qayta urinib ko'ring."
	saveFailedText    = "Xatolik yuz berdi. Iltimos qaytadan urinib ko'ring."
	startCommand      = "/start"
	defaultGuestName  = "mehmon"
	maxFullNameLength = 128
)

type Service struct {
	log       serviceLogger
	profiles  ProfileRepository
	sessions  SessionStore
	txManager TxManager
	links     LinkFactory
}

func New(
	log serviceLogger,
	profiles ProfileRepository,
	sessions SessionStore,
	txManager TxManager,
	links LinkFactory,
) *Service {
	return &Service{
		log:       log,
		profiles:  profiles,
		sessions:  sessions,
		txManager: txManager,
		links:     links,
	}
}

// HandleMessage выбирает обработчик по команде, шагу регистрации и тексту.
// false означает, что сообщение боту не адресовано и отвечать не нужно.
func (s *Service) HandleMessage(ctx context.Context, msg entities.IncomingMessage) (entities.ChatReply, bool) {
	text := strings.TrimSpace(msg.Text)
	if text == startCommand || strings.HasPrefix(text, startCommand+" ") {
		return s.Start(ctx, msg), true
	}

	if session, ok := s.sessions.Get(msg.TelegramID); ok {
		switch session.Step {
		case entities.StepWaitingForContact:
			if msg.ContactPhone != nil {
				return s.SubmitContact(ctx, msg), true
			}
		case entities.StepWaitingForName:
			return s.SubmitName(ctx, msg), true
		}
	}

	if text == entities.OrderButtonText {
		return s.OrderLink(ctx, msg.TelegramID), true
	}
	return entities.ChatReply{}, false
}

// Start приветствует зарегистрированного пользователя или начинает регистрацию.
func (s *Service) Start(ctx context.Context, msg entities.IncomingMessage) entities.ChatReply {
	log := s.log.With(logger.NewField("telegram_id", msg.TelegramID))

	profile, err := s.profiles.GetByTelegramID(ctx, msg.TelegramID)
	switch {
	case err == nil:
		s.sessions.Delete(msg.TelegramID)
		return entities.ChatReply{
			Text:     fmt.Sprintf(welcomeBackText, html.EscapeString(profile.FullName)),
			Keyboard: entities.KeyboardMainMenu,
		}
	case errors.Is(err, ErrProfileNotFound):
		s.sessions.Set(msg.TelegramID, entities.RegistrationSession{
			TelegramID: msg.TelegramID,
			Step:       entities.StepWaitingForContact,
			Username:   msg.Username,
		})
		log.Info("registration started")

		name := strings.TrimSpace(msg.FirstName)
		if name == "" {
			name = defaultGuestName
		}
		return entities.ChatReply{
			Text:     fmt.Sprintf(welcomeNewText, html.EscapeString(name)),
			Keyboard: entities.KeyboardRequestContact,
		}
	default:
		log.Error("failed to load profile on start", logger.NewField("error", err))
		return entities.ChatReply{Text: startFailedText}
	}
}

// SubmitContact сохраняет номер телефона в сессии и просит ввести имя.
func (s *Service) SubmitContact(_ context.Context, msg entities.IncomingMessage) entities.ChatReply {
	session, ok := s.sessions.Get(msg.TelegramID)
	if !ok || session.Step != entities.StepWaitingForContact {
		return entities.ChatReply{Text: startFailedText}
	}

	phone, err := normalizePhone(msg.ContactPhone)
	if err != nil {
		return entities.ChatReply{
			Text:     fmt.Sprintf(welcomeNewText, html.EscapeString(defaultGuestName)),
			Keyboard: entities.KeyboardRequestContact,
		}
	}

	session.Step = entities.StepWaitingForName
	session.Phone = phone
	if msg.Username != nil {
		session.Username = msg.Username
	}
	s.sessions.Set(msg.TelegramID, session)

	return entities.ChatReply{Text: askNameText, Keyboard: entities.KeyboardRemove}
}

// SubmitName создает профиль и завершает регистрацию. При ошибке записи сессия
// сохраняется, чтобы пользователь мог повторить ввод имени.
func (s *Service) SubmitName(ctx context.Context, msg entities.IncomingMessage) entities.ChatReply {
	log := s.log.With(logger.NewField("telegram_id", msg.TelegramID))

	session, ok := s.sessions.Get(msg.TelegramID)
	if !ok || session.Step != entities.StepWaitingForName {
		return entities.ChatReply{Text: startFailedText}
	}

	name, err := normalizeName(msg.Text)
	if err != nil {
		return entities.ChatReply{Text: repeatNameText}
	}

	profile := entities.Profile{
		TelegramID: msg.TelegramID,
		FullName:   name,
		Phone:      session.Phone,
		Username:   session.Username,
	}
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		_, err := s.profiles.GetByTelegramID(ctx, msg.TelegramID)
		if err == nil {
			return ErrProfileExists
		}
		if !errors.Is(err, ErrProfileNotFound) {
			return fmt.Errorf("check profile: %w", err)
		}

		if _, err := s.profiles.Create(ctx, profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	switch {
	case err == nil:
		log.Info("registration completed")
	case errors.Is(err, ErrProfileExists):
		log.Warn("registration completed by a concurrent request")
	default:
		log.Error("failed to save profile", logger.NewField("error", err))
		return entities.ChatReply{Text: saveFailedText}
	}

	s.sessions.Delete(msg.TelegramID)
	return entities.ChatReply{
		Text:     fmt.Sprintf(registeredText, html.EscapeString(name)),
		Keyboard: entities.KeyboardMainMenu,
	}
}

// OrderLink возвращает кнопку со ссылкой на сайт. Если профиль недоступен,
// ссылка строится только по telegram_user_id.
func (s *Service) OrderLink(ctx context.Context, telegramID int64) entities.ChatReply {
	profile, err := s.profiles.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			s.log.Warn("failed to load profile for order link",
				logger.NewField("telegram_id", telegramID),
				logger.NewField("error", err),
			)
		}
		profile = nil
	}

	link := s.links.Build(telegramID, profile)
	return entities.ChatReply{
		Text:     orderLinkText,
		Keyboard: entities.KeyboardOrderLink,
		LinkURL:  link.URL,
		LinkText: link.ButtonText,
	}
}

// PruneSessions удаляет брошенные регистрации.
func (s *Service) PruneSessions() int {
	return s.sessions.Prune()
}

func normalizePhone(raw *string) (string, error) {
	if raw == nil {
		return "", ErrInvalidPhone
	}
	phone := strings.TrimSpace(*raw)
	if phone == "" {
		return "", ErrInvalidPhone
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	return phone, nil
}

func normalizeName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" || strings.HasPrefix(name, "/") {
		return "", ErrInvalidName
	}
	if runes := []rune(name); len(runes) > maxFullNameLength {
		name = string(runes[:maxFullNameLength])
	}
	return name, nil
}
