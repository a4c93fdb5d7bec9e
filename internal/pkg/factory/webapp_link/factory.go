package webapp_link

import (
	"net/url"
	"strconv"
	"strings"

	"relay/internal/entities"
)

const (
	webAppButtonText  = "🍔 Buyurtma berish"
	browserButtonText = "🍔 Buyurtma berish (Browserda)"
)

type Link struct {
	URL        string
	ButtonText string
	// Secure - ссылку можно открыть как Telegram Web App (только https).
	Secure bool
}

type LinkFactory struct {
	websiteURL string
}

func New(websiteURL string) *LinkFactory {
	return &LinkFactory{websiteURL: strings.TrimRight(websiteURL, "?")}
}

// Build добавляет к адресу сайта данные профиля для предзаполнения формы заказа.
// profile может быть nil, тогда передается только telegram_user_id.
func (f *LinkFactory) Build(telegramID int64, profile *entities.Profile) Link {
	query := url.Values{}
	query.Set("telegram_user_id", strconv.FormatInt(telegramID, 10))
	if profile != nil {
		if profile.FullName != "" {
			query.Set("full_name", profile.FullName)
		}
		if profile.Phone != "" {
			query.Set("phone", profile.Phone)
		}
	}

	separator := "?"
	if strings.Contains(f.websiteURL, "?") {
		separator = "&"
	}
	link := f.websiteURL + separator + query.Encode()

	if strings.HasPrefix(link, "https:") {
		return Link{URL: link, ButtonText: webAppButtonText, Secure: true}
	}
	return Link{URL: link, ButtonText: browserButtonText}
}
