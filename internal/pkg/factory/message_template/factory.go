package message_template

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"relay/internal/entities"
)

// ParseMode - разметка, в которой написаны шаблоны. Передается каналу вместе с текстом.
const ParseMode = "HTML"

const DefaultProductName = "Taomlar"

var ErrUndefinedStatus = errors.New("no template for status")

type Template struct {
	status entities.OrderStatusType
	body   string
}

func (t Template) Status() entities.OrderStatusType {
	return t.status
}

// Render подставляет экранированные значения. Пустое название продукта заменяется на DefaultProductName.
func (t Template) Render(displayID string, productName *string) string {
	product := DefaultProductName
	if productName != nil && strings.TrimSpace(*productName) != "" {
		product = *productName
	}

	return strings.NewReplacer(
		"{order_id}", html.EscapeString(displayID),
		"{product_name}", html.EscapeString(product),
	).Replace(t.body)
}

type TemplateFactory struct {
	templates map[entities.OrderStatusType]string
}

func New() *TemplateFactory {
	return &TemplateFactory{
		templates: map[entities.OrderStatusType]string{
			entities.OrderConfirmed:  confirmedTemplate,
			entities.OrderReady:      readyTemplate,
			entities.OrderDelivering: deliveringTemplate,
			entities.OrderDelivered:  deliveredTemplate,
		},
	}
}

func (f *TemplateFactory) GetTemplate(status entities.OrderStatusType) (Template, error) {
	body, ok := f.templates[status]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrUndefinedStatus, status)
	}
	return Template{status: status, body: body}, nil
}

const confirmedTemplate = "✨ <b>Yangi buyurtma qabul qilindi!</b>\n\n" +
	"🆔 <b>Buyurtma:</b> <code>{order_id}</code>\n" +
	"🍔 <b>Mahsulot:</b> {product_name}\n" +
	"⏳ <b>Holat:</b> Tasdiqlandi\n\n" +
	"<i>Tez orada taomingizni tayyorlashni boshlaymiz!</i>"

const readyTemplate = "🍳 <b>Buyurtmangiz tayyor bo'ldi!</b>\n\n" +
	"🆔 <b>Buyurtma:</b> <code>{order_id}</code>\n" +
	"🍔 <b>Mahsulot:</b> {product_name}\n" +
	"🏃‍♂️ <b>Holat:</b> Dastavkaga berildi\n\n" +
	"<i>Dastavkachi hozir yo'lga chiqadi.</i>"

const deliveringTemplate = "🚚 <b>Buyurtmangiz yo'lda!</b>\n\n" +
	"🆔 <b>Buyurtma:</b> <code>{order_id}</code>\n" +
	"🍔 <b>Mahsulot:</b> {product_name}\n" +
	"📍 <b>Holat:</b> Yetkazilmoqda\n\n" +
	"<i>Iltimos, kuting, dastavkachi yaqin orada yetib boradi.</i>"

const deliveredTemplate = "✅ <b>Tabriklaymiz! Buyurtma yetkazildi!</b>\n\n" +
	"🆔 <b>Buyurtma:</b> <code>{order_id}</code>\n" +
	"🍔 <b>Mahsulot:</b> {product_name}\n" +
	"🏁 <b>Holat:</b> Yakunlandi\n\n" +
	"<b>Yoqimli ishtaha! 🍽️</b>\n" +
	"<i>Bizni tanlaganingiz uchun rahmat!</i>"
