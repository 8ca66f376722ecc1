package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLinker builds a wa.me deep link that opens a chat with the
// host, pre-filled with the guest's confirmation message.
type WhatsAppLinker struct {
	// Phone in international format, digits only (no plus sign).
	Phone string
}

func (l WhatsAppLinker) ConfirmationLink(guestName string) string {
	phone := strings.TrimLeft(strings.TrimSpace(l.Phone), "+")
	if phone == "" {
		return ""
	}
	name := strings.TrimSpace(guestName)
	text := fmt.Sprintf("Hola quiero confirmar mi reserva para %s", name)
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text))
}
