package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmationLink(t *testing.T) {
	linker := WhatsAppLinker{Phone: "5493513433116"}
	link := linker.ConfirmationLink("Ana García")
	assert.Contains(t, link, "https://wa.me/5493513433116?text=")
	assert.Contains(t, link, "confirmar+mi+reserva")
	assert.NotContains(t, link, " ")
}

func TestConfirmationLinkStripsPlusPrefix(t *testing.T) {
	linker := WhatsAppLinker{Phone: "+5493513433116"}
	assert.Contains(t, linker.ConfirmationLink("Ana"), "wa.me/5493513433116")
}

func TestConfirmationLinkWithoutPhone(t *testing.T) {
	assert.Empty(t, WhatsAppLinker{}.ConfirmationLink("Ana"))
}
