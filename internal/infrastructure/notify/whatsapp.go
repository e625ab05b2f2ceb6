// Package notify envía avisos por WhatsApp vía la API REST de Twilio.
// Es un colaborador de mejor esfuerzo: el caso de uso de pedidos descarta
// los errores de envío después de loguearlos.
package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/pedidos-api/pkg/config"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

// WhatsAppNotifier envía mensajes con las credenciales Twilio configuradas.
type WhatsAppNotifier struct {
	accountSID string
	authToken  string
	from       string
	client     *http.Client
}

// NewWhatsAppNotifier construye el notificador.
func NewWhatsAppNotifier(cfg config.TwilioConfig) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.WhatsAppFrom,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send envía un mensaje de WhatsApp al número indicado.
// Sin credenciales configuradas es un no-op silencioso (entornos de desarrollo).
func (n *WhatsAppNotifier) Send(to, message string) error {
	if n.accountSID == "" || n.authToken == "" {
		return nil
	}
	form := url.Values{
		"From": {"whatsapp:" + n.from},
		"To":   {"whatsapp:" + to},
		"Body": {message},
	}
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", twilioBaseURL, n.accountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("crear request twilio: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(n.accountSID, n.authToken)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("enviar whatsapp: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio respondió %d", resp.StatusCode)
	}
	return nil
}
