package notification

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Sender - bildirim kanalı soyutlaması. Gönderim her zaman ateşle-unut:
// sonuç rezervasyon akışını asla etkilemez.
type Sender interface {
	Send(channel Channel, to, message string) error
}

// LogSender - Twilio yapılandırılmadığında devreye girer; mesajı sadece loglar.
type LogSender struct{}

func (LogSender) Send(channel Channel, to, message string) error {
	logrus.WithFields(logrus.Fields{
		"channel": channel,
		"to":      to,
	}).Infof("bildirim (kuru çalışma): %s", message)
	return nil
}

// TwilioSender - Twilio Messages API üzerinden SMS / WhatsApp gönderir.
// Tek bir form POST olduğu için SDK'sız, düz REST çağrısı yapılır.
type TwilioSender struct {
	AccountSID   string
	AuthToken    string
	PhoneNumber  string
	WhatsAppFrom string

	client *http.Client
}

func NewTwilioSender(accountSID, authToken, phoneNumber, whatsAppFrom string) *TwilioSender {
	return &TwilioSender{
		AccountSID:   accountSID,
		AuthToken:    authToken,
		PhoneNumber:  phoneNumber,
		WhatsAppFrom: whatsAppFrom,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *TwilioSender) Send(channel Channel, to, message string) error {
	from := s.PhoneNumber
	if channel == ChannelWhatsApp {
		from = "whatsapp:" + s.WhatsAppFrom
		to = "whatsapp:" + to
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.AccountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.AccountSID, s.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio %d döndürdü", resp.StatusCode)
	}
	return nil
}

// Dispatch - gönderimi ayrı goroutine'de yapar. Hata yalnızca loglanır,
// çağırana asla yansımaz ve yeniden deneme yapılmaz.
func Dispatch(sender Sender, channel Channel, to, message string) {
	ref := uuid.NewString()
	go func() {
		if err := sender.Send(channel, to, message); err != nil {
			logrus.WithFields(logrus.Fields{
				"ref":     ref,
				"channel": channel,
			}).WithError(err).Warn("Bildirim gönderilemedi")
			return
		}
		logrus.WithFields(logrus.Fields{
			"ref":     ref,
			"channel": channel,
		}).Info("Bildirim gönderildi")
	}()
}
