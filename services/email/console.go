package emailsvc

import (
	"log"
	"net/mail"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/rubiescode/shule/core"
)

var (
	// SentMessages captures every message sent through a console service;
	// inspected by tests.
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

type consoleService struct {
	defaultFromEmail mail.Address
	subjPrefix       string
	disableOutput    bool
	sync             bool
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService() core.EmailService {
	return &consoleService{
		defaultFromEmail: core.Conf.DefaultFromEmail(),
		subjPrefix:       "[" + core.Conf.AppName + "] ",
	}
}

// NewConsoleServiceMock sends synchronously and writes nothing to the
// console; messages only land in SentMessages.
func NewConsoleServiceMock() core.EmailService {
	return &consoleService{
		defaultFromEmail: core.Conf.DefaultFromEmail(),
		subjPrefix:       "[" + core.Conf.AppName + "] ",
		disableOutput:    true,
		sync:             true,
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if svc.sync {
			svc.sendMessage(msg)
		} else {
			go svc.sendMessage(msg)
		}
	}
}

func (svc consoleService) sendMessage(msg *core.EmailMessage) {
	if err := msg.Render(); err != nil {
		log.Printf("%+v", errors.Wrap(err, "rendering email"))
		return
	}
	if msg.HasRecipients() && msg.HasContent() {
		svc.send(*msg)
		mu.Lock()
		SentMessages = append(SentMessages, *msg)
		mu.Unlock()
	}
}

func (svc consoleService) send(msg core.EmailMessage) {
	if svc.disableOutput {
		return
	}

	body := new(strings.Builder)
	body.WriteString("From: " + svc.defaultFromEmail.String() + "\n")
	body.WriteString("To: " + addressList(msg.To) + "\n")
	if len(msg.Cc) > 0 {
		body.WriteString("Cc: " + addressList(msg.Cc) + "\n")
	}
	body.WriteString("Subject: " + svc.subjPrefix + msg.Subject + "\n\n")
	body.WriteString(msg.TextContent + "\n")
	log.Print(body.String())
}

func addressList(addrs []mail.Address) string {
	strs := make([]string, len(addrs))
	for i, addr := range addrs {
		strs[i] = addr.String()
	}
	return strings.Join(strs, ", ")
}

// ClearSentMessages empties the captured message log between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}
