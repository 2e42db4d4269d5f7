package email

import (
	"bytes"
	"fmt"
	"log"
	"net/smtp"
	"strconv"
	"text/template"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	FromName string
	FromAddr string
}

func (c *Config) Send(to, subject, body string) error {
	if to == "" {
		log.Printf("[email] destinatario vacío")
		return fmt.Errorf("destinatario de email vacío")
	}
	if c.Host == "" {
		log.Printf("[email] SMTP host vacío (destinatario=%s)", to)
		return fmt.Errorf("SMTP host no configurado")
	}
	if c.FromAddr == "" {
		log.Printf("[email] SMTP FromAddr vacío (destinatario=%s)", to)
		return fmt.Errorf("remitente SMTP no configurado")
	}
	port := c.Port
	if port == 0 {
		port = 25
	}
	addr := fmt.Sprintf("%s:%d", c.Host, port)
	from := c.FromAddr
	if c.FromName != "" {
		from = fmt.Sprintf("%s <%s>", c.FromName, c.FromAddr)
	}
	var buf bytes.Buffer
	buf.WriteString("From: " + from + "\r\n")
	buf.WriteString("To: " + to + "\r\n")
	buf.WriteString("Subject: " + subject + "\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	if err := smtp.SendMail(addr, c.authForSend(), c.FromAddr, []string{to}, buf.Bytes()); err != nil {
		log.Printf("[email] fallo enviando a %s asunto=%q: %v", to, subject, err)
		return err
	}
	log.Printf("[email] enviado a %s asunto=%q", to, subject)
	return nil
}

// authForSend returns nil when User is empty (e.g. MailHog), so no AUTH is sent.
func (c *Config) authForSend() smtp.Auth {
	if c.User != "" {
		return smtp.PlainAuth("", c.User, c.Pass, c.Host)
	}
	return nil
}

func (c *Config) SendWelcome(to, fullName, tempPassword, loginURL string) error {
	tpl := `Hola, {{.FullName}},

Se ha creado tu cuenta en AgendaPsico. Tu contraseña temporal es:

{{.TempPassword}}

Accede en {{.LoginURL}} y cámbiala en tu primer inicio de sesión. Si no esperabas este correo, ignóralo.`
	t, err := template.New("").Parse(tpl)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	if err := t.Execute(&b, map[string]string{"FullName": fullName, "TempPassword": tempPassword, "LoginURL": loginURL}); err != nil {
		return err
	}
	return c.Send(to, "Bienvenida a AgendaPsico", b.String())
}

func (c *Config) SendAppointmentReminder(to, fullName, date, startTime string) error {
	tpl := `Hola, {{.FullName}},

Te recordamos tu cita del {{.Date}} a las {{.StartTime}}.

Si no puedes asistir, contacta con el centro para reprogramarla.`
	t, err := template.New("").Parse(tpl)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	if err := t.Execute(&b, map[string]string{"FullName": fullName, "Date": date, "StartTime": startTime}); err != nil {
		return err
	}
	return c.Send(to, "Recordatorio de cita - AgendaPsico", b.String())
}

// LogConfigSummary logs the SMTP config (without the password).
func (c *Config) LogConfigSummary() {
	auth := "no"
	if c.User != "" {
		auth = "sí (user=" + c.User + ")"
	}
	log.Printf("[email] config SMTP: host=%s port=%d from=%q auth=%s", c.Host, c.Port, c.FromAddr, auth)
	if c.Host == "" || c.FromAddr == "" {
		log.Printf("[email] aviso: host o from vacío; los envíos pueden fallar")
	}
}

func PortFromString(s string) int {
	n, err := strconv.Atoi(s)
	_ = err
	return n
}
