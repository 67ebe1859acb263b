package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"pistas/internal/logger"
	"pistas/internal/metrics"
	"pistas/internal/reservation"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "notifications"
	failedQueueKey = "notifications:failed"
	maxTries       = 3
)

// Job is a front desk notification waiting in the redis queue.
type Job struct {
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues reservation lifecycle notifications to the club's front desk
// mailbox and drains the queue through SMTP in the background.
type Service struct {
	redis    *redis.Client
	from     string
	to       string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, notifyEmail, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		to:       notifyEmail,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

// NewWithClient is used by tests to inject a mock redis client.
func NewWithClient(client *redis.Client, fromEmail, notifyEmail string) *Service {
	return &Service{redis: client, from: fromEmail, to: notifyEmail}
}

func (s *Service) enqueue(ctx context.Context, notifType, subject, body string) error {
	job := Job{
		Type:    notifType,
		Subject: subject,
		Body:    body,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue notification %q: %v", subject, err)
		metrics.RecordNotification(notifType, "queue_error")
		return err
	}

	metrics.RecordNotification(notifType, "queued")
	logger.Infof("Notification queued: %s", subject)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}
	metrics.NotificationQueueLength.Set(float64(s.QueueLength(ctx)))

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send notification %q: %v", job.Subject, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
		} else {
			s.saveFailed(job, err)
			metrics.RecordNotification(job.Type, "failed")
		}
		return
	}

	metrics.RecordNotification(job.Type, "sent")
	logger.Infof("Notification sent: %s", job.Subject)
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s\r\n", s.from)
	message += fmt.Sprintf("To: %s\r\n", s.to)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{s.to}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Notification moved to failed queue: %s", job.Subject)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func describe(res *reservation.ReservationWithCourt) string {
	return fmt.Sprintf(`Pista: %s (%s)
Fecha: %s
Horario: %s - %s
Socio: %s (%s)
Importe: %.2f EUR
Estado: %s`,
		res.CourtName, res.CourtType,
		res.Date,
		res.StartTime, res.EndTime,
		res.RequesterName, res.RequesterID,
		float64(res.PriceCents)/100,
		res.Status,
	)
}

func (s *Service) ReservationCreated(ctx context.Context, res *reservation.ReservationWithCourt) {
	subject := fmt.Sprintf("Nueva reserva #%d - %s", res.ID, res.CourtName)
	_ = s.enqueue(ctx, "created", subject, describe(res))
}

func (s *Service) ReservationPaid(ctx context.Context, res *reservation.ReservationWithCourt) {
	subject := fmt.Sprintf("Reserva pagada #%d - %s", res.ID, res.CourtName)
	_ = s.enqueue(ctx, "paid", subject, describe(res))
}

func (s *Service) ReservationCancelled(ctx context.Context, res *reservation.ReservationWithCourt) {
	subject := fmt.Sprintf("Reserva cancelada #%d - %s", res.ID, res.CourtName)
	_ = s.enqueue(ctx, "cancelled", subject, describe(res))
}
