package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrDeliveryFailed возвращается, когда NotifyService не принял уведомление
	// Вызывающая сторона логирует ошибку и не откатывает бронирование:
	// уведомление best-effort и переотправляется независимым механизмом
	ErrDeliveryFailed = errors.New("notifyservice client: delivery failed")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingConfirmation данные для уведомления о подтверждённом бронировании
type BookingConfirmation struct {
	BookingID     int64  `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	CustomerID    int64  `json:"customer_id"`
	SalonID       int64  `json:"salon_id"`
	BookingDate   string `json:"booking_date"`
}

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет уведомление о подтверждённом бронировании
func (c *Client) SendBookingConfirmation(ctx context.Context, confirmation *BookingConfirmation) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-confirmed", c.baseURL)

	body, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal confirmation: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrDeliveryFailed, resp.StatusCode, string(respBody))
	}

	return nil
}
