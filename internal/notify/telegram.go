package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/windwatch/internal/config"
)

// TelegramNotifier sends alerts through the Telegram Bot API, one
// sendMessage call per configured chat ID.
type TelegramNotifier struct {
	botToken   string
	chatIDs    []string
	location   string
	websiteURL string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewTelegramNotifier creates a Telegram notifier from config.
func NewTelegramNotifier(cfg *config.Config, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken:   cfg.TelegramBotToken,
		chatIDs:    cfg.TelegramChatIDs,
		location:   cfg.Location,
		websiteURL: cfg.WebsiteURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://api.telegram.org",
		logger:     logger,
	}
}

func (n *TelegramNotifier) configured() bool {
	return n.botToken != "" && len(n.chatIDs) > 0
}

// Notify sends the alert to every chat ID. Failures for individual chats
// are logged and do not prevent attempting the rest.
func (n *TelegramNotifier) Notify(ctx context.Context, alert Alert) error {
	if !n.configured() {
		n.logger.Error("telegram configuration is incomplete (missing bot token or chat ID)")
		return errors.New("telegram notifier not configured")
	}

	message := markdownMessage(alert, n.location, n.websiteURL)

	var failed int
	for _, chatID := range n.chatIDs {
		if err := n.sendMessage(ctx, chatID, message); err != nil {
			n.logger.Error("failed to send telegram notification", "chat_id", chatID, "error", err)
			failed++
			continue
		}
		n.logger.Info("telegram notification sent", "chat_id", chatID)
	}

	if failed > 0 {
		return fmt.Errorf("failed to deliver to %d of %d chats", failed, len(n.chatIDs))
	}
	return nil
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, chatID, message string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	form := url.Values{
		"chat_id":    {chatID},
		"text":       {message},
		"parse_mode": {"Markdown"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	var apiResp struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, apiResp.Description)
	}
	return nil
}
