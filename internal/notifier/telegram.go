// Package notifier delivers signal decisions and scanner findings to a
// Telegram chat.
package notifier

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/models"
)

// TelegramNotifier sends messages to one configured chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier authorizes the bot and binds it to a chat.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorization: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// Send delivers one HTML-formatted message.
func (n *TelegramNotifier) Send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Msg("sending telegram message")
		return err
	}
	return nil
}

// SendDecision formats and delivers a signal decision.
func (n *TelegramNotifier) SendDecision(symbol string, decision *models.SignalDecision, risk *models.RiskProfile) error {
	return n.Send(FormatDecision(symbol, decision, risk))
}

// SendMovers formats and delivers the after-hours scanner findings.
func (n *TelegramNotifier) SendMovers(movers []models.AfterHoursMover) error {
	if len(movers) == 0 {
		return nil
	}
	return n.Send(FormatMovers(movers))
}

// FormatDecision renders a decision as a Telegram HTML message.
func FormatDecision(symbol string, decision *models.SignalDecision, risk *models.RiskProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s: %s</b> (confidence %d%%)\n", symbol, decision.Signal, decision.Confidence)
	if decision.OverrideReason != "" {
		fmt.Fprintf(&b, "Override: %s\n", decision.OverrideReason)
	}

	if risk != nil {
		fmt.Fprintf(&b, "\nEntry: %.2f | SL: %.2f | TP: %.2f\nR/R: %.2f | Position: %.1f%%\n",
			risk.EntryPrice, risk.StopLoss, risk.TakeProfit, risk.RiskReward, risk.PositionSizePercent)
	}

	if len(decision.Reasons) > 0 {
		b.WriteString("\n<b>Reasons</b>\n")
		for _, r := range decision.Reasons {
			fmt.Fprintf(&b, "• %s\n", r)
		}
	}
	if len(decision.Warnings) > 0 {
		b.WriteString("\n<b>Warnings</b>\n")
		for _, w := range decision.Warnings {
			fmt.Fprintf(&b, "⚠ %s\n", w)
		}
	}

	return b.String()
}

// FormatMovers renders the after-hours movers list.
func FormatMovers(movers []models.AfterHoursMover) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>After-hours movers (%d)</b>\n", len(movers))
	for _, m := range movers {
		direction := "▲"
		if m.ChangePercent < 0 {
			direction = "▼"
		}
		fmt.Fprintf(&b, "%s %s %+.1f%% at %.2f (vol %.0f, %.2fx)\n",
			direction, m.Symbol, m.ChangePercent, m.Price, m.Volume, m.VolumeRatio)
	}

	return b.String()
}
