package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const messagesURLFormat = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

// TwilioClient sends SMS through the Twilio Messages API. It is
// constructed once at startup and safe for concurrent use.
type TwilioClient struct {
	accountSID string
	authToken  string
	fromNumber string
	dryRun     bool
	httpClient *http.Client
	logger     *zap.Logger
}

func NewTwilioClient(accountSID, authToken, fromNumber string, dryRun bool, logger *zap.Logger) *TwilioClient {
	return &TwilioClient{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		dryRun:     dryRun,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (c *TwilioClient) Send(ctx context.Context, to, body string) error {
	if c.dryRun {
		c.logger.Info("sms dry run", zap.String("to", to), zap.String("body", body))
		return nil
	}

	form := url.Values{
		"To":   {to},
		"From": {c.fromNumber},
		"Body": {body},
	}

	endpoint := fmt.Sprintf(messagesURLFormat, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send sms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
