package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/patient-monitor/internal/config"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

// Client wraps the NotifierService client with domain types and call timeouts.
type Client struct {
	conn *grpc.ClientConn
	api  ServiceClient

	callTimeout time.Duration
	dialOptions []grpc.DialOption
}

// Option configures a Client.
type Option func(*Client)

// WithCallTimeout sets the deadline applied to every call.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithUserAgent sets the user agent sent with every call.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.dialOptions = append(c.dialOptions, grpc.WithUserAgent(userAgent))
		}
	}
}

// WithDialOptions appends raw gRPC dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) {
		c.dialOptions = append(c.dialOptions, opts...)
	}
}

var (
	errAddressRequired = errors.New("address must be provided")
	errAlertRequired   = errors.New("alert must be provided")
)

// Dial creates a client for the notifier at address. The connection is
// established lazily on the first call.
// The transport is insecure; run the notifier on a trusted network.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	client := &Client{
		callTimeout: config.DefaultTimeout,
		dialOptions: []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())},
	}

	for _, opt := range opts {
		opt(client)
	}

	conn, err := grpc.NewClient(address, client.dialOptions...)
	if err != nil {
		return nil, fmt.Errorf("dial notifier: %w", err)
	}

	client.conn = conn
	client.api = NewServiceClient(conn)

	return client, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Notify sends an alert to caregivers.
func (c *Client) Notify(ctx context.Context, alert *patient.Alert) error {
	if alert == nil {
		return errAlertRequired
	}

	request, err := alertToStruct(alert)
	if err != nil {
		return err
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.Notify(callCtx, request); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	return nil
}

// UpdateStatus reports the patient's sleep/wake status.
func (c *Client) UpdateStatus(ctx context.Context, status patient.Status) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.UpdateStatus(callCtx, wrapperspb.String(string(status))); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	return nil
}

// UpdateExpressions reports the accumulated expression durations.
func (c *Client) UpdateExpressions(ctx context.Context, durations patient.ExpressionDurations) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.UpdateExpressions(callCtx, durationsToStruct(durations)); err != nil {
		return fmt.Errorf("update expressions: %w", err)
	}

	return nil
}

// Report fetches the patient report.
func (c *Client) Report(ctx context.Context) (*patient.Report, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.GetReport(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	report, err := DecodeReport(response)
	if err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}

// Alerts fetches up to limit recent alerts, newest first. Zero uses the server default.
func (c *Client) Alerts(ctx context.Context, limit int) ([]patient.Alert, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	//nolint:gosec // Limits are capped by the server.
	response, err := c.api.ListAlerts(callCtx, wrapperspb.Int32(int32(min(limit, MaxAlertLimit))))
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	alerts, err := alertsFromList(response)
	if err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}

	return alerts, nil
}

// callContext returns ctx bounded by the call timeout, if any.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
