package notifier

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

// startServer serves fake over an in-memory listener and returns a client for it.
func startServer(t *testing.T, fake *fakeService) *Client {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(LoggingInterceptor(context.Background())))
	RegisterServiceServer(server, NewServer(fake))

	go func() { _ = server.Serve(listener) }()

	t.Cleanup(server.Stop)

	client, err := Dial(context.Background(), "passthrough:///bufnet",
		WithCallTimeout(5*time.Second),
		WithUserAgent("patient-monitor-test"),
		WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		})),
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// TestDial_ValidatesAddress rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.ErrorIs(t, err, errAddressRequired)
	require.Nil(t, c)

	require.NoError(t, (*Client)(nil).Close())
}

// TestClient_callContext applies the call timeout only when set.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := new(Client)

	ctx, cancel := c.callContext(context.Background())
	_, hasDeadline := ctx.Deadline()

	cancel()
	require.False(t, hasDeadline)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_Roundtrip drives every RPC through a real gRPC server.
func TestClient_Roundtrip(t *testing.T) {
	t.Parallel()

	fake := newFakeService()
	client := startServer(t, fake)
	ctx := context.Background()

	require.ErrorIs(t, client.Notify(ctx, nil), errAlertRequired)

	alert := &patient.Alert{
		EventID:    "e-1",
		Action:     patient.WashroomRequested,
		Message:    "🚨 Patient Alert: Washroom Requested",
		Actor:      &patient.Actor{Hostname: "ward-3", Username: "monitor"},
		ReceivedAt: time.Date(2026, 3, 4, 5, 6, 7, 8, time.UTC),
	}
	require.NoError(t, client.Notify(ctx, alert))

	require.NoError(t, client.UpdateStatus(ctx, patient.Sleeping))

	durations := patient.ExpressionDurations{Happy: 1500 * time.Millisecond, Neutral: time.Hour}
	require.NoError(t, client.UpdateExpressions(ctx, durations))

	report, err := client.Report(ctx)
	require.NoError(t, err)
	require.Equal(t, patient.Sleeping, report.Status)
	require.Equal(t, durations, report.Durations)
	require.Equal(t, alert, report.LastAlert)

	alerts, err := client.Alerts(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []patient.Alert{*alert}, alerts)

	err = client.UpdateStatus(ctx, patient.Status("Dozing"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}
