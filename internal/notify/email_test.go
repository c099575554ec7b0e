package notify

import (
	"context"
	"net"
	"testing"
	"time"

	"btc-tracker-go/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestEmail_NotifyStallingServerTimesOut(t *testing.T) {
	// Arrange: a server that accepts the connection and never sends the
	// SMTP greeting.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(10 * time.Second) // hold the session open
	}()

	e := &Email{
		host:    "127.0.0.1",
		addr:    ln.Addr().String(),
		from:    "bot@example.com",
		to:      []string{"ops@example.com"},
		timeout: 200 * time.Millisecond,
	}

	// Act
	done := make(chan error, 1)
	go func() {
		done <- e.Notify(context.Background(), Event{Kind: KindDailyReport, Price: 60000})
	}()

	// Assert: the call returns within the timeout bound instead of wedging
	// the cycle indefinitely.
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Notify did not return within the timeout bound")
	}
}

func TestEmail_NotifyHonorsCanceledContext(t *testing.T) {
	e := NewEmail(&config.Email{
		Host:           "127.0.0.1",
		Port:           9, // nothing listens here; the dial must not even start
		From:           "bot@example.com",
		To:             "ops@example.com",
		TimeoutSeconds: 30,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := e.Notify(ctx, Event{Kind: KindOpportunity, Price: 60000})

	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewEmail_DefaultsTimeout(t *testing.T) {
	e := NewEmail(&config.Email{Host: "smtp.example.com", Port: 587, To: "ops@example.com"})

	assert.Equal(t, defaultEmailTimeout, e.timeout)
}
