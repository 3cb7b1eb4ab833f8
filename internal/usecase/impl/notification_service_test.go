package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestDeliveryService(t *testing.T) (
	usecase.NotificationDeliveryUsecase,
	*mockSvc.MockPushNotificationService,
	*mockSvc.MockMailer,
) {
	pushSvc := mockSvc.NewMockPushNotificationService(t)
	mailer := mockSvc.NewMockMailer(t)

	cfg := &config.Config{
		Notification: &config.NotificationConfig{
			AdminTopic:  "admin-alerts",
			AdminEmails: []string{"reviews@storefront.local", "lead@storefront.local"},
		},
	}

	svc := NewNotificationDeliveryService(NotificationDeliveryParams{
		PushSvc: pushSvc,
		Mailer:  mailer,
		Config:  cfg,
		Logger:  newDiscardLogger(),
	})

	return svc, pushSvc, mailer
}

func testSummary() *service.ApplicationSummary {
	return &service.ApplicationSummary{
		ApplicationID: "0192a3b4-0000-7000-8000-000000000001",
		ApplicantName: "Kandy Owner",
		Email:         "a@x.com",
		StoreName:     "Kandy Crafts",
		DesiredSlug:   "kandy-crafts",
		DocumentCount: 2,
		SubmittedAt:   time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestNotificationDelivery_AdminAlert(t *testing.T) {
	svc, pushSvc, mailer := createTestDeliveryService(t)
	ctx := context.Background()

	pushSvc.EXPECT().
		SendToTopic(mock.Anything, "admin-alerts", "New business application", mock.Anything,
			map[string]string{"application_id": testSummary().ApplicationID, "desired_slug": "kandy-crafts"}).
		Return(nil).Once()
	mailer.EXPECT().
		Send(mock.Anything, "reviews@storefront.local", "New business application", mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Requested slug: kandy-crafts") && strings.Contains(body, "Documents: 2")
		})).
		Return(nil).Once()
	mailer.EXPECT().Send(mock.Anything, "lead@storefront.local", mock.Anything, mock.Anything).Return(nil).Once()

	err := svc.Deliver(ctx, &service.NotificationEvent{
		EventID:     "evt-1",
		Type:        service.NotificationEventAdminAlert,
		Application: testSummary(),
	})
	require.NoError(t, err)
}

func TestNotificationDelivery_AdminAlertPartialFailureIsRetryable(t *testing.T) {
	svc, pushSvc, mailer := createTestDeliveryService(t)

	pushSvc.EXPECT().SendToTopic(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("fcm unavailable")).Once()
	mailer.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	err := svc.Deliver(context.Background(), &service.NotificationEvent{
		Type:        service.NotificationEventAdminAlert,
		Application: testSummary(),
	})
	require.Error(t, err)
	assert.True(t, usecase.IsRetryable(err))
	assert.Contains(t, err.Error(), "fcm unavailable")
}

func TestNotificationDelivery_MailEvents(t *testing.T) {
	svc, _, mailer := createTestDeliveryService(t)
	ctx := context.Background()

	mailer.EXPECT().
		Send(mock.Anything, "a@x.com", "We received your application", mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Kandy Crafts")
		})).
		Return(nil).Once()
	mailer.EXPECT().
		Send(mock.Anything, "b@x.com", "Set up your storefront account", mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "https://app.example.com/setup?token=abc")
		})).
		Return(errors.New("connection refused")).Once()

	require.NoError(t, svc.Deliver(ctx, &service.NotificationEvent{
		Type:        service.NotificationEventApplicantReceipt,
		Recipient:   "a@x.com",
		Application: testSummary(),
	}))

	err := svc.Deliver(ctx, &service.NotificationEvent{
		Type:      service.NotificationEventPasswordSetup,
		Recipient: "b@x.com",
		SetupLink: "https://app.example.com/setup?token=abc",
	})
	require.Error(t, err)
	assert.True(t, usecase.IsRetryable(err))
}

func TestNotificationDelivery_MalformedEventsAreNotRetried(t *testing.T) {
	svc, _, _ := createTestDeliveryService(t)
	ctx := context.Background()

	events := []*service.NotificationEvent{
		nil,
		{Type: "order_shipped"},
		{Type: service.NotificationEventAdminAlert},
		{Type: service.NotificationEventApplicantReceipt, Application: testSummary()},
		{Type: service.NotificationEventPasswordSetup, Recipient: "a@x.com"},
	}

	for _, event := range events {
		err := svc.Deliver(ctx, event)
		require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		assert.False(t, usecase.IsRetryable(err))
	}
}
