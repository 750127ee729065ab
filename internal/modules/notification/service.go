package notification

import (
	"context"
	"fmt"
	"time"

	"wellnessbook/internal/domain"
)

const defaultListLimit = 50

type Service struct {
	notifications NotificationRepository
	pusher        Pusher
}

func NewService(notifications NotificationRepository, pusher Pusher) *Service {
	return &Service{notifications: notifications, pusher: pusher}
}

// NotifyAppointmentBooked tells the provider about a fresh booking.
func (s *Service) NotifyAppointmentBooked(ctx context.Context, providerUserID int64, a *domain.Appointment) error {
	return s.deliver(ctx, &domain.Notification{
		UserID: providerUserID,
		Type:   domain.NotifAppointmentBooked,
		Title:  "New appointment request",
		Body: fmt.Sprintf("%s on %s at %s",
			a.ServiceName, a.AppointmentDate.Format("2006-01-02"), a.StartTime),
	})
}

// NotifyAppointmentStatus tells the customer about a status change made by the
// provider.
func (s *Service) NotifyAppointmentStatus(ctx context.Context, customerUserID int64, a *domain.Appointment) error {
	var notifType, title string
	switch a.Status {
	case domain.AppointmentConfirmed:
		notifType, title = domain.NotifAppointmentConfirmed, "Appointment confirmed"
	case domain.AppointmentCancelled:
		notifType, title = domain.NotifAppointmentCancelled, "Appointment cancelled"
	case domain.AppointmentNoShow:
		notifType, title = domain.NotifAppointmentNoShow, "Appointment marked as no-show"
	default:
		return nil
	}

	return s.deliver(ctx, &domain.Notification{
		UserID: customerUserID,
		Type:   notifType,
		Title:  title,
		Body: fmt.Sprintf("%s on %s at %s",
			a.ServiceName, a.AppointmentDate.Format("2006-01-02"), a.StartTime),
	})
}

// NotifyOnboardingDecision tells a provider the outcome of the admin review.
func (s *Service) NotifyOnboardingDecision(ctx context.Context, userID int64, p *domain.ProviderProfile) error {
	n := &domain.Notification{UserID: userID}
	switch p.Status {
	case domain.ProviderApproved:
		n.Type = domain.NotifOnboardingApproved
		n.Title = "Profile approved"
		n.Body = "Your provider profile has been approved. You can now publish services."
	case domain.ProviderRejected:
		n.Type = domain.NotifOnboardingRejected
		n.Title = "Profile rejected"
		n.Body = fmt.Sprintf("Your provider profile was rejected: %s", p.RejectedReason)
	default:
		return nil
	}
	return s.deliver(ctx, n)
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	list, err := s.notifications.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	cnt, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return cnt, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	ok, err := s.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

// deliver stores the notification, then pushes a copy over the hub if the
// user is connected. The push is best effort.
func (s *Service) deliver(ctx context.Context, n *domain.Notification) error {
	if err := s.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if s.pusher != nil {
		s.pusher.SendToUser(n.UserID, wsEvent{
			Type:    "notification",
			Payload: n,
			SentAt:  time.Now(),
		})
	}
	return nil
}

type wsEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sent_at"`
}
