package notifications

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/api"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/types"
)

// MaxListLimit is the backend's hard cap on a notifications page.
const MaxListLimit = 200

type Service struct {
	log *logger.Logger
	api *api.Client
}

func New(log *logger.Logger, apiClient *api.Client) *Service {
	return &Service{
		log: log.With("service", "NotificationsService"),
		api: apiClient,
	}
}

type ListFilter struct {
	Type   string
	IsRead *bool
	Limit  int
	Skip   int
}

func (f ListFilter) encode() string {
	q := url.Values{}
	if t := strings.TrimSpace(f.Type); t != "" {
		q.Set("notification_type", t)
	}
	if f.IsRead != nil {
		q.Set("is_read", strconv.FormatBool(*f.IsRead))
	}
	limit := f.Limit
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]types.NotificationItem, error) {
	var items []types.NotificationItem
	if err := s.api.Get(ctx, "/after-school/notifications/"+filter.encode(), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []types.NotificationItem{}
	}
	return items, nil
}

// MarkRead sets is_read. DismissedAt is untouched; the two flags are
// independent.
func (s *Service) MarkRead(ctx context.Context, notificationID int) (types.NotificationItem, error) {
	var item types.NotificationItem
	endpoint := fmt.Sprintf("/after-school/notifications/%d/read", notificationID)
	if err := s.api.Put(ctx, endpoint, nil, &item); err != nil {
		return types.NotificationItem{}, err
	}
	return item, nil
}

// Dismiss sets dismissed_at without touching is_read.
func (s *Service) Dismiss(ctx context.Context, notificationID int) (types.NotificationItem, error) {
	var item types.NotificationItem
	endpoint := fmt.Sprintf("/after-school/notifications/%d/dismiss", notificationID)
	if err := s.api.Put(ctx, endpoint, nil, &item); err != nil {
		return types.NotificationItem{}, err
	}
	return item, nil
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	return s.api.Post(ctx, "/after-school/notifications/mark-all-as-read", struct{}{}, nil)
}

func (s *Service) GetPreferences(ctx context.Context) (types.NotificationPreference, error) {
	var prefs types.NotificationPreference
	if err := s.api.Get(ctx, "/after-school/notifications/preferences", &prefs); err != nil {
		return types.NotificationPreference{}, err
	}
	return prefs, nil
}

// UpdatePreferences fetches the current preferences, merges the patch with
// explicit field-by-field precedence (set fields win, everything else keeps
// its current value) and PUTs the full merged record.
func (s *Service) UpdatePreferences(ctx context.Context, patch types.PreferencePatch) (types.NotificationPreference, error) {
	current, err := s.GetPreferences(ctx)
	if err != nil {
		return types.NotificationPreference{}, err
	}

	merged := types.MergePreferences(current, patch)
	var updated types.NotificationPreference
	if err := s.api.Put(ctx, "/after-school/notifications/preferences", merged, &updated); err != nil {
		return types.NotificationPreference{}, err
	}
	return updated, nil
}
