package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"
	"Campus_Hub/internal/repository/mysql"
	"Campus_Hub/internal/repository/redis"
)

const defaultTrendingLimit = 5

type EventService struct {
	repo          *mysql.EventRepository
	registrations *mysql.RegistrationRepository
	clubs         *mysql.ClubRepository
	outbox        *mysql.OutboxRepository
	trending      *redis.TrendingRepository
	authz         *AuthzService
}

func NewEventService() *EventService {
	return &EventService{
		repo:          mysql.NewEventRepository(),
		registrations: mysql.NewRegistrationRepository(),
		clubs:         mysql.NewClubRepository(),
		outbox:        mysql.NewOutboxRepository(),
		trending:      &redis.TrendingRepository{},
		authz:         NewAuthzService(),
	}
}

type EventInput struct {
	ClubID     *uint64   `json:"club_id"`
	Title      string    `json:"title"`
	StartsAt   time.Time `json:"starts_at"`
	Location   string    `json:"location"`
	Capacity   int       `json:"capacity"`
	PriceCents int       `json:"price_cents"`
	Category   string    `json:"category"`
}

type RegistrationResult struct {
	RegistrationID uint64 `json:"registration_id"`
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
}

type MyRegistration struct {
	ID    uint64               `json:"id"`
	Event mysql.EventWithCount `json:"event"`
}

// Create 社团活动要求该社团的已审批 leader；全校活动（club_id 为空）
// 放开给所有已审批 leader 和管理员。
func (s *EventService) Create(actor model.Identity, in EventInput) (*mysql.EventWithCount, error) {
	if in.ClubID != nil {
		if err := s.authz.EnsureClubLeader(actor, *in.ClubID); err != nil {
			return nil, err
		}
		if _, err := s.clubs.FindByID(*in.ClubID); err != nil {
			return nil, pkg.NotFound("club not found")
		}
	} else {
		if err := s.authz.EnsureLeaderRole(actor); err != nil {
			return nil, err
		}
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	if in.Title == "" || in.Location == "" {
		return nil, pkg.Invalid("title and location required")
	}
	if in.StartsAt.IsZero() {
		return nil, pkg.Invalid("starts_at required")
	}
	if in.Capacity < 0 || in.PriceCents < 0 {
		return nil, pkg.Invalid("capacity and price_cents must be non-negative")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "general"
	}

	ev := &model.Event{
		ClubID:     in.ClubID,
		Title:      in.Title,
		StartsAt:   in.StartsAt,
		Location:   in.Location,
		Capacity:   in.Capacity,
		PriceCents: in.PriceCents,
		Category:   category,
	}
	if err := s.repo.Create(ev); err != nil {
		return nil, err
	}
	return &mysql.EventWithCount{Event: *ev}, nil
}

// List start 缺省为当前时间，历史活动默认不返回
func (s *EventService) List(f mysql.EventFilter) ([]mysql.EventWithCount, error) {
	if f.Start == nil {
		now := time.Now()
		f.Start = &now
	}
	if f.Sort == "" {
		f.Sort = mysql.SortByDate
	}
	return s.repo.List(f)
}

// Trending 先查缓存，miss 或 redis 不可用时回源并回填
func (s *EventService) Trending(ctx context.Context, limit int) ([]mysql.EventWithCount, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	if cached, ok, err := s.trending.Get(ctx, limit); err == nil && ok {
		var list []mysql.EventWithCount
		if jsonErr := json.Unmarshal([]byte(cached), &list); jsonErr == nil {
			return list, nil
		}
	}

	list, err := s.repo.Trending(time.Now(), limit)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(list); jsonErr == nil {
		if cacheErr := s.trending.Set(ctx, limit, string(payload)); cacheErr != nil {
			log.Printf("trending cache set err: %v", cacheErr)
		}
	}
	return list, nil
}

// Delete 授权按归属分派：社团活动找社团 leader，全校活动只有管理员。
// 删除连带清掉全部报名记录。
func (s *EventService) Delete(actor model.Identity, eventID uint64) error {
	ev, err := s.repo.FindByID(eventID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return pkg.NotFound("event not found")
		}
		return err
	}

	if clubID, clubOwned := ev.OwnerClub(); clubOwned {
		if err := s.authz.EnsureClubLeader(actor, clubID); err != nil {
			return err
		}
	} else {
		if err := s.authz.EnsureAdmin(actor); err != nil {
			return err
		}
	}
	return s.repo.DeleteCascade(eventID)
}

// Register 报名：容量控制和幂等都在仓储事务里；通知只在真正新报名时
// 投递，失败只打日志，不影响报名结果。
func (s *EventService) Register(ctx context.Context, actor model.Identity, eventID uint64) (*RegistrationResult, error) {
	reg, already, err := s.registrations.Register(ctx, eventID, actor.Email)
	if err != nil {
		return nil, err
	}
	if already {
		return &RegistrationResult{
			RegistrationID: reg.ID,
			Status:         "ok",
			Message:        "already registered",
		}, nil
	}

	if ev, ferr := s.repo.FindByID(eventID); ferr == nil {
		s.enqueueRegistrationNotices(ctx, actor.Email, ev)
	}
	return &RegistrationResult{RegistrationID: reg.ID, Status: "ok"}, nil
}

// 报名确认走 email + push 双通道，先落 outbox 再由 relayer 异步投递
func (s *EventService) enqueueRegistrationNotices(ctx context.Context, email string, ev *model.Event) {
	rows := []*model.NotificationOutbox{
		{
			Channel:   model.NotifyChannelEmail,
			Recipient: email,
			Subject:   "Registration confirmed",
			Body:      pkg.RegistrationEmailHTML(ev.Title, ev.Location),
		},
		{
			Channel:   model.NotifyChannelPush,
			Recipient: email,
			Subject:   "Registration confirmed",
			Body:      "See you at " + ev.Location,
		},
	}
	if err := s.outbox.Enqueue(ctx, rows...); err != nil {
		log.Printf("notification enqueue err: %v", err)
	}
}

func (s *EventService) Unregister(ctx context.Context, actor model.Identity, eventID uint64) error {
	return s.registrations.Unregister(ctx, eventID, actor.Email)
}

// MyRegistrations 按活动开始时间升序；活动已删除的报名不会出现（内连接）
func (s *EventService) MyRegistrations(actor model.Identity) ([]MyRegistration, error) {
	regs, err := s.registrations.ListByUser(actor.Email)
	if err != nil {
		return nil, err
	}
	if len(regs) == 0 {
		return []MyRegistration{}, nil
	}

	ids := make([]uint64, 0, len(regs))
	for _, r := range regs {
		ids = append(ids, r.EventID)
	}
	events, err := s.repo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]mysql.EventWithCount, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	out := make([]MyRegistration, 0, len(regs))
	for _, r := range regs {
		ev, ok := byID[r.EventID]
		if !ok {
			continue
		}
		out = append(out, MyRegistration{ID: r.ID, Event: ev})
	}
	return out, nil
}
