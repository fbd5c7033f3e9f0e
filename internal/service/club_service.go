package service

import (
	"strings"
	"time"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"
	"Campus_Hub/internal/repository/mysql"
)

const detailPageSize = 5 // 详情页公告/活动各取 5 条

type ClubService struct {
	repo          *mysql.ClubRepository
	members       *mysql.ClubMemberRepository
	announcements *mysql.AnnouncementRepository
	events        *mysql.EventRepository
	authz         *AuthzService
}

func NewClubService() *ClubService {
	return &ClubService{
		repo:          mysql.NewClubRepository(),
		members:       mysql.NewClubMemberRepository(),
		announcements: mysql.NewAnnouncementRepository(),
		events:        mysql.NewEventRepository(),
		authz:         NewAuthzService(),
	}
}

// ClubSummary 列表项：附带观察者自己的成员状态和两个聚合计数
type ClubSummary struct {
	ID                 uint64  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	Approved           bool    `json:"approved"`
	CreatedByEmail     string  `json:"created_by_email"`
	MemberCount        int64   `json:"member_count"`
	UpcomingEventCount int64   `json:"upcoming_event_count"`
	MembershipStatus   *string `json:"membership_status"`
	MembershipRole     *string `json:"membership_role"`
}

type ClubDetail struct {
	Club          ClubSummary              `json:"club"`
	Members       []model.ClubMember       `json:"members"`
	Announcements []model.ClubAnnouncement `json:"announcements"`
	Events        []mysql.EventWithCount   `json:"events"`
}

type JoinResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *ClubService) summary(club *model.Club, viewerEmail string) (ClubSummary, error) {
	out := ClubSummary{
		ID:             club.ID,
		Name:           club.Name,
		Description:    club.Description,
		Category:       club.Category,
		Approved:       club.Approved,
		CreatedByEmail: club.CreatedByEmail,
	}

	if viewerEmail != "" {
		m, err := s.members.Find(club.ID, viewerEmail)
		if err == nil {
			out.MembershipStatus = &m.Status
			out.MembershipRole = &m.Role
		} else if !mysql.IsNotFound(err) {
			return out, err
		}
	}

	memberCount, err := s.members.CountApproved(club.ID)
	if err != nil {
		return out, err
	}
	out.MemberCount = memberCount

	upcoming, err := s.events.CountUpcoming(club.ID, time.Now())
	if err != nil {
		return out, err
	}
	out.UpcomingEventCount = upcoming
	return out, nil
}

func (s *ClubService) summaries(clubs []model.Club, viewerEmail string) ([]ClubSummary, error) {
	out := make([]ClubSummary, 0, len(clubs))
	for i := range clubs {
		sum, err := s.summary(&clubs[i], viewerEmail)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

// Create 建社团：需要 leader 账号审批通过；名称/简介去空白后不得为空
func (s *ClubService) Create(actor model.Identity, name, description, category string) (*ClubSummary, error) {
	if err := s.authz.EnsureLeaderRole(actor); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, pkg.Invalid("name and description required")
	}
	if _, err := s.repo.FindByName(name); err == nil {
		return nil, pkg.Conflict("club name already taken")
	} else if !mysql.IsNotFound(err) {
		return nil, err
	}

	club := &model.Club{
		Name:           name,
		Description:    description,
		Category:       strings.TrimSpace(category),
		Approved:       false,
		CreatedByEmail: actor.Email,
	}
	if err := s.repo.Create(club, actor.Email); err != nil {
		return nil, err
	}
	sum, err := s.summary(club, actor.Email)
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *ClubService) List(actor model.Identity, f mysql.ClubFilter) ([]ClubSummary, error) {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	clubs, err := s.repo.List(f)
	if err != nil {
		return nil, err
	}
	return s.summaries(clubs, actor.Email)
}

// Mine 观察者已转正的社团
func (s *ClubService) Mine(actor model.Identity) ([]ClubSummary, error) {
	ids, err := s.members.ListApprovedClubIDs(actor.Email)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []ClubSummary{}, nil
	}
	clubs, err := s.repo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	return s.summaries(clubs, actor.Email)
}

// Detail 成员名单可见性：管理员和本社团已审批 leader 看全部状态，
// 其他人只看已转正成员。
func (s *ClubService) Detail(actor model.Identity, clubID uint64) (*ClubDetail, error) {
	club, err := s.repo.FindByID(clubID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("club not found")
		}
		return nil, err
	}

	sum, err := s.summary(club, actor.Email)
	if err != nil {
		return nil, err
	}

	fullRoster := s.authz.EnsureClubLeader(actor, clubID) == nil
	var members []model.ClubMember
	if fullRoster {
		members, err = s.members.ListByClub(clubID)
	} else {
		members, err = s.members.ListByClub(clubID, model.MemberStatusApproved)
	}
	if err != nil {
		return nil, err
	}

	announcements, err := s.announcements.ListRecent(clubID, detailPageSize)
	if err != nil {
		return nil, err
	}
	events, err := s.events.UpcomingByClub(clubID, time.Now(), detailPageSize)
	if err != nil {
		return nil, err
	}

	return &ClubDetail{
		Club:          sum,
		Members:       members,
		Announcements: announcements,
		Events:        events,
	}, nil
}

// Join 加入或重新加入：removed 可以回到 pending，approved 幂等返回。
// 未过管理员审批的社团不开放加入。
func (s *ClubService) Join(actor model.Identity, clubID uint64) (*JoinResult, error) {
	club, err := s.repo.FindByID(clubID)
	if err != nil || !club.Approved {
		return nil, pkg.NotFound("club not available")
	}

	existing, err := s.members.Find(clubID, actor.Email)
	exists := err == nil
	if err != nil && !mysql.IsNotFound(err) {
		return nil, err
	}

	current := ""
	if exists {
		current = existing.Status
	}
	next, serr := model.NextMembershipStatus(current, exists, model.MembershipJoin)
	if serr == model.ErrAlreadyMember {
		return &JoinResult{Status: model.MemberStatusApproved, Message: "already a member"}, nil
	}
	if serr != nil {
		return nil, serr
	}

	if !exists {
		if err := s.members.CreatePending(clubID, actor.Email); err != nil {
			return nil, err
		}
		return &JoinResult{Status: next, Message: "request submitted"}, nil
	}
	if err := s.members.UpdateStatus(existing, next); err != nil {
		return nil, err
	}
	return &JoinResult{Status: next, Message: "membership request updated"}, nil
}

// Leave 退出：无记录或已 removed 报 404
func (s *ClubService) Leave(actor model.Identity, clubID uint64) (*JoinResult, error) {
	if _, err := s.repo.FindByID(clubID); err != nil {
		return nil, pkg.NotFound("club not available")
	}

	existing, err := s.members.Find(clubID, actor.Email)
	exists := err == nil
	if err != nil && !mysql.IsNotFound(err) {
		return nil, err
	}

	current := ""
	if exists {
		current = existing.Status
	}
	next, serr := model.NextMembershipStatus(current, exists, model.MembershipLeave)
	if serr != nil {
		return nil, pkg.NotFound("membership not found")
	}
	if err := s.members.UpdateStatus(existing, next); err != nil {
		return nil, err
	}
	return &JoinResult{Status: next, Message: "left the club"}, nil
}

// ApproveMember 负责人审批成员
func (s *ClubService) ApproveMember(actor model.Identity, clubID uint64, memberEmail string) (*JoinResult, error) {
	if err := s.authz.EnsureClubLeader(actor, clubID); err != nil {
		return nil, err
	}

	memberEmail = strings.ToLower(strings.TrimSpace(memberEmail))
	existing, err := s.members.Find(clubID, memberEmail)
	exists := err == nil
	if err != nil && !mysql.IsNotFound(err) {
		return nil, err
	}

	current := ""
	if exists {
		current = existing.Status
	}
	next, serr := model.NextMembershipStatus(current, exists, model.MembershipApprove)
	if serr != nil {
		return nil, pkg.NotFound("member not found")
	}
	if err := s.members.UpdateStatus(existing, next); err != nil {
		return nil, err
	}
	return &JoinResult{Status: next, Message: "member approved"}, nil
}

// CreateAnnouncement 只有本社团已审批 leader（或管理员）可发公告
func (s *ClubService) CreateAnnouncement(actor model.Identity, clubID uint64, title, body string) (*model.ClubAnnouncement, error) {
	if err := s.authz.EnsureClubLeader(actor, clubID); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(clubID); err != nil {
		return nil, pkg.NotFound("club not found")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, pkg.Invalid("title required")
	}

	a := &model.ClubAnnouncement{ClubID: clubID, Title: title, Body: body}
	if err := s.announcements.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// PendingClubs 管理员视角的待审批社团
func (s *ClubService) PendingClubs(actor model.Identity) ([]ClubSummary, error) {
	if err := s.authz.EnsureAdmin(actor); err != nil {
		return nil, err
	}
	clubs, err := s.repo.ListPending()
	if err != nil {
		return nil, err
	}
	return s.summaries(clubs, "")
}

// ApproveClub 管理员审批社团，leader 成员转正/补建在仓储事务里完成
func (s *ClubService) ApproveClub(actor model.Identity, clubID uint64) (*ClubSummary, error) {
	if err := s.authz.EnsureAdmin(actor); err != nil {
		return nil, err
	}
	club, err := s.repo.Approve(clubID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("club not found")
		}
		return nil, err
	}
	sum, err := s.summary(club, "")
	if err != nil {
		return nil, err
	}
	return &sum, nil
}
