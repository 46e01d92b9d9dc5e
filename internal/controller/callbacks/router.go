package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/member"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================
// These constants define the callback data formats used throughout the bot

// Common callbacks
const (
	BackToMain = "back_to_main"
	Noop       = "noop"
)

// Member callbacks - каталог, карточка группы и вступление
const (
	MyGroups     = "my_groups"
	Discover     = "discover"
	DiscoverPage = "discover_page:" // discover_page:2

	DiscSearch      = "disc_search"
	DiscSearchClear = "disc_search_clear"
	DiscCourse      = "disc_course"
	DiscCourseSet   = "disc_course_set:" // disc_course_set:CS101
	DiscSize        = "disc_size"
	DiscSizeSet     = "disc_size_set:" // disc_size_set:11_25
	DiscRating      = "disc_rating"
	DiscRatingSet   = "disc_rating_set:" // disc_rating_set:4
	DiscReset       = "disc_reset"

	ViewGroup          = "view_group:"           // view_group:123
	ViewGroupCard      = "view_group_card:"      // view_group_card:123
	JoinGroup          = "join_group:"           // join_group:123
	JoinRequestConfirm = "join_request_confirm:" // join_request_confirm:123
	LeaveGroup         = "leave_group:"          // leave_group:123
	ConfirmLeave       = "confirm_leave:"        // confirm_leave:123
)

// Admin callbacks - управление группой
const (
	ManageGroup    = "manage_group:"    // manage_group:123
	ManageMembers  = "manage_members:"  // manage_members:123
	ManageRequests = "manage_requests:" // manage_requests:123
	EditDetails    = "edit_details:"    // edit_details:123

	MemberActions = "member_actions:" // member_actions:group_id:user_id
	SetRole       = "set_role:"       // set_role:group_id:user_id:ADMIN
	RemoveMember  = "remove_member:"  // remove_member:group_id:user_id
	ConfirmRemove = "confirm_remove:" // confirm_remove:group_id:user_id

	ViewRequester = "view_requester:" // view_requester:group_id:request_id
	RequestDecide = "request_decide:" // request_decide:group_id:request_id:APPROVED
)

// Create group wizard callbacks
const (
	CreateGroup   = "create_group"
	CgPrivacy     = "cg_privacy:" // cg_privacy:private
	CgPasskeySkip = "cg_passkey_skip"
	CgNoLimit     = "cg_no_limit"
	CgCourse      = "cg_course:" // cg_course:CS101
	CgConfirm     = "cg_confirm"
	CgCancel      = "cg_cancel"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("telegram_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	// Route callback to appropriate handler
	switch {
	// ===== Common Navigation =====
	case data == BackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == Noop:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Member: Lists =====
	case data == MyGroups:
		member.HandleMyGroups(ctx, b, callback, h)
	case data == Discover:
		member.HandleDiscover(ctx, b, callback, h)
	case strings.HasPrefix(data, DiscoverPage):
		member.HandleDiscoverPage(ctx, b, callback, h)

	// ===== Member: Discover Filters =====
	case data == DiscSearch:
		member.HandleFilterSearch(ctx, b, callback, h)
	case data == DiscSearchClear:
		member.HandleFilterSearchClear(ctx, b, callback, h)
	case data == DiscCourse:
		member.HandleFilterCourse(ctx, b, callback, h)
	case strings.HasPrefix(data, DiscCourseSet):
		member.HandleFilterCourseSet(ctx, b, callback, h)
	case data == DiscSize:
		member.HandleFilterSize(ctx, b, callback, h)
	case strings.HasPrefix(data, DiscSizeSet):
		member.HandleFilterSizeSet(ctx, b, callback, h)
	case data == DiscRating:
		member.HandleFilterRating(ctx, b, callback, h)
	case strings.HasPrefix(data, DiscRatingSet):
		member.HandleFilterRatingSet(ctx, b, callback, h)
	case data == DiscReset:
		member.HandleFilterReset(ctx, b, callback, h)

	// ===== Member: Group Card & Join =====
	case strings.HasPrefix(data, ViewGroupCard):
		member.HandleViewGroupCard(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewGroup):
		member.HandleViewGroup(ctx, b, callback, h)
	case strings.HasPrefix(data, JoinRequestConfirm):
		member.HandleJoinRequestConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, JoinGroup):
		member.HandleJoinGroup(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmLeave):
		member.HandleConfirmLeave(ctx, b, callback, h)
	case strings.HasPrefix(data, LeaveGroup):
		member.HandleLeaveGroup(ctx, b, callback, h)

	// ===== Member: Create Group Wizard =====
	case data == CreateGroup:
		member.HandleCreateGroup(ctx, b, callback, h)
	case strings.HasPrefix(data, CgPrivacy):
		member.HandleCreatePrivacy(ctx, b, callback, h)
	case data == CgPasskeySkip:
		member.HandleCreatePasskeySkip(ctx, b, callback, h)
	case data == CgNoLimit:
		member.HandleCreateNoLimit(ctx, b, callback, h)
	case strings.HasPrefix(data, CgCourse):
		member.HandleCreateCourse(ctx, b, callback, h)
	case data == CgConfirm:
		member.HandleCreateConfirm(ctx, b, callback, h)
	case data == CgCancel:
		member.HandleCreateCancel(ctx, b, callback, h)

	// ===== Admin: Group Console =====
	case strings.HasPrefix(data, ManageGroup):
		admin.HandleManageGroup(ctx, b, callback, h)
	case strings.HasPrefix(data, ManageMembers):
		admin.HandleManageMembers(ctx, b, callback, h)
	case strings.HasPrefix(data, ManageRequests):
		admin.HandleManageRequests(ctx, b, callback, h)
	case strings.HasPrefix(data, EditDetails):
		admin.HandleEditDetails(ctx, b, callback, h)

	// ===== Admin: Member Management =====
	case strings.HasPrefix(data, MemberActions):
		admin.HandleMemberActions(ctx, b, callback, h)
	case strings.HasPrefix(data, SetRole):
		admin.HandleSetRole(ctx, b, callback, h)
	case strings.HasPrefix(data, RemoveMember):
		admin.HandleRemoveMember(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmRemove):
		admin.HandleConfirmRemove(ctx, b, callback, h)

	// ===== Admin: Join Requests =====
	case strings.HasPrefix(data, ViewRequester):
		admin.HandleViewRequester(ctx, b, callback, h)
	case strings.HasPrefix(data, RequestDecide):
		admin.HandleRequestDecide(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("telegram_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
