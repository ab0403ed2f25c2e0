package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:embed model.conf
var modelText string

const (
	ObjectMenu         = "menu"
	ObjectSubscription = "subscription"
	ObjectOrder        = "order"
	ObjectRating       = "rating"
	ObjectChef         = "chef"
	ObjectAdmin        = "admin"
)

const (
	ActionRead     = "read"
	ActionWrite    = "write"
	ActionValidate = "validate"
	ActionRate     = "rate"
	ActionManage   = "manage"
)

// roleValidator holds the subscription validation grant shared by chefs and
// administrators.
const roleValidator = "role:validator"

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
	AuditSvc auditdomain.Service `optional:"true"`
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
	auditSvc auditdomain.Service
}

func NewEnforcer(adapter *gormadapter.Adapter) (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
		auditSvc: p.AuditSvc,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor authdomain.Actor, object string, action string) error {
	if actor.UserID == 0 || actor.Role == "" {
		return ErrInvalidActor
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject := fmt.Sprintf("user:%s", actor.UserID)
	if err := s.ensureGrouping(subject, roleName(actor.Role)); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.auditDenied(ctx, actor, object, action)
		return ErrForbidden
	}
	return nil
}

func roleName(role authdomain.Role) string {
	return "role:" + strings.ToLower(string(role))
}

// ensureGrouping keeps exactly one role link per user so role changes take
// effect on the next request.
func (s *ServiceImpl) ensureGrouping(subject string, role string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 || rule[1] == role {
			continue
		}
		if _, err := s.enforcer.RemoveGroupingPolicy(rule[0], rule[1]); err != nil {
			return err
		}
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, role)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, role)
	return err
}

func (s *ServiceImpl) auditDenied(ctx context.Context, actor authdomain.Actor, object string, action string) {
	s.log.Info("authorization denied",
		zap.String("user_id", actor.UserID.String()),
		zap.String("role", string(actor.Role)),
		zap.String("object", object),
		zap.String("action", action),
	)
	if s.auditSvc == nil {
		return
	}
	actorID := actor.UserID.String()
	targetID := object
	if err := s.auditSvc.AuditLog(ctx, string(actor.Role), &actorID, auditdomain.ActionAccessDenied, "authorization", &targetID, map[string]any{
		"object": object,
		"action": action,
		"role":   string(actor.Role),
	}); err != nil {
		s.log.Warn("audit log failed", zap.Error(err))
	}
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{"role:client", ObjectMenu, ActionRead},
		{"role:client", ObjectSubscription, ActionRead},
		{"role:client", ObjectSubscription, ActionWrite},
		{"role:client", ObjectOrder, ActionRead},
		{"role:client", ObjectRating, ActionRead},
		{"role:client", ObjectRating, ActionRate},

		{"role:chef", ObjectChef, ActionWrite},
		{"role:chef", ObjectMenu, ActionRead},
		{"role:chef", ObjectMenu, ActionWrite},
		{"role:chef", ObjectSubscription, ActionRead},
		{"role:chef", ObjectOrder, ActionRead},
		{"role:chef", ObjectOrder, ActionWrite},
		{"role:chef", ObjectRating, ActionRead},

		{roleValidator, ObjectSubscription, ActionValidate},

		{"role:admin", ObjectAdmin, ActionRead},
		{"role:admin", ObjectAdmin, ActionManage},
		{"role:admin", ObjectMenu, ActionRead},
		{"role:admin", ObjectOrder, ActionRead},
		{"role:admin", ObjectRating, ActionRead},

		{"role:super_admin", ObjectChef, ActionManage},
	}
	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}

	groupings := [][]string{
		{"role:chef", roleValidator},
		{"role:admin", roleValidator},
		{"role:super_admin", "role:admin"},
	}
	for _, grouping := range groupings {
		if _, err := enforcer.AddGroupingPolicy(grouping[0], grouping[1]); err != nil {
			return err
		}
	}
	return nil
}
