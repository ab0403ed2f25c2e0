package authorization

import (
	"context"
	"testing"
	"time"

	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	auditrepository "github.com/UknowEdy/chefetoile-backend/internal/audit/repository"
	auditservice "github.com/UknowEdy/chefetoile-backend/internal/audit/service"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&auditdomain.AuditLog{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	adapter, err := NewAdapter(conn)
	require.NoError(t, err)
	enforcer, err := NewEnforcer(adapter)
	require.NoError(t, err)

	audit := auditservice.NewService(auditservice.Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)),
		Repo:  auditrepository.Provide(),
	})
	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer, AuditSvc: audit}), conn, node
}

func TestRolePolicies(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		role    authdomain.Role
		object  string
		action  string
		allowed bool
	}{
		{authdomain.RoleClient, ObjectSubscription, ActionWrite, true},
		{authdomain.RoleClient, ObjectRating, ActionRate, true},
		{authdomain.RoleClient, ObjectSubscription, ActionValidate, false},
		{authdomain.RoleClient, ObjectAdmin, ActionRead, false},
		{authdomain.RoleChef, ObjectSubscription, ActionValidate, true},
		{authdomain.RoleChef, ObjectOrder, ActionWrite, true},
		{authdomain.RoleChef, ObjectRating, ActionRate, false},
		{authdomain.RoleChef, ObjectAdmin, ActionManage, false},
		{authdomain.RoleAdmin, ObjectSubscription, ActionValidate, true},
		{authdomain.RoleAdmin, ObjectAdmin, ActionManage, true},
		{authdomain.RoleAdmin, ObjectChef, ActionManage, false},
		{authdomain.RoleAdmin, ObjectMenu, ActionWrite, false},
		{authdomain.RoleSuperAdmin, ObjectChef, ActionManage, true},
		{authdomain.RoleSuperAdmin, ObjectAdmin, ActionRead, true},
		{authdomain.RoleSuperAdmin, ObjectSubscription, ActionValidate, true},
	}
	for _, tc := range cases {
		actor := authdomain.Actor{Role: tc.role, UserID: node.Generate()}
		err := svc.Authorize(ctx, actor, tc.object, tc.action)
		if tc.allowed {
			assert.NoError(t, err, "%s %s %s", tc.role, tc.object, tc.action)
		} else {
			assert.ErrorIs(t, err, ErrForbidden, "%s %s %s", tc.role, tc.object, tc.action)
		}
	}
}

func TestRoleChangeTakesEffect(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()
	userID := node.Generate()

	require.NoError(t, svc.Authorize(ctx, authdomain.Actor{Role: authdomain.RoleAdmin, UserID: userID}, ObjectAdmin, ActionRead))
	err := svc.Authorize(ctx, authdomain.Actor{Role: authdomain.RoleClient, UserID: userID}, ObjectAdmin, ActionRead)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDenialIsAudited(t *testing.T) {
	svc, conn, node := newTestService(t)
	actor := authdomain.Actor{Role: authdomain.RoleClient, UserID: node.Generate()}

	err := svc.Authorize(context.Background(), actor, ObjectAdmin, ActionManage)
	require.ErrorIs(t, err, ErrForbidden)

	var logs []auditdomain.AuditLog
	require.NoError(t, conn.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, auditdomain.ActionAccessDenied, logs[0].Action)
	require.NotNil(t, logs[0].ActorID)
	assert.Equal(t, actor.UserID.String(), *logs[0].ActorID)
	assert.Equal(t, ObjectAdmin, logs[0].Metadata["object"])
}

func TestAuthorizeValidatesInput(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, authdomain.Actor{}, ObjectMenu, ActionRead), ErrInvalidActor)
	actor := authdomain.Actor{Role: authdomain.RoleChef, UserID: node.Generate()}
	assert.ErrorIs(t, svc.Authorize(ctx, actor, " ", ActionRead), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, actor, ObjectMenu, ""), ErrInvalidAction)
}
