package service

import (
	"context"
	"strings"
	"time"

	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/audit/masking"
	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	obsctx "github.com/UknowEdy/chefetoile-backend/internal/observability/context"
	"github.com/UknowEdy/chefetoile-backend/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 250
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  auditdomain.Repository
}

// Service appends to the audit trail of security and lifecycle events:
// activations, rejections, ratings, suspensions and denied access.
type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  auditdomain.Repository
}

func NewService(p Params) auditdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// AuditLog records one event. An empty actorType falls back to the actor on
// ctx, then to SYSTEM; metadata credentials are masked before storage.
func (s *Service) AuditLog(ctx context.Context, actorType string, actorID *string, action string, targetType string, targetID *string, metadata map[string]any) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return auditdomain.ErrInvalidAction
	}

	entry := s.newEntry(ctx, action, targetType, targetID, metadata)
	entry.ActorType, entry.ActorID = resolveActor(ctx, strings.TrimSpace(actorType), actorID)

	if err := s.repo.Insert(ctx, s.db, entry); err != nil {
		s.log.Warn("failed to write audit log",
			zap.String("action", action),
			zap.String("target_type", entry.TargetType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *Service) newEntry(ctx context.Context, action, targetType string, targetID *string, metadata map[string]any) *auditdomain.AuditLog {
	payload := masking.MaskJSON(metadata)
	if payload == nil {
		payload = map[string]any{}
	}
	if requestID := obsctx.RequestIDFromContext(ctx); requestID != "" {
		payload["request_id"] = requestID
	}

	if targetType = strings.TrimSpace(targetType); targetType == "" {
		targetType = "unknown"
	}

	entry := &auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		Action:     action,
		TargetType: targetType,
		TargetID:   trimmedOrNil(targetID),
		Metadata:   datatypes.JSONMap(payload),
		CreatedAt:  s.clock.Now().UTC(),
	}
	if ip := obsctx.ClientIPFromContext(ctx); ip != "" {
		entry.IPAddress = &ip
	}
	return entry
}

// List pages through the trail newest first. Page tokens are opaque cursors
// over (created_at, id).
func (s *Service) List(ctx context.Context, req auditdomain.ListAuditLogRequest) (auditdomain.ListAuditLogResponse, error) {
	if req.StartAt != nil && req.EndAt != nil && req.StartAt.After(*req.EndAt) {
		return auditdomain.ListAuditLogResponse{}, auditdomain.ErrInvalidTimeRange
	}

	cursor, err := decodePageToken(req.PageToken)
	if err != nil {
		return auditdomain.ListAuditLogResponse{}, err
	}
	pageSize := clampPageSize(req.PageSize)

	items, err := s.repo.List(ctx, s.db, auditdomain.ListFilter{
		Action:     req.Action,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		ActorType:  req.ActorType,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Cursor:     cursor,
		Limit:      pageSize,
	})
	if err != nil {
		return auditdomain.ListAuditLogResponse{}, err
	}

	resp := auditdomain.ListAuditLogResponse{AuditLogs: make([]auditdomain.AuditLog, 0, len(items))}
	if info := pagination.BuildCursorPageInfo(items, int32(pageSize), encodePageToken); info != nil {
		resp.PageInfo = *info
	}
	if len(items) > pageSize {
		items = items[:pageSize]
	}
	for _, item := range items {
		if item != nil {
			resp.AuditLogs = append(resp.AuditLogs, *item)
		}
	}
	return resp, nil
}

func clampPageSize(size int) int {
	switch {
	case size <= 0:
		return defaultPageSize
	case size > maxPageSize:
		return maxPageSize
	default:
		return size
	}
}

func encodePageToken(item *auditdomain.AuditLog) string {
	token, err := pagination.EncodeCursor(pagination.Cursor{
		ID:        item.ID.String(),
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return ""
	}
	return token
}

func decodePageToken(raw string) (*auditdomain.AuditCursor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	decoded, err := pagination.DecodeCursor(raw)
	if err != nil {
		return nil, auditdomain.ErrInvalidPageToken
	}
	createdAt, err := time.Parse(time.RFC3339Nano, decoded.CreatedAt)
	if err != nil {
		return nil, auditdomain.ErrInvalidPageToken
	}
	id, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
	if err != nil || id <= 0 {
		return nil, auditdomain.ErrInvalidPageToken
	}
	return &auditdomain.AuditCursor{ID: id, CreatedAt: createdAt}, nil
}

func resolveActor(ctx context.Context, actorType string, actorID *string) (string, *string) {
	if actorType == "" {
		ctxType, ctxID := obsctx.ActorFromContext(ctx)
		actorType = ctxType
		if trimmedOrNil(actorID) == nil && ctxID != "" {
			actorID = &ctxID
		}
	}
	if actorType == "" {
		actorType = string(auditdomain.ActorTypeSystem)
	}
	return actorType, trimmedOrNil(actorID)
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
