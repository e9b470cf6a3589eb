package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/akademus/akademus-api/internal/domain"
	"github.com/akademus/akademus-api/internal/pkg/dbctx"
	"github.com/akademus/akademus-api/internal/platform/logger"
)

type NodeRepo interface {
	Create(dbc dbctx.Context, nodes []*types.Node) ([]*types.Node, error)
	GetByIDs(dbc dbctx.Context, nodeIDs []uuid.UUID) ([]*types.Node, error)
	GetByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Node, error)
	UpdateFields(dbc dbctx.Context, nodeID uuid.UUID, updates map[string]interface{}) (bool, error)
	SoftDeleteByID(dbc dbctx.Context, nodeID uuid.UUID) (bool, error)
}

type nodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNodeRepo(db *gorm.DB, baseLog *logger.Logger) NodeRepo {
	return &nodeRepo{db: db, log: baseLog.With("repo", "NodeRepo")}
}

func (r *nodeRepo) Create(dbc dbctx.Context, nodes []*types.Node) ([]*types.Node, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(nodes) == 0 {
		return []*types.Node{}, nil
	}
	for _, n := range nodes {
		if n.ID == uuid.Nil {
			n.ID = uuid.New()
		}
		if n.Type == "" {
			n.Type = types.NodeText
		}
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *nodeRepo) GetByIDs(dbc dbctx.Context, nodeIDs []uuid.UUID) ([]*types.Node, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Node
	if len(nodeIDs) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", nodeIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByCourseID does not look at the course row, so nodes of a deleted
// course are still listed.
func (r *nodeRepo) GetByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Node, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Node
	if err := transaction.WithContext(dbc.Ctx).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeRepo) UpdateFields(dbc dbctx.Context, nodeID uuid.UUID, updates map[string]interface{}) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	set := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()

	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Node{}).
		Where("id = ?", nodeID).
		Updates(set)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *nodeRepo) SoftDeleteByID(dbc dbctx.Context, nodeID uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", nodeID).
		Delete(&types.Node{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
